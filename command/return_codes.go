package command

// Success indicates a successful run: the full report was gathered and
// written.
const Success int = 0

// RunError is returned when connecting to the cluster, gathering information
// from it, or writing the report fails. No report JSON is emitted in that
// case.
const RunError int = 1

// FlagParseError indicates that a command was unable to make sense of the
// flags/arguments provided to it.
const FlagParseError int = 2
