package command

import (
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/mitchellh/go-homedir"

	"github.com/42on/ceph-fact/client"
	"github.com/42on/ceph-fact/collect"
	"github.com/42on/ceph-fact/redact"
)

// DefaultCephConfig is the well-known client configuration path.
const DefaultCephConfig = "/etc/ceph/ceph.conf"

// DefaultTimeout bounds each Ceph operation.
const DefaultTimeout = 10 * time.Second

var _ cli.Command = &RunCommand{}

type RunCommand struct {
	ui    cli.Ui
	flags *flag.FlagSet

	cephConfig    string
	timeout       time.Duration
	debug         bool
	deviceHealth  bool
	configFilters []string
	logConfig     bool
}

func (c *RunCommand) init() {
	const (
		cephConfigUsageText   = "Path to the Ceph client configuration file"
		timeoutUsageText      = "Timeout applied to each Ceph operation, usage examples: '10s', '1m'"
		debugUsageText        = "Enable debug logging"
		deviceHealthUsageText = "Enable the collection of device health information"
		configFilterUsageText = "Custom filter (regular expression) for purging the config dump; may be passed multiple times"
		logConfigUsageText    = "Log the config dump at info level after the purge"
	)

	// flag.ContinueOnError lets flag.Parse return an error rather than exiting
	// on its own, so we can show our own Help below.
	c.flags = flag.NewFlagSet("run", flag.ContinueOnError)
	c.flags.StringVar(&c.cephConfig, "ceph-config", DefaultCephConfig, cephConfigUsageText)
	c.flags.DurationVar(&c.timeout, "timeout", DefaultTimeout, timeoutUsageText)
	c.flags.BoolVar(&c.debug, "debug", false, debugUsageText)
	c.flags.BoolVar(&c.deviceHealth, "device-health-metrics", false, deviceHealthUsageText)
	c.flags.Var(AppendFlag{Values: &c.configFilters}, "config-filter", configFilterUsageText)
	c.flags.BoolVar(&c.logConfig, "log-gathered-config", false, logConfigUsageText)

	// Discard the flag set's own output; we print our Help message on failure.
	c.flags.SetOutput(io.Discard)
}

// NewRunCommand produces a *RunCommand, initialized for use in a CLI
// application.
func NewRunCommand(ui cli.Ui) *RunCommand {
	c := &RunCommand{ui: ui}
	c.init()
	return c
}

// RunCommandFactory provides a cli.CommandFactory that will produce an
// appropriately-initiated *RunCommand.
func RunCommandFactory(ui cli.Ui) cli.CommandFactory {
	return func() (cli.Command, error) {
		return NewRunCommand(ui), nil
	}
}

// Help provides help text to users who pass in the --help flag or who enter
// invalid options.
func (c *RunCommand) Help() string {
	helpText := `Usage: ceph-fact run [options]

Connects to a Ceph cluster, gathers administrative status information with
sensitive configuration values redacted, and prints it as a single JSON
document on standard output for use as facts by automation systems.
`
	return Usage(helpText, c.flags)
}

// Synopsis provides a brief description of the command, for inclusion in the
// application's primary --help.
func (c *RunCommand) Synopsis() string {
	return "Gather facts from a Ceph cluster"
}

// Run executes the command.
func (c *RunCommand) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		c.ui.Warn(err.Error())
		c.ui.Warn(c.Help())
		return FlagParseError
	}

	l := configureLogging("ceph-fact")
	if c.debug {
		l.SetLevel(hclog.Debug)
	}

	patterns, err := redact.Patterns(c.configFilters)
	if err != nil {
		l.Error("invalid config filters", "error", err)
		return FlagParseError
	}

	confFile, err := homedir.Expand(c.cephConfig)
	if err != nil {
		l.Error("failed to resolve the ceph config path", "path", c.cephConfig, "error", err)
		return RunError
	}

	cluster, err := client.Connect(confFile, c.timeout, l)
	if err != nil {
		l.Error("failed to connect to the ceph cluster", "error", err)
		return RunError
	}
	defer cluster.Shutdown()

	collector := collect.New(cluster, collect.Config{
		DeviceHealth: c.deviceHealth,
		Patterns:     patterns,
		LogConfig:    c.logConfig,
	}, l)

	report, err := collector.Collect()
	if err != nil {
		l.Error("failed to gather cluster information", "error", err)
		return RunError
	}

	if err := report.Write(os.Stdout); err != nil {
		l.Error("failed to write the report", "error", err)
		return RunError
	}

	return Success
}

// configureLogging takes a logger name, sets the default configuration, grabs
// the LOG_LEVEL from our ENV vars, and returns a configured and usable logger.
// Logs go to stderr so standard output stays reserved for the report.
func configureLogging(loggerName string) hclog.Logger {
	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:  loggerName,
		Color: hclog.AutoColor,
	})
	hclog.SetDefault(appLogger)
	if logStr := os.Getenv("LOG_LEVEL"); logStr != "" {
		if level := hclog.LevelFromString(logStr); level != hclog.NoLevel {
			appLogger.SetLevel(level)
			appLogger.Debug("Logger configuration change", "LOG_LEVEL", hclog.Fmt("%s", logStr))
		}
	}
	return hclog.Default()
}

// AppendFlag collects every occurrence of a repeatable string flag.
type AppendFlag struct {
	Values *[]string
}

func (a AppendFlag) String() string {
	if a.Values == nil {
		return ""
	}
	return strings.Join(*a.Values, ", ")
}

func (a AppendFlag) Set(v string) error {
	*a.Values = append(*a.Values, v)
	return nil
}
