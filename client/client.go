// Package client wraps the librados monitor command interface behind a small
// surface the collector can mock.
package client

import "encoding/json"

// MonCommander is the subset of a cluster connection the collector needs: it
// executes one monitor command at a time and exposes the cluster identifier.
type MonCommander interface {
	// MonCommand sends a JSON-encoded command to the monitor quorum and
	// returns the raw output buffer plus the monitor's status line.
	MonCommand(cmd []byte) (buf []byte, info string, err error)

	// FSID returns the cluster's unique identifier.
	FSID() (string, error)
}

// Command is one monitor command: the operation prefix, the requested output
// format, and any extra named arguments.
type Command struct {
	Prefix string
	Format string
	Args   map[string]any
}

// Encode renders the command the way the monitor expects it: a single JSON
// object carrying "prefix" and "format" with the extra arguments as siblings.
// An empty format defaults to "json".
func (c Command) Encode() ([]byte, error) {
	obj := make(map[string]any, len(c.Args)+2)
	for k, v := range c.Args {
		obj[k] = v
	}
	obj["prefix"] = c.Prefix
	if c.Format == "" {
		obj["format"] = "json"
	} else {
		obj["format"] = c.Format
	}
	return json.Marshal(obj)
}
