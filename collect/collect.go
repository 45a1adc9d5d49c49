// Package collect drives the fixed battery of monitor queries against one
// cluster connection and assembles the report.
package collect

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/42on/ceph-fact/client"
	"github.com/42on/ceph-fact/redact"
)

// Config carries the per-invocation collection settings.
type Config struct {
	// DeviceHealth enables the extended device health category.
	DeviceHealth bool

	// Patterns filter the config dump. Built once per invocation and never
	// mutated afterwards.
	Patterns []*redact.Pattern

	// LogConfig logs the post-redaction config dump at Info.
	LogConfig bool
}

// query is one catalog entry: the report sub-key, the mon command prefix, and
// any extra named arguments for the command object.
type query struct {
	key    string
	prefix string
	args   map[string]any
}

// category groups queries whose results land under a shared report key prefix.
type category struct {
	name    string
	prefix  string
	queries []query
}

// overall holds the queries stored under their own top-level keys.
var overall = []query{
	{key: "status", prefix: "status"},
	{key: "versions", prefix: "versions"},
	{key: "features", prefix: "features"},
}

// catalog is the fixed query battery in assembly order. The mds category uses
// the fs dump and status forms throughout; there is no version probing.
var catalog = []category{
	{
		name:   "health",
		prefix: "health",
		queries: []query{
			{key: "stat", prefix: "health"},
			{key: "df", prefix: "df"},
			{key: "report", prefix: "report"},
			{key: "detail", prefix: "health", args: map[string]any{"detail": "detail"}},
		},
	},
	{
		name:   "mon",
		prefix: "mon",
		queries: []query{
			{key: "stat", prefix: "mon stat"},
			{key: "dump", prefix: "mon dump"},
			{key: "map", prefix: "mon getmap"},
			{key: "metadata", prefix: "mon metadata"},
		},
	},
	{
		name:   "osd",
		prefix: "osd",
		queries: []query{
			{key: "tree", prefix: "osd tree"},
			{key: "df", prefix: "osd df"},
			{key: "dump", prefix: "osd dump"},
			{key: "stat", prefix: "osd stat"},
			{key: "crushmap", prefix: "osd getcrushmap"},
			{key: "map", prefix: "osd getmap"},
			{key: "metadata", prefix: "osd metadata"},
			{key: "perf", prefix: "osd perf"},
		},
	},
	{
		name:   "pg",
		prefix: "pg",
		queries: []query{
			{key: "stat", prefix: "pg stat"},
		},
	},
	{
		name:   "mds",
		prefix: "mds",
		queries: []query{
			{key: "metadata", prefix: "mds metadata"},
			{key: "dump", prefix: "fs dump"},
			{key: "status", prefix: "fs status"},
		},
	},
}

// Collector issues the catalog against one cluster connection, strictly
// sequentially.
type Collector struct {
	client client.MonCommander
	cfg    Config
	log    hclog.Logger
}

func New(c client.MonCommander, cfg Config, log hclog.Logger) *Collector {
	return &Collector{client: c, cfg: cfg, log: log}
}

// Collect runs the full battery, redacts the config dump, and returns the
// assembled report. The first query error aborts the run. Empty query output
// is a value, not an error.
func (c *Collector) Collect() (Report, error) {
	report := Report{}

	c.log.Info("gathering overall ceph information")
	for _, q := range overall {
		value, err := c.query(q)
		if err != nil {
			return nil, err
		}
		report[q.key] = value
	}

	fsid, err := c.client.FSID()
	if err != nil {
		return nil, fmt.Errorf("fetching cluster fsid: %w", err)
	}
	report["fsid"] = fsid

	entries, err := c.configDump()
	if err != nil {
		return nil, err
	}
	report["config"] = entries

	for _, cat := range catalog {
		c.log.Info("gathering category information", "category", cat.name)
		for _, q := range cat.queries {
			value, err := c.query(q)
			if err != nil {
				return nil, err
			}
			report[cat.prefix+"_"+q.key] = value
		}
	}

	if c.cfg.DeviceHealth {
		c.log.Info("gathering device health information")
		if err := c.deviceHealth(report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// query executes one catalog entry and decodes its output.
func (c *Collector) query(q query) (any, error) {
	raw, err := c.mon(q.prefix, q.args)
	if err != nil {
		return nil, err
	}
	return decode(raw), nil
}

// mon encodes and executes a single monitor command, returning the raw output
// buffer.
func (c *Collector) mon(prefix string, args map[string]any) ([]byte, error) {
	cmd := client.Command{Prefix: prefix, Args: args}
	b, err := cmd.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding mon command %q: %w", prefix, err)
	}
	c.log.Debug("executing mon command", "prefix", prefix)
	buf, _, err := c.client.MonCommand(b)
	if err != nil {
		return nil, fmt.Errorf("mon command %q: %w", prefix, err)
	}
	return buf, nil
}

// decode maps a raw monitor payload onto a report value: empty output is an
// empty object, valid JSON decodes, and anything else (the binary map dumps,
// for instance) is kept as a string.
func decode(raw []byte) any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	return value
}

// configDump fetches the cluster configuration and routes it through the
// redaction filter before it can land in the report.
func (c *Collector) configDump() ([]redact.Entry, error) {
	raw, err := c.mon("config dump", nil)
	if err != nil {
		return nil, err
	}
	entries, err := redact.Config(raw, c.cfg.Patterns)
	if err != nil {
		return nil, err
	}
	if c.cfg.LogConfig {
		b, err := json.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("encoding config dump for logging: %w", err)
		}
		c.log.Info("gathered config dump", "config", string(b))
	}
	return entries, nil
}
