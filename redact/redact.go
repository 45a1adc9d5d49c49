// Package redact filters sensitive values out of a Ceph configuration dump
// before it reaches the report.
package redact

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-multierror"
)

// Placeholder replaces a matched value in full. Values are never partially
// rewritten.
const Placeholder = "** HIDDEN **"

// defaultExprs are always applied, ahead of any caller-supplied patterns.
var defaultExprs = []string{"password", "key", "cert"}

// Pattern is a compiled, case-insensitive expression tested against a config
// entry's name, section, and value.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// NewPattern compiles expr with case-insensitive matching.
func NewPattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("invalid config filter %q: %w", expr, err)
	}
	return &Pattern{expr: expr, re: re}, nil
}

func (p *Pattern) String() string { return p.expr }

// DefaultPatterns returns the built-in filter set.
func DefaultPatterns() []*Pattern {
	patterns := make([]*Pattern, 0, len(defaultExprs))
	for _, expr := range defaultExprs {
		patterns = append(patterns, &Pattern{expr: expr, re: regexp.MustCompile("(?i)" + expr)})
	}
	return patterns
}

// Patterns compiles the caller-supplied expressions and appends them, in the
// order given, after the built-in set. Every invalid expression is reported,
// not just the first.
func Patterns(custom []string) ([]*Pattern, error) {
	patterns := DefaultPatterns()
	var errs *multierror.Error
	for _, expr := range custom {
		p, err := NewPattern(expr)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		patterns = append(patterns, p)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// Apply replaces the value of every entry matched by any pattern with
// Placeholder. Entries are scanned per pattern from the last index toward the
// first, testing name, then section, then value, stopping at the first hit
// for an entry. Length, order, and every field other than value are left
// untouched.
func Apply(entries []Entry, patterns []*Pattern) {
	if len(entries) == 0 {
		return
	}
	for _, p := range patterns {
		for i := len(entries) - 1; i >= 0; i-- {
			if p.re.MatchString(entries[i].Name) ||
				p.re.MatchString(entries[i].Section) ||
				p.re.MatchString(entries[i].Value) {
				entries[i].Value = Placeholder
			}
		}
	}
}

// Config decodes a raw `config dump` payload and applies the patterns to it.
// An empty payload yields an empty entry list, not an error.
func Config(raw []byte, patterns []*Pattern) ([]Entry, error) {
	if len(raw) == 0 {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decoding config dump: %w", err)
	}
	Apply(entries, patterns)
	return entries, nil
}
