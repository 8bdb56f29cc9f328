package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPattern indicates a configured regular expression failed to compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// PatternList is a list of regular expressions that may be written in the
// configuration either as a single string or as a sequence of strings.
type PatternList []string

// UnmarshalYAML accepts a scalar, a sequence of scalars, or null.
func (p *PatternList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*p = PatternList{}
			return nil
		}
		*p = PatternList{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*p = PatternList(list)
		return nil
	default:
		return fmt.Errorf("line %d: expected a pattern string or a list of pattern strings", node.Line)
	}
}

// UnmarshalJSON accepts a string, an array of strings, or null.
func (p *PatternList) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*p = PatternList{}
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = PatternList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected a pattern string or a list of pattern strings: %w", err)
	}
	*p = PatternList(list)
	return nil
}

// Matcher tests paths against a set of case-insensitive, unanchored patterns.
// A nil Matcher matches nothing.
type Matcher struct {
	patterns []*regexp.Regexp
}

// Compile builds a Matcher; field names the configuration key in errors.
func Compile(field string, patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, raw := range patterns {
		re, err := regexp.Compile("(?i)" + raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q: %w", ErrInvalidPattern, field, raw, err)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// Match reports whether any pattern matches the normalized, slash-separated
// form of path.
func (m *Matcher) Match(path string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}
	norm := filepath.ToSlash(filepath.Clean(path))
	for _, re := range m.patterns {
		if re.MatchString(norm) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.patterns)
}
