package linter

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tek-lang/tek/internal/diag"
)

// registryEntry pairs a rule ID with its default severity and constructor,
// mirroring praetorian-inc/titus's habit of describing a rule as a small
// declarative record rather than ad hoc Go wiring.
type registryEntry struct {
	id     string
	level  diag.Level
	build  func(level diag.Level) Rule
	locked bool // cannot be disabled via RuleConfig
}

var registry = []registryEntry{
	{id: declarationsInClassID, level: diag.ERROR, build: DeclarationsInClass, locked: true},
	{id: invalidControlStatementID, level: diag.ERROR, build: InvalidControlStatement, locked: true},
	{id: duplicateDeclarationID, level: diag.WARNING, build: DuplicateDeclaration},
	{id: unreachableAfterReturnID, level: diag.WARNING, build: UnreachableAfterReturn},
	{id: emptyBlockBodyID, level: diag.INFO, build: EmptyBlockBody},
	{id: fallthroughMustBeLastID, level: diag.ERROR, build: FallthroughMustBeLast},
}

// RuleOverride adjusts one rule's behaviour: Enabled, when set, toggles the
// rule on or off; Level, when non-empty, replaces its default severity.
type RuleOverride struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Level   string `yaml:"level,omitempty"`
}

// RuleConfig is the YAML document a caller supplies to enable/disable
// individual linter rules or override their severity, keyed by rule ID.
type RuleConfig struct {
	Rules map[string]RuleOverride `yaml:"rules"`
}

func parseLevel(s string) (diag.Level, error) {
	switch s {
	case "ERROR":
		return diag.ERROR, nil
	case "WARNING":
		return diag.WARNING, nil
	case "INFO":
		return diag.INFO, nil
	default:
		return diag.ERROR, fmt.Errorf("unknown rule level %q", s)
	}
}

// LoadRuleConfig parses a RuleConfig YAML document from r. Disabling
// declarations-in-class or invalid-control-statement is rejected here —
// those two are load-bearing.
func LoadRuleConfig(r io.Reader) (RuleConfig, error) {
	var cfg RuleConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return RuleConfig{}, fmt.Errorf("parse rule config: %w", err)
	}

	for _, entry := range registry {
		if !entry.locked {
			continue
		}
		if override, ok := cfg.Rules[entry.id]; ok && override.Enabled != nil && !*override.Enabled {
			return RuleConfig{}, fmt.Errorf("rule %q cannot be disabled", entry.id)
		}
	}
	for id, override := range cfg.Rules {
		if override.Level == "" {
			continue
		}
		if _, err := parseLevel(override.Level); err != nil {
			return RuleConfig{}, fmt.Errorf("rule %q: %w", id, err)
		}
	}
	return cfg, nil
}

// Build materializes the full built-in rule set, applying cfg's overrides,
// in a stable order (registry order) so diagnostics stay reproducible run
// to run.
func (cfg RuleConfig) Build() []Rule {
	var rules []Rule
	for _, entry := range registry {
		level := entry.level
		if override, ok := cfg.Rules[entry.id]; ok {
			if override.Enabled != nil && !*override.Enabled {
				continue
			}
			if override.Level != "" {
				if parsed, err := parseLevel(override.Level); err == nil {
					level = parsed
				}
			}
		}
		rules = append(rules, entry.build(level))
	}
	return rules
}

// RuleIDs returns every built-in rule ID, sorted, for callers (and tests)
// that want to enumerate what a RuleConfig can refer to.
func RuleIDs() []string {
	ids := make([]string, len(registry))
	for i, entry := range registry {
		ids[i] = entry.id
	}
	sort.Strings(ids)
	return ids
}
