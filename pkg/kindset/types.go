// Package kindset manages string kinds declared at runtime rather than as
// compile-time types: each registered definition gets its own validator and
// isolated pool, addressed by name. It is the configuration-driven
// counterpart to the generic symbol.Symbol API, used by tooling that cannot
// mint Go types per kind.
package kindset

import (
	"fmt"
	"strings"
)

// Engine identifies which rule engine backs a kind's validator.
type Engine string

// Supported rule engines.
const (
	// EngineExpr evaluates the rule with expr-lang/expr.
	EngineExpr Engine = "expr"
	// EngineCEL evaluates the rule with cel-go.
	EngineCEL Engine = "cel"
	// EngineJS evaluates the rule with goja (js_eval build tag).
	EngineJS Engine = "js"
	// EnginePattern matches the whole value against a regular expression.
	EnginePattern Engine = "pattern"
	// EngineAny admits every value; Rule must be empty.
	EngineAny Engine = "any"
)

var validEngines = map[Engine]bool{
	EngineExpr:    true,
	EngineCEL:     true,
	EngineJS:      true,
	EnginePattern: true,
	EngineAny:     true,
}

// Definition declares one runtime kind.
type Definition struct {
	Name        string `yaml:"name" json:"name"`
	Engine      Engine `yaml:"engine" json:"engine"`
	Rule        string `yaml:"rule,omitempty" json:"rule,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Validate checks the definition before registration.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("kindset: definition name must not be empty")
	}
	if !validEngines[d.Engine] {
		return fmt.Errorf("kindset: kind %q: unknown engine %q", d.Name, d.Engine)
	}
	if d.Engine == EngineAny {
		if d.Rule != "" {
			return fmt.Errorf("kindset: kind %q: engine %q takes no rule", d.Name, d.Engine)
		}
		return nil
	}
	if strings.TrimSpace(d.Rule) == "" {
		return fmt.Errorf("kindset: kind %q: engine %q requires a rule", d.Name, d.Engine)
	}
	return nil
}

// Descriptor is the introspection view of one registered kind.
type Descriptor struct {
	Name        string `json:"name"`
	Engine      Engine `json:"engine"`
	Rule        string `json:"rule,omitempty"`
	Description string `json:"description,omitempty"`
	Entries     int    `json:"entries"`
}

// Document describes every kind registered in a Set, for tooling output.
type Document struct {
	Kinds []Descriptor `json:"kinds"`
}
