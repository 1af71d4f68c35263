//go:build js_eval

package symbol

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

// jsValidator admits values for which a JavaScript rule yields true. The
// rule sees `text`, `length`, and any registered helper functions. A fresh
// goja runtime is built per validation; only the compiled program is shared.
type jsValidator struct {
	rule     string
	program  *goja.Program
	registry *FunctionRegistry
}

// NewJSValidator compiles rule with goja and returns the backing Validator.
// Requires the js_eval build tag.
func NewJSValidator(rule string, opts ...JSValidatorOption) (Validator, error) {
	if rule == "" {
		return nil, wrapEngineError("js", errors.New("rule must not be empty"))
	}
	cfg := applyJSValidatorOptions(opts)
	v := &jsValidator{rule: rule, registry: cfg.registry}
	program, err := v.loadOrCompile(cfg.cache)
	if err != nil {
		return nil, err
	}
	v.program = program
	return v, nil
}

// Validate implements Validator.
func (v *jsValidator) Validate(text string) error {
	vm := goja.New()
	for name, value := range ruleEnvironment(text, v.registry) {
		if err := vm.Set(name, value); err != nil {
			return wrapEngineError("js", err)
		}
	}
	value, err := vm.RunProgram(v.program)
	if err != nil {
		return wrapEngineError("js", err)
	}
	return ruleOutcome("js", value.Export(), nil)
}

func (v *jsValidator) loadOrCompile(cache RuleCache) (*goja.Program, error) {
	if cache != nil {
		if cached, ok := cache.Get(v.rule); ok {
			if program, ok := cached.(*goja.Program); ok {
				return program, nil
			}
		}
	}
	program, err := goja.Compile("", wrapJSRule(v.rule), false)
	if err != nil {
		return nil, wrapEngineError("js", err)
	}
	if cache != nil {
		cache.Set(v.rule, program)
	}
	return program, nil
}

func wrapJSRule(rule string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", rule)
}

func jsValidatorAvailable() bool {
	return true
}
