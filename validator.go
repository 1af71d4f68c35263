package symbol

import "fmt"

// Validator decides whether a string may be admitted into a pool. Validators
// must be pure and side-effect free; they run before any pool mutation, so a
// rejected or panicking validator leaves the pool unchanged.
type Validator interface {
	Validate(text string) error
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(text string) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(text string) error {
	if f == nil {
		return nil
	}
	return f(text)
}

// AnyText is a Validator that accepts every string, including the empty one.
var AnyText Validator = ValidatorFunc(nil)

// ruleOutcome converts a rule engine result into a validation verdict. Rules
// must yield a boolean: true admits the value, false rejects it with
// ErrRuleRejected.
func ruleOutcome(engine string, out any, err error) error {
	if err != nil {
		return wrapEngineError(engine, err)
	}
	verdict, ok := out.(bool)
	if !ok {
		return wrapEngineError(engine, fmt.Errorf("rule must return bool, got %T", out))
	}
	if !verdict {
		return ErrRuleRejected
	}
	return nil
}

// ruleEnvironment builds the variable bindings shared by the expr and js
// engines: the candidate text, its byte length, and any registered helper
// functions both as named bindings and through a generic call dispatcher.
func ruleEnvironment(text string, registry *FunctionRegistry) map[string]any {
	env := map[string]any{
		"text":   text,
		"length": len(text),
	}
	if registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return registry.Call(name, arguments...)
		}
		for _, name := range registry.Names() {
			fn := name
			env[fn] = func(arguments ...any) (any, error) {
				return registry.Call(fn, arguments...)
			}
		}
	}
	return env
}
