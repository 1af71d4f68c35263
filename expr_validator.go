package symbol

import (
	"errors"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprValidatorOption configures an expr-backed validator.
type ExprValidatorOption func(*exprValidator)

// ExprWithRuleCache wires a RuleCache into the expr validator.
func ExprWithRuleCache(cache RuleCache) ExprValidatorOption {
	return func(v *exprValidator) {
		v.cache = cache
	}
}

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr validator.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprValidatorOption {
	return func(v *exprValidator) {
		if registry == nil {
			return
		}
		v.registry = registry.Clone()
	}
}

// exprValidator admits values for which an expr-lang rule yields true. The
// rule sees `text`, `length`, and any registered helper functions.
type exprValidator struct {
	rule     string
	program  *exprvm.Program
	cache    RuleCache
	registry *FunctionRegistry
}

// NewExprValidator compiles rule with expr-lang/expr and returns the backing
// Validator. Compilation is eager so a broken rule surfaces where the kind is
// declared, not on first intern.
func NewExprValidator(rule string, opts ...ExprValidatorOption) (Validator, error) {
	if rule == "" {
		return nil, wrapEngineError("expr", errors.New("rule must not be empty"))
	}
	v := &exprValidator{rule: rule}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	program, err := v.loadOrCompile()
	if err != nil {
		return nil, err
	}
	v.program = program
	return v, nil
}

// Validate implements Validator.
func (v *exprValidator) Validate(text string) error {
	out, err := exprlang.Run(v.program, ruleEnvironment(text, v.registry))
	return ruleOutcome("expr", out, err)
}

func (v *exprValidator) loadOrCompile() (*exprvm.Program, error) {
	if v.cache != nil {
		if cached, ok := v.cache.Get(v.rule); ok {
			if program, ok := cached.(*exprvm.Program); ok {
				return program, nil
			}
		}
	}
	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range v.registry.Names() {
		fn := name
		options = append(options, exprlang.Function(fn, func(arguments ...any) (any, error) {
			return v.registry.Call(fn, arguments...)
		}))
	}
	program, err := exprlang.Compile(v.rule, options...)
	if err != nil {
		return nil, wrapEngineError("expr", err)
	}
	if v.cache != nil {
		v.cache.Set(v.rule, program)
	}
	return program, nil
}
