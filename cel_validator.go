package symbol

import (
	"errors"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELValidatorOption configures a cel-go backed validator.
type CELValidatorOption func(*celValidator)

// CELWithRuleCache wires a RuleCache into the CEL validator.
func CELWithRuleCache(cache RuleCache) CELValidatorOption {
	return func(v *celValidator) {
		v.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL validator.
// Registered functions are reachable through `call(name, args...)`.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELValidatorOption {
	return func(v *celValidator) {
		if registry == nil {
			return
		}
		v.registry = registry.Clone()
	}
}

// celValidator admits values for which a CEL rule yields true. The rule sees
// `text` (string) and `length` (int).
type celValidator struct {
	rule     string
	program  celgo.Program
	cache    RuleCache
	registry *FunctionRegistry
}

// NewCELValidator parses, checks, and plans rule with cel-go and returns the
// backing Validator. Compilation is eager so a broken rule surfaces where the
// kind is declared.
func NewCELValidator(rule string, opts ...CELValidatorOption) (Validator, error) {
	if rule == "" {
		return nil, wrapEngineError("cel", errors.New("rule must not be empty"))
	}
	v := &celValidator{rule: rule}
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
func (v *celValidator) Validate(text string) error {
	out, _, err := v.program.Eval(map[string]any{
		"text":   text,
		"length": int64(len(text)),
	})
	if err != nil {
		return wrapEngineError("cel", err)
	}
	return ruleOutcome("cel", out.Value(), nil)
}

func (v *celValidator) loadOrCompile() (celgo.Program, error) {
	if v.cache != nil {
		if cached, ok := v.cache.Get(v.rule); ok {
			if program, ok := cached.(celgo.Program); ok {
				return program, nil
			}
		}
	}

	env, err := v.buildEnv()
	if err != nil {
		return nil, wrapEngineError("cel", err)
	}
	ast, issues := env.Parse(v.rule)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEngineError("cel", issues.Err())
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, wrapEngineError("cel", issues.Err())
	}
	program, err := env.Program(checked)
	if err != nil {
		return nil, wrapEngineError("cel", err)
	}
	if v.cache != nil {
		v.cache.Set(v.rule, program)
	}
	return program, nil
}

func (v *celValidator) buildEnv() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("text", celgo.StringType),
		celgo.Variable("length", celgo.IntType),
	}
	if v.registry != nil {
		// CEL overloads are fixed-arity, so `call` is declared for up to
		// three rule-side arguments, all sharing one binding.
		bind := celgo.FunctionBinding(v.callBinding())
		opts = append(opts, celgo.Function("call",
			celgo.Overload("call_string",
				[]*celgo.Type{celgo.StringType}, celgo.DynType, bind),
			celgo.Overload("call_string_dyn",
				[]*celgo.Type{celgo.StringType, celgo.DynType}, celgo.DynType, bind),
			celgo.Overload("call_string_dyn_dyn",
				[]*celgo.Type{celgo.StringType, celgo.DynType, celgo.DynType}, celgo.DynType, bind),
		))
	}
	return celgo.NewEnv(opts...)
}

func (v *celValidator) callBinding() func(...ref.Val) ref.Val {
	return func(values ...ref.Val) ref.Val {
		if v.registry == nil {
			return types.NewErr("symbol: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("symbol: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("symbol: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := v.registry.Call(name, args...)
		if err != nil {
			return types.NewErr(err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
