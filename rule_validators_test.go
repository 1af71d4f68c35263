package symbol

import (
	"errors"
	"strings"
	"testing"
)

// Each engine expresses the same admission rule: non-empty alphanumeric.
var validatorFactories = []struct {
	name      string
	available func() bool
	rule      string
	badRule   string
	new       func(rule string, cache RuleCache, registry *FunctionRegistry) (Validator, error)
}{
	{
		name:      "expr",
		available: func() bool { return true },
		rule:      `length > 0 && text matches "^[A-Za-z0-9]+$"`,
		badRule:   `length >`,
		new: func(rule string, cache RuleCache, registry *FunctionRegistry) (Validator, error) {
			opts := []ExprValidatorOption{}
			if cache != nil {
				opts = append(opts, ExprWithRuleCache(cache))
			}
			if registry != nil {
				opts = append(opts, ExprWithFunctionRegistry(registry))
			}
			return NewExprValidator(rule, opts...)
		},
	},
	{
		name:      "cel",
		available: func() bool { return true },
		rule:      `length > 0 && text.matches("^[A-Za-z0-9]+$")`,
		badRule:   `length >`,
		new: func(rule string, cache RuleCache, registry *FunctionRegistry) (Validator, error) {
			opts := []CELValidatorOption{}
			if cache != nil {
				opts = append(opts, CELWithRuleCache(cache))
			}
			if registry != nil {
				opts = append(opts, CELWithFunctionRegistry(registry))
			}
			return NewCELValidator(rule, opts...)
		},
	},
	{
		name:      "js",
		available: jsValidatorAvailable,
		rule:      `length > 0 && /^[A-Za-z0-9]+$/.test(text)`,
		badRule:   `length >`,
		new: func(rule string, cache RuleCache, registry *FunctionRegistry) (Validator, error) {
			opts := []JSValidatorOption{}
			if cache != nil {
				opts = append(opts, JSWithRuleCache(cache))
			}
			if registry != nil {
				opts = append(opts, JSWithFunctionRegistry(registry))
			}
			return NewJSValidator(rule, opts...)
		},
	},
}

func TestRuleValidatorsAdmitAndReject(t *testing.T) {
	for _, factory := range validatorFactories {
		t.Run(factory.name, func(t *testing.T) {
			if !factory.available() {
				t.Skipf("%s engine not built", factory.name)
			}
			validator, err := factory.new(factory.rule, nil, nil)
			if err != nil {
				t.Fatalf("building validator failed: %v", err)
			}

			if err := validator.Validate("abc123"); err != nil {
				t.Fatalf("expected %q admitted, got %v", "abc123", err)
			}
			for _, bad := range []string{"", "has space", "dash-ed"} {
				err := validator.Validate(bad)
				if !errors.Is(err, ErrRuleRejected) {
					t.Fatalf("expected %q rejected with ErrRuleRejected, got %v", bad, err)
				}
			}
		})
	}
}

func TestRuleValidatorsRejectBrokenRulesEagerly(t *testing.T) {
	for _, factory := range validatorFactories {
		t.Run(factory.name, func(t *testing.T) {
			if !factory.available() {
				t.Skipf("%s engine not built", factory.name)
			}
			if _, err := factory.new(factory.badRule, nil, nil); err == nil {
				t.Fatalf("expected compile error for broken rule")
			}
			if _, err := factory.new("", nil, nil); err == nil {
				t.Fatalf("expected error for empty rule")
			}
		})
	}
}

func TestRuleValidatorsUseRuleCache(t *testing.T) {
	for _, factory := range validatorFactories {
		t.Run(factory.name, func(t *testing.T) {
			if !factory.available() {
				t.Skipf("%s engine not built", factory.name)
			}
			cache := NewMemoryRuleCache()
			if _, err := factory.new(factory.rule, cache, nil); err != nil {
				t.Fatalf("building validator failed: %v", err)
			}
			if _, ok := cache.Get(factory.rule); !ok {
				t.Fatalf("expected compiled program stored in cache")
			}
			// Second construction reuses the cached program.
			validator, err := factory.new(factory.rule, cache, nil)
			if err != nil {
				t.Fatalf("building cached validator failed: %v", err)
			}
			if err := validator.Validate("cached1"); err != nil {
				t.Fatalf("cached validator misbehaved: %v", err)
			}
		})
	}
}

func TestRuleValidatorsCallRegisteredFunctions(t *testing.T) {
	registry := NewFunctionRegistry()
	if err := registry.Register("vowelish", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New("vowelish expects one argument")
		}
		value, ok := args[0].(string)
		if !ok {
			return nil, errors.New("vowelish expects a string")
		}
		return strings.ContainsAny(value, "aeiou"), nil
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	rules := map[string]string{
		"expr": `call("vowelish", text) == true`,
		"cel":  `call("vowelish", text) == true`,
		"js":   `call("vowelish", text) === true`,
	}
	for _, factory := range validatorFactories {
		t.Run(factory.name, func(t *testing.T) {
			if !factory.available() {
				t.Skipf("%s engine not built", factory.name)
			}
			validator, err := factory.new(rules[factory.name], nil, registry)
			if err != nil {
				t.Fatalf("building validator failed: %v", err)
			}
			if err := validator.Validate("audio"); err != nil {
				t.Fatalf("expected %q admitted, got %v", "audio", err)
			}
			if err := validator.Validate("zzz"); !errors.Is(err, ErrRuleRejected) {
				t.Fatalf("expected %q rejected, got %v", "zzz", err)
			}
		})
	}
}

func TestRuleOutcomeRequiresBool(t *testing.T) {
	validator, err := NewExprValidator(`length + 1`)
	if err != nil {
		t.Fatalf("building validator failed: %v", err)
	}
	err = validator.Validate("x")
	if err == nil || !strings.Contains(err.Error(), "rule must return bool") {
		t.Fatalf("expected non-bool rule result error, got %v", err)
	}
}

func TestPoolWrapsRuleRejectionAsValidationError(t *testing.T) {
	validator, err := NewExprValidator(`length >= 3`)
	if err != nil {
		t.Fatalf("building validator failed: %v", err)
	}
	pool := NewPool(WithKindName("short"), WithValidator(validator))

	_, err = pool.Intern("ab")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Kind != "short" || verr.Text != "ab" {
		t.Fatalf("unexpected metadata: %+v", verr)
	}
	if !errors.Is(verr, ErrRuleRejected) {
		t.Fatalf("expected rejection reason preserved, got %v", verr.Err)
	}
}
