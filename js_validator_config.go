package symbol

type jsValidatorConfig struct {
	cache    RuleCache
	registry *FunctionRegistry
}

// JSValidatorOption configures the JS validator.
type JSValidatorOption func(*jsValidatorConfig)

// JSWithRuleCache applies a RuleCache to the JS validator.
func JSWithRuleCache(cache RuleCache) JSValidatorOption {
	return func(cfg *jsValidatorConfig) {
		cfg.cache = cache
	}
}

// JSWithFunctionRegistry applies a FunctionRegistry to the JS validator.
func JSWithFunctionRegistry(registry *FunctionRegistry) JSValidatorOption {
	return func(cfg *jsValidatorConfig) {
		if registry == nil {
			return
		}
		cfg.registry = registry.Clone()
	}
}

func applyJSValidatorOptions(opts []JSValidatorOption) jsValidatorConfig {
	cfg := jsValidatorConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
