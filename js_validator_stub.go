//go:build !js_eval

package symbol

import "errors"

// NewJSValidator is unavailable without the js_eval build tag.
func NewJSValidator(rule string, opts ...JSValidatorOption) (Validator, error) {
	_ = applyJSValidatorOptions(opts)
	return nil, wrapEngineError("js", errors.New("js rules require the js_eval build tag"))
}

func jsValidatorAvailable() bool {
	return false
}
