package symbol

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRuleRejected is the reason recorded when a rule expression evaluates to
// false for a candidate value.
var ErrRuleRejected = errors.New("value rejected by rule")

// ValidationError reports a value refused by a kind's validator. It is the
// only recoverable error returned by Intern; the pool is left untouched when
// it is returned.
type ValidationError struct {
	Kind string
	Text string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("symbol: kind %s rejected %q: %v", describeKind(e.Kind), e.Text, e.Err)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeKind(kind string) string {
	if kind == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%q", kind)
}

// wrapValidationError attaches kind and text metadata to a validator error.
// An existing *ValidationError is augmented rather than re-wrapped so the
// innermost rejection site wins.
func wrapValidationError(kind, text string, err error) error {
	if err == nil {
		return nil
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		if verr.Kind == "" {
			verr.Kind = kind
		}
		if verr.Text == "" {
			verr.Text = text
		}
		return verr
	}

	return &ValidationError{
		Kind: kind,
		Text: text,
		Err:  err,
	}
}

// wrapEngineError prefixes rule-engine failures without double-wrapping
// errors that already carry the package prefix.
func wrapEngineError(engine string, err error) error {
	if err == nil {
		return nil
	}
	if strings.HasPrefix(err.Error(), "symbol:") {
		return err
	}
	return fmt.Errorf("symbol: %s rule: %w", engine, err)
}

// InvariantViolationError reports internal pool corruption such as a liveness
// underflow or a table/liveness desync. It is delivered by panic: the
// condition indicates a bug in the mutation discipline, not bad input, and is
// not part of the recoverable error taxonomy.
type InvariantViolationError struct {
	Op     string
	Detail string
}

func (e *InvariantViolationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("symbol: pool invariant violated during %s: %s", e.Op, e.Detail)
}

func panicInvariant(op, detail string) {
	panic(&InvariantViolationError{Op: op, Detail: detail})
}
