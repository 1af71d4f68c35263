package symbol

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

// Serialization adapters. Encoding emits the canonical text as a plain
// string; decoding interns the decoded string through the default registry,
// so an invalid value surfaces as the decode failure rather than silently
// producing a default. Round-tripping yields a content-equal symbol, though
// not necessarily the identical entry if pools were reset in between.

var errZeroSymbol = errors.New("symbol: cannot encode zero symbol")

// MarshalText implements encoding.TextMarshaler.
func (s Symbol[K]) MarshalText() ([]byte, error) {
	if s.IsZero() {
		return nil, errZeroSymbol
	}
	return []byte(s.Text()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by interning the text
// under kind K in the default registry.
func (s *Symbol[K]) UnmarshalText(data []byte) error {
	interned, err := Intern[K](string(data))
	if err != nil {
		return err
	}
	*s = interned
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Symbol[K]) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return nil, errZeroSymbol
	}
	return json.Marshal(s.Text())
}

// UnmarshalJSON implements json.Unmarshaler by interning the decoded string
// under kind K in the default registry.
func (s *Symbol[K]) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	interned, err := Intern[K](raw)
	if err != nil {
		return err
	}
	*s = interned
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Symbol[K]) MarshalYAML() (any, error) {
	if s.IsZero() {
		return nil, errZeroSymbol
	}
	return s.Text(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler by interning the scalar under
// kind K in the default registry.
func (s *Symbol[K]) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	interned, err := Intern[K](raw)
	if err != nil {
		return err
	}
	*s = interned
	return nil
}

// MarshalText implements encoding.TextMarshaler for the untyped handle.
// Handles decode through a pool or kind set, not through the type system,
// so Handle carries no UnmarshalText.
func (h Handle) MarshalText() ([]byte, error) {
	if h.IsZero() {
		return nil, errZeroSymbol
	}
	return []byte(h.Text()), nil
}
