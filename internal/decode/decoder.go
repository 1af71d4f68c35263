// Package decode converts YAML documents into typed values with hook points
// before and after decoding.
package decode

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Context identifies the document being decoded, for error messages and
// hooks.
type Context struct {
	Source string
}

// PreHook lets callers inspect or rewrite the parsed node tree before it is
// decoded into the target type.
type PreHook func(Context, *yaml.Node) error

// PostHook lets callers adjust or validate the decoded value.
type PostHook[T any] func(Context, *T) error

// Option configures a Decoder instance.
type Option[T any] func(*Decoder[T])

// Decoder converts YAML documents into strongly typed values.
type Decoder[T any] struct {
	preHooks    []PreHook
	postHooks   []PostHook[T]
	knownFields bool
}

// WithPreHook applies hook prior to decoding.
func WithPreHook[T any](hook PreHook) Option[T] {
	return func(d *Decoder[T]) {
		d.preHooks = append(d.preHooks, hook)
	}
}

// WithPostHook applies hook after decoding completes.
func WithPostHook[T any](hook PostHook[T]) Option[T] {
	return func(d *Decoder[T]) {
		d.postHooks = append(d.postHooks, hook)
	}
}

// WithKnownFields rejects document fields missing from the target type.
func WithKnownFields[T any]() Option[T] {
	return func(d *Decoder[T]) {
		d.knownFields = true
	}
}

// New constructs a Decoder from options.
func New[T any](opts ...Option[T]) *Decoder[T] {
	d := &Decoder[T]{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decode reads one YAML document from r and returns the decoded value.
func (d *Decoder[T]) Decode(ctx Context, r io.Reader) (T, error) {
	var out T

	dec := yaml.NewDecoder(r)

	var node yaml.Node
	if err := dec.Decode(&node); err != nil {
		return out, fmt.Errorf("decode %s: %w", describeSource(ctx), err)
	}
	for _, hook := range d.preHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &node); err != nil {
			return out, fmt.Errorf("decode %s: pre hook: %w", describeSource(ctx), err)
		}
	}
	if err := d.decodeNode(&node, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", describeSource(ctx), err)
	}
	for _, hook := range d.postHooks {
		if hook == nil {
			continue
		}
		if err := hook(ctx, &out); err != nil {
			return out, fmt.Errorf("decode %s: %w", describeSource(ctx), err)
		}
	}
	return out, nil
}

// decodeNode funnels the node through a strict decoder when known-field
// checking is on; yaml.Node.Decode has no strict mode of its own.
func (d *Decoder[T]) decodeNode(node *yaml.Node, out *T) error {
	if !d.knownFields {
		return node.Decode(out)
	}
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	strict := yaml.NewDecoder(bytes.NewReader(raw))
	strict.KnownFields(true)
	return strict.Decode(out)
}

func describeSource(ctx Context) string {
	if ctx.Source == "" {
		return "document"
	}
	return ctx.Source
}
