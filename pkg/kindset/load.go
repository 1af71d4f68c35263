package kindset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-symbol/internal/decode"
)

// Set-level errors.
var (
	ErrUnknownKind     = errors.New("kindset: unknown kind")
	ErrPatternMismatch = errors.New("value does not match pattern")
)

// File is the on-disk shape of a kind-set document.
type File struct {
	Kinds []Definition `yaml:"kinds"`
}

// Load reads a YAML kind-set document from r and registers every definition
// into the set. When any declaration is broken the error names the offending
// kind and nothing past it is registered.
func (s *Set) Load(source string, r io.Reader) error {
	dec := decode.New(
		decode.WithKnownFields[File](),
		decode.WithPostHook[File](func(ctx decode.Context, file *File) error {
			if len(file.Kinds) == 0 {
				return errors.New("kindset: document declares no kinds")
			}
			for _, def := range file.Kinds {
				if err := def.Validate(); err != nil {
					return err
				}
			}
			return nil
		}),
	)
	file, err := dec.Decode(decode.Context{Source: source}, r)
	if err != nil {
		return err
	}
	for _, def := range file.Kinds {
		if err := s.Register(def); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile is Load over a file path.
func (s *Set) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("kindset: %w", err)
	}
	defer f.Close()
	return s.Load(path, f)
}
