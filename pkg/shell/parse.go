package shell

import (
	"strings"

	"github.com/pkg/errors"
	"mvdan.cc/sh/v3/syntax"
)

// ErrEmpty is returned by Parse for a script with no commands: blank input,
// whitespace, or only comments. It is not a failure.
var ErrEmpty = errors.New("empty script")

// FatalError is a script that cannot be parsed.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return "parse error: " + e.Err.Error()
}

func (e *FatalError) Unwrap() error { return e.Err }

// Parse parses a single submitted line as a POSIX shell script.
func Parse(script string) (*syntax.File, error) {
	file, err := syntax.NewParser(syntax.Variant(syntax.LangPOSIX)).
		Parse(strings.NewReader(script), "")
	if err != nil {
		return nil, &FatalError{Err: err}
	}
	if len(file.Stmts) == 0 {
		return nil, ErrEmpty
	}
	return file, nil
}
