package app

import (
	"errors"
	"fmt"
	"strings"

	"khetao.com/optkit/option"
	"khetao.com/optkit/structured"
)

// AmbiguousSchemeError reports a scheme suffix matching more than one
// registered name.
type AmbiguousSchemeError struct {
	Suffix     string
	Candidates []string
}

func (e *AmbiguousSchemeError) Error() string {
	return fmt.Sprintf("scheme %q is ambiguous: %s", e.Suffix, strings.Join(e.Candidates, ", "))
}

var (
	errUnknownScheme = &structured.Error{
		Impact:      "No option handler was constructed.",
		Action:      "Run list to see the registered schemes.",
		LikelyCause: "Misspelled or unregistered scheme name.",
	}
	errAmbiguousScheme = &structured.Error{
		Impact:      "No option handler was constructed.",
		Action:      "Use the fully-qualified scheme name.",
		LikelyCause: "The scheme suffix matches several registered names.",
	}
	errBadOptions = &structured.Error{
		Impact:      "The options were not applied.",
		Action:      "Run describe with the scheme name to see the accepted options.",
		LikelyCause: "Malformed option tokens.",
	}
	errInternal = &structured.Error{
		Impact:      "The command did not complete.",
		Action:      "Open an issue with the command line used.",
		LikelyCause: "Software bug.",
	}
)

// classify wraps err in the structured template matching its cause.
func classify(err error) *structured.Error {
	var (
		unknown   *option.UnknownTypeError
		ambiguous *AmbiguousSchemeError
		conv      *option.ConversionError
		missing   *option.MissingValueError
		clash     *option.AmbiguousOptionError
		serr      *structured.Error
	)
	switch {
	case errors.As(err, &serr):
		return serr
	case errors.As(err, &ambiguous):
		return structured.NewErr(errAmbiguousScheme, err)
	case errors.As(err, &conv), errors.As(err, &missing), errors.As(err, &clash):
		return structured.NewErr(errBadOptions, err)
	case errors.As(err, &unknown):
		return structured.NewErr(errUnknownScheme, err)
	default:
		return structured.NewErr(errInternal, err)
	}
}
