// Package structured carries user-facing detail alongside an error so that
// loggers can emit it as separate fields.
package structured

import "fmt"

type Error struct {
	// MoreInfo is additional information about the error, such as a link to
	// documentation.
	MoreInfo string
	// Impact is the likely impact of the error, e.g. "The command produced no output."
	Impact string
	// Action is the next step the user should take, e.g. "Run optctl list."
	Action string
	// LikelyCause is the likely cause for the error, e.g. "Misspelled type name."
	LikelyCause string
	// Err is the original error.
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("\tmoreInfo=%s impact=%s action=%s likelyCause=%s err=%v",
		e.MoreInfo, e.Impact, e.Action, e.LikelyCause, e.Err)
}

// NewErr returns a copy of serr wrapping err. serr itself is not modified,
// so it can be kept as a package-level template.
func NewErr(serr *Error, err error) *Error {
	ne := *serr
	ne.Err = err
	return &ne
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Fields lists the details as key/value pairs in a fixed order. Empty values
// are included; callers decide whether to drop them.
func (e *Error) Fields() [][2]string {
	if e == nil {
		return nil
	}
	var errStr string
	if e.Err != nil {
		errStr = e.Err.Error()
	}
	return [][2]string{
		{"moreInfo", e.MoreInfo},
		{"impact", e.Impact},
		{"action", e.Action},
		{"likelyCause", e.LikelyCause},
		{"err", errStr},
	}
}
