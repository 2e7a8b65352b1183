package commands

import (
	"fmt"
	"os"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/lazytorrent/pkg/bencode"
	"github.com/jesseduffield/lazytorrent/pkg/torrent"
	"golang.org/x/xerrors"
)

const (
	// SourceMissing tells us that the file we were asked to read does not exist
	SourceMissing = iota
	// InvalidBencode tells us that a torrent file could not be decoded
	InvalidBencode
	// InvalidJSON tells us that a JSON file is not a torrent in JSON form
	InvalidJSON
	RootNotSet
	RootIsFilesystemRoot
	RootNotCommon
	// PiecesMissing tells us that the torrent has files but no piece hashes
	PiecesMissing
)

// WrapError wraps an error for the sake of showing a stack trace at the top level
// the go-errors package, for some reason, does not return nil when you try to wrap
// a non-error, so we're just doing it here
func WrapError(err error) error {
	if err == nil {
		return err
	}

	return errors.Wrap(err, 0)
}

// ComplexError an error which carries a code so that calling code has an easier job to do
// adapted from https://medium.com/yakka/better-go-error-handling-with-xerrors-1987650e0c79
type ComplexError struct {
	Message string
	Code    int
	frame   xerrors.Frame
}

// NewComplexError records the caller's frame along with the code
func NewComplexError(code int, message string) ComplexError {
	return ComplexError{Message: message, Code: code, frame: xerrors.Caller(1)}
}

// FormatError is a function
func (ce ComplexError) FormatError(p xerrors.Printer) error {
	p.Printf("%d %s", ce.Code, ce.Message)
	ce.frame.Format(p)
	return nil
}

// Format is a function
func (ce ComplexError) Format(f fmt.State, c rune) {
	xerrors.FormatError(ce, f, c)
}

func (ce ComplexError) Error() string {
	return ce.Message
}

// HasErrorCode tells whether err is, or wraps, a ComplexError with the given code
func HasErrorCode(err error, code int) bool {
	var originalErr ComplexError
	if xerrors.As(err, &originalErr) {
		return originalErr.Code == code
	}
	return false
}

// classifyError attaches a code to the errors of the torrent and bencode
// packages that the user can do something about
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var syntaxErr *bencode.SyntaxError
	switch {
	case xerrors.As(err, &syntaxErr):
		return NewComplexError(InvalidBencode, err.Error())
	case xerrors.Is(err, torrent.ErrRootNotSet):
		return NewComplexError(RootNotSet, err.Error())
	case xerrors.Is(err, torrent.ErrRootIsFilesystemRoot):
		return NewComplexError(RootIsFilesystemRoot, err.Error())
	case xerrors.Is(err, torrent.ErrRootNotCommon):
		return NewComplexError(RootNotCommon, err.Error())
	case xerrors.Is(err, os.ErrNotExist):
		return NewComplexError(SourceMissing, err.Error())
	}

	return WrapError(err)
}
