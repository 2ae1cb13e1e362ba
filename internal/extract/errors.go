package extract

import (
	"errors"
	"fmt"
)

// Kind classifies extraction failures for callers that map them to HTTP
// statuses or user-facing messages.
type Kind string

const (
	// KindUnsupportedFormat means no extractor matched the MIME type or
	// extension and the content does not look like text.
	KindUnsupportedFormat Kind = "unsupported_format"
	// KindCorruptedFile means a format-specific parser rejected the bytes.
	KindCorruptedFile Kind = "corrupted_file"
	// KindTimeout means a document- or page-level time budget was exceeded.
	KindTimeout Kind = "extraction_timeout"
	// KindOversize means the file exceeded the caller-enforced size limit.
	// The extractor itself never produces it; the HTTP layer does.
	KindOversize Kind = "oversize"
)

// Error is a typed extraction failure. Message names the probable cause and
// Hint suggests a remedy; neither exposes parser internals.
type Error struct {
	Kind    Kind
	Format  string
	Message string
	Hint    string
	err     error
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Hint)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

func unsupportedErr(mimeType, fileName string) *Error {
	return &Error{
		Kind:    KindUnsupportedFormat,
		Message: fmt.Sprintf("unsupported file type %q for %q", mimeType, fileName),
		Hint:    "upload a PDF, Word, HTML, CSV, JSON, or plain text file",
	}
}

func corruptedErr(format, hint string, err error) *Error {
	return &Error{
		Kind:    KindCorruptedFile,
		Format:  format,
		Message: fmt.Sprintf("could not read the %s file", format),
		Hint:    hint,
		err:     err,
	}
}

func timeoutErr(what string) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("%s took too long", what),
		Hint:    "the file may be malformed or too complex; try a smaller export",
	}
}

// KindOf returns the Kind of err if it is (or wraps) an extraction Error,
// or "" otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsUnsupported reports whether err is an UnsupportedFormat failure.
func IsUnsupported(err error) bool { return KindOf(err) == KindUnsupportedFormat }

// IsCorrupted reports whether err is a CorruptedFile failure.
func IsCorrupted(err error) bool { return KindOf(err) == KindCorruptedFile }
