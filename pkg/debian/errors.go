package debian

import (
	"errors"
	"fmt"
)

var ErrNoHashIndex = errors.New("release manifest has no MD5Sum section")

// ManifestError describes why a release manifest could not be turned
// into a hash index.
type ManifestError struct {
	Line   int
	Reason string
	Err    error
}

func (e *ManifestError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parsing release manifest: %s", e.Reason)
	}
	return fmt.Sprintf("parsing release manifest: line %d: %s", e.Line, e.Reason)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

type DecodeErrorKind int

const (
	// BadStream means the compressed payload could not be inflated.
	BadStream DecodeErrorKind = iota
	// Encoding means the inflated payload was not valid UTF-8.
	Encoding
)

func (k DecodeErrorKind) String() string {
	switch k {
	case BadStream:
		return "bad stream"
	case Encoding:
		return "encoding"
	default:
		return "unknown"
	}
}

// DecodeError is returned when a package index variant cannot be
// decoded into text.
type DecodeError struct {
	Kind    DecodeErrorKind
	Variant Variant
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decoding %s index: %s", e.Variant, e.Kind)
	}
	return fmt.Sprintf("decoding %s index: %s: %s", e.Variant, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StanzaError identifies a stanza that was skipped while parsing a
// Packages index.
type StanzaError struct {
	// Line is the line on which the stanza started.
	Line    int
	Package string
	Reason  string
}

func (e *StanzaError) Error() string {
	if e.Package == "" {
		return fmt.Sprintf("stanza at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("stanza %s at line %d: %s", e.Package, e.Line, e.Reason)
}
