package debian

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// Variant is one of the encodings an archive may publish a Packages
// index in.
type Variant int

const (
	Identity Variant = iota
	Gzip
	XZ
)

// Extension returns the suffix appended to "Packages" for this variant.
func (v Variant) Extension() string {
	switch v {
	case Gzip:
		return ".gz"
	case XZ:
		return ".xz"
	default:
		return ""
	}
}

func (v Variant) String() string {
	switch v {
	case Identity:
		return "identity"
	case Gzip:
		return "gzip"
	case XZ:
		return "xz"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant maps a file extension (e.g. ".gz") to its Variant. The
// empty string is the uncompressed index.
func ParseVariant(ext string) (Variant, error) {
	switch ext {
	case "":
		return Identity, nil
	case ".gz", "gz":
		return Gzip, nil
	case ".xz", "xz":
		return XZ, nil
	default:
		return Identity, fmt.Errorf("unsupported package index extension: %q", ext)
	}
}

// ParseVariants maps each extension in order, preserving the order as
// the preference list.
func ParseVariants(exts []string) ([]Variant, error) {
	out := make([]Variant, len(exts))
	for i, ext := range exts {
		v, err := ParseVariant(ext)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Decode fully inflates raw according to the variant and returns the
// resulting text.
func Decode(raw []byte, v Variant) (string, error) {
	var data []byte
	switch v {
	case Identity:
		data = raw
	case Gzip:
		r, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return "", &DecodeError{Kind: BadStream, Variant: v, Err: err}
		}
		defer r.Close()
		data, err = io.ReadAll(r)
		if err != nil {
			return "", &DecodeError{Kind: BadStream, Variant: v, Err: err}
		}
	case XZ:
		r, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return "", &DecodeError{Kind: BadStream, Variant: v, Err: err}
		}
		data, err = io.ReadAll(r)
		if err != nil {
			return "", &DecodeError{Kind: BadStream, Variant: v, Err: err}
		}
	default:
		return "", &DecodeError{Kind: BadStream, Variant: v, Err: fmt.Errorf("unknown variant")}
	}
	if !utf8.Valid(data) {
		return "", &DecodeError{Kind: Encoding, Variant: v}
	}
	return string(data), nil
}

// Encode is the inverse of Decode.
func Encode(text string, v Variant) ([]byte, error) {
	var buf bytes.Buffer
	switch v {
	case Identity:
		return []byte(text), nil
	case Gzip:
		w := gzip.NewWriter(&buf)
		if _, err := io.WriteString(w, text); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case XZ:
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(w, text); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown variant: %s", v)
	}
	return buf.Bytes(), nil
}
