package debian

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"pault.ag/go/debian/control"
)

// HashSection is the manifest section used to build the HashIndex.
//
// MD5 is the weakest digest a manifest carries, but it is also the
// only one old archives are guaranteed to have.
const HashSection = "MD5Sum"

const maxLineSize = 1024 * 1024

// ReleaseInfo is the descriptive header of a release manifest.
type ReleaseInfo struct {
	Origin        string
	Label         string
	Suite         string
	Codename      string
	Date          string
	Components    []string `delim:" "`
	Architectures []string `delim:" "`
}

// ParseRelease extracts the MD5Sum hash index from the text of a
// release manifest.
//
// Only the first MD5Sum section is read. Capture stops at the first
// line that is not indented by a space. A malformed row fails the whole
// parse since the index is the authority on which files may be fetched.
func ParseRelease(text string) (HashIndex, error) {
	s := bufio.NewScanner(strings.NewReader(text))
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	index := HashIndex{}
	var found, capturing bool
	var n int
	for s.Scan() {
		n++
		line := strings.TrimSuffix(s.Text(), "\r")
		if !found {
			if isSectionHeader(line, HashSection) {
				found = true
				capturing = true
			}
			continue
		}
		if !capturing {
			continue
		}
		if !strings.HasPrefix(line, " ") {
			capturing = false
			continue
		}
		digest, path, err := parseHashRow(line)
		if err != nil {
			return nil, &ManifestError{Line: n, Reason: err.Error(), Err: err}
		}
		index[path] = digest
	}
	if err := s.Err(); err != nil {
		return nil, &ManifestError{Reason: "reading manifest", Err: err}
	}
	if !found {
		return nil, &ManifestError{Reason: ErrNoHashIndex.Error(), Err: ErrNoHashIndex}
	}
	return index, nil
}

func isSectionHeader(line, name string) bool {
	return strings.TrimSuffix(strings.TrimSpace(line), ":") == name
}

func parseHashRow(line string) (string, string, error) {
	cols := strings.Fields(line)
	if len(cols) != 3 {
		return "", "", fmt.Errorf("expected '<digest> <size> <path>', got %d fields", len(cols))
	}
	// the size is validated but not kept
	if _, err := strconv.ParseUint(cols[1], 10, 64); err != nil {
		return "", "", fmt.Errorf("invalid size %q", cols[1])
	}
	return cols[0], cols[2], nil
}

// ParseReleaseInfo decodes the header paragraph of a release manifest.
func ParseReleaseInfo(text string) (*ReleaseInfo, error) {
	dec, err := control.NewDecoder(strings.NewReader(text), nil)
	if err != nil {
		return nil, err
	}
	var info ReleaseInfo
	if err := dec.Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding release header: %w", err)
	}
	return &info, nil
}
