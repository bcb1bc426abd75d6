package debian

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPackages = `Package: curl
Architecture: amd64
Version: 7.68.0-1ubuntu2
Priority: optional
Section: web
Depends: libc6 (>= 2.17), libcurl4 (= 7.68.0-1ubuntu2), zlib1g (>= 1:1.1.4)
Suggests: curl-doc
Filename: pool/main/c/curl/curl_7.68.0-1ubuntu2_amd64.deb
Size: 161120
MD5sum: 1a2b3c4d5e6f708192a3b4c5d6e7f809
SHA1: 0123456789abcdef0123456789abcdef01234567
SHA256: 0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef
Description: command line tool for transferring data with URL syntax
 This is a command line tool and library for transferring data with URL
 syntax, supporting DICT, FILE, FTP, FTPS, GOPHER, HTTP, HTTPS.

Package: libcurl4
Architecture: amd64
Version: 7.68.0-1ubuntu2
Depends: libc6 (>= 2.17)
Filename: pool/main/c/curl/libcurl4_7.68.0-1ubuntu2_amd64.deb
Size: 233848

`

func TestParseStanzas(t *testing.T) {
	out, err := ParseStanzas(testPackages)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.EqualValues(t, Package{
		Name:         "curl",
		Architecture: "amd64",
		Version:      "7.68.0-1ubuntu2",
		Depends:      "libc6 (>= 2.17), libcurl4 (= 7.68.0-1ubuntu2), zlib1g (>= 1:1.1.4)",
		Suggests:     "curl-doc",
		Filename:     "pool/main/c/curl/curl_7.68.0-1ubuntu2_amd64.deb",
		Size:         161120,
		MD5sum:       "1a2b3c4d5e6f708192a3b4c5d6e7f809",
		SHA1:         "0123456789abcdef0123456789abcdef01234567",
		SHA256:       "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
	}, out[0])
	assert.EqualValues(t, "libcurl4", out[1].Name)
	assert.EqualValues(t, uint64(233848), out[1].Size)
	assert.Empty(t, out[1].SHA256)
}

func TestParseStanzas_Minimal(t *testing.T) {
	out, err := ParseStanzas("Package: curl\nVersion: 7.68.0\n\n")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.EqualValues(t, Package{Name: "curl", Version: "7.68.0"}, out[0])
}

func TestParseStanzas_Boundaries(t *testing.T) {
	var cases = []struct {
		name  string
		in    string
		names []string
	}{
		{
			"trailing stanza without blank line is kept",
			"Package: a\n\nPackage: b\nVersion: 1",
			[]string{"a", "b"},
		},
		{
			"repeated blank lines do not emit records",
			"\n\nPackage: a\n\n\n\nPackage: b\n\n\n",
			[]string{"a", "b"},
		},
		{
			"duplicate names are kept in order",
			"Package: a\nVersion: 1\n\nPackage: a\nVersion: 2\n\n",
			[]string{"a", "a"},
		},
		{
			"windows line endings",
			"Package: a\r\n\r\nPackage: b\r\n\r\n",
			[]string{"a", "b"},
		},
		{
			"empty input",
			"",
			nil,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseStanzas(tt.in)
			assert.NoError(t, err)

			var names []string
			for _, p := range out {
				names = append(names, p.Name)
			}
			assert.EqualValues(t, tt.names, names)
		})
	}
}

func TestParseStanzas_Fields(t *testing.T) {
	in := "Package: a\nX-Custom: ignored\nSuggests: b: c\nDepends:\n continuation: line\nno separator here\n\n"
	out, err := ParseStanzas(in)
	require.NoError(t, err)
	require.Len(t, out, 1)

	// only the first separator splits the line
	assert.EqualValues(t, "b: c", out[0].Suggests)
	assert.Empty(t, out[0].Depends)
}

func TestParseStanzas_Skipped(t *testing.T) {
	in := "Package: a\nSize: 10\n\nPackage: b\nSize: ten\n\nVersion: 1.0\n\nPackage: c\n\n"
	out, err := ParseStanzas(in)

	require.Len(t, out, 2)
	assert.EqualValues(t, "a", out[0].Name)
	assert.EqualValues(t, uint64(10), out[0].Size)
	assert.EqualValues(t, "c", out[1].Name)

	require.Error(t, err)
	var serr *StanzaError
	require.True(t, errors.As(err, &serr))
	// errors.As returns the first match
	assert.EqualValues(t, "b", serr.Package)
	assert.EqualValues(t, 4, serr.Line)
	assert.Contains(t, err.Error(), "missing Package field")
}
