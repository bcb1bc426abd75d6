package debian

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRelease = `Origin: Ubuntu
Label: Ubuntu
Suite: focal
Version: 20.04
Codename: focal
Date: Thu, 23 Apr 2020 17:33:17 UTC
Architectures: amd64 arm64 i386
Components: main restricted universe multiverse
Description: Ubuntu Focal 20.04
MD5Sum:
 d41d8cd98f00b204e9800998ecf8427e 0 main/binary-amd64/Packages
 6e2a8a7e0ac7b5b0e07bb5f1b0d07a6c 1273 main/binary-amd64/Packages.gz
 0b9bc2d1e23e1f0b1fcbc3bb5d7cf6c5 1180 main/binary-amd64/Packages.xz
SHA1:
 da39a3ee5e6b4b0d3255bfef95601890afd80709 0 main/binary-i386/Packages
SHA256:
 e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855 0 main/binary-i386/Packages
`

func TestParseRelease(t *testing.T) {
	index, err := ParseRelease(testRelease)
	require.NoError(t, err)

	assert.Len(t, index, 3)
	assert.EqualValues(t, "6e2a8a7e0ac7b5b0e07bb5f1b0d07a6c", index["main/binary-amd64/Packages.gz"])
	assert.True(t, index.Has("main/binary-amd64/Packages"))
	assert.True(t, index.Has("main/binary-amd64/Packages.xz"))
	// only present in the other hash sections
	assert.False(t, index.Has("main/binary-i386/Packages"))
}

func TestParseRelease_Sections(t *testing.T) {
	var cases = []struct {
		name string
		in   string
		out  HashIndex
	}{
		{
			"rows before the header are ignored",
			"Description: foo\n aaa 1 before/Packages\nMD5Sum:\n bbb 2 after/Packages\n",
			HashIndex{"after/Packages": "bbb"},
		},
		{
			"only the first section is read",
			"MD5Sum:\n aaa 1 first/Packages\nSHA1:\n bbb 2 sha1/Packages\nMD5Sum:\n ccc 3 second/Packages\n",
			HashIndex{"first/Packages": "aaa"},
		},
		{
			"duplicate paths keep the last digest",
			"MD5Sum:\n aaa 1 main/Packages\n bbb 1 main/Packages\n",
			HashIndex{"main/Packages": "bbb"},
		},
		{
			"header without a colon",
			"MD5Sum\n aaa 1 main/Packages\n",
			HashIndex{"main/Packages": "aaa"},
		},
		{
			"windows line endings",
			"MD5Sum:\r\n aaa 1 main/Packages\r\nSHA1:\r\n",
			HashIndex{"main/Packages": "aaa"},
		},
		{
			"empty section",
			"MD5Sum:\nSHA1:\n aaa 1 main/Packages\n",
			HashIndex{},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseRelease(tt.in)
			assert.NoError(t, err)
			assert.EqualValues(t, tt.out, out)
		})
	}
}

func TestParseRelease_Malformed(t *testing.T) {
	var cases = []struct {
		name string
		in   string
		line int
	}{
		{
			"too few fields",
			"Suite: focal\nMD5Sum:\n aaa 1 main/Packages\n bbb 2\n",
			4,
		},
		{
			"too many fields",
			"MD5Sum:\n aaa 1 main/Packages extra\n",
			2,
		},
		{
			"invalid size",
			"MD5Sum:\n aaa big main/Packages\n",
			2,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseRelease(tt.in)
			assert.Nil(t, out)

			var merr *ManifestError
			require.True(t, errors.As(err, &merr))
			assert.EqualValues(t, tt.line, merr.Line)
		})
	}
}

func TestParseRelease_MissingSection(t *testing.T) {
	_, err := ParseRelease("Suite: focal\nSHA256:\n aaa 1 main/Packages\n")
	assert.ErrorIs(t, err, ErrNoHashIndex)

	var merr *ManifestError
	assert.True(t, errors.As(err, &merr))
}

func TestParseReleaseInfo(t *testing.T) {
	info, err := ParseReleaseInfo(testRelease)
	require.NoError(t, err)

	assert.EqualValues(t, "focal", info.Suite)
	assert.EqualValues(t, "focal", info.Codename)
	assert.EqualValues(t, "Ubuntu", info.Origin)
	assert.EqualValues(t, []string{"main", "restricted", "universe", "multiverse"}, info.Components)
	assert.EqualValues(t, []string{"amd64", "arm64", "i386"}, info.Architectures)
}
