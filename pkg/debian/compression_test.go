package debian

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_RoundTrip(t *testing.T) {
	var texts = []string{
		"",
		"Package: curl\nVersion: 7.68.0-1ubuntu2\n\n",
		"Package: ünïcödé\nDescription: 日本語\n\n",
	}

	for _, v := range DefaultPreference {
		for _, text := range texts {
			t.Run(v.String(), func(t *testing.T) {
				raw, err := Encode(text, v)
				require.NoError(t, err)

				out, err := Decode(raw, v)
				assert.NoError(t, err)
				assert.EqualValues(t, text, out)
			})
		}
	}
}

func TestDecode_BadStream(t *testing.T) {
	for _, v := range []Variant{Gzip, XZ} {
		t.Run(v.String(), func(t *testing.T) {
			_, err := Decode([]byte("Package: curl\n\n"), v)

			var derr *DecodeError
			require.True(t, errors.As(err, &derr))
			assert.EqualValues(t, BadStream, derr.Kind)
			assert.EqualValues(t, v, derr.Variant)
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	raw, err := Encode("Package: curl\nVersion: 7.68.0\n\n", Gzip)
	require.NoError(t, err)

	_, err = Decode(raw[:len(raw)/2], Gzip)
	var derr *DecodeError
	require.True(t, errors.As(err, &derr))
	assert.EqualValues(t, BadStream, derr.Kind)
}

func TestDecode_Encoding(t *testing.T) {
	invalid := string([]byte{0xff, 0xfe, 0xfd})
	for _, v := range DefaultPreference {
		t.Run(v.String(), func(t *testing.T) {
			raw, err := Encode(invalid, v)
			require.NoError(t, err)

			_, err = Decode(raw, v)
			var derr *DecodeError
			require.True(t, errors.As(err, &derr))
			assert.EqualValues(t, Encoding, derr.Kind)
		})
	}
}

func TestParseVariant(t *testing.T) {
	var cases = []struct {
		in  string
		out Variant
		ok  bool
	}{
		{"", Identity, true},
		{".gz", Gzip, true},
		{".xz", XZ, true},
		{"xz", XZ, true},
		{".bz2", Identity, false},
		{".zst", Identity, false},
	}

	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			out, err := ParseVariant(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.EqualValues(t, tt.out, out)
		})
	}
}

func TestParseVariants(t *testing.T) {
	out, err := ParseVariants([]string{".xz", "", ".gz"})
	assert.NoError(t, err)
	assert.EqualValues(t, []Variant{XZ, Identity, Gzip}, out)

	_, err = ParseVariants([]string{".gz", ".lz4"})
	assert.Error(t, err)
}
