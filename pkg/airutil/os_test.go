package airutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("MIRROR_HOST", "deb.debian.org")

	var cases = []struct {
		in  string
		out string
	}{
		{"https://${MIRROR_HOST}/debian", "https://deb.debian.org/debian"},
		{"${MIRROR_MISSING=fallback}", "fallback"},
		{"focal", "focal"},
	}

	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			assert.EqualValues(t, tt.out, ExpandEnv(tt.in))
		})
	}
}

func TestExpandAll(t *testing.T) {
	t.Setenv("MIRROR_ARCH", "arm64")

	out := ExpandAll([]string{"amd64", "${MIRROR_ARCH}"})
	assert.EqualValues(t, []string{"amd64", "arm64"}, out)
	assert.Nil(t, ExpandAll(nil))
}
