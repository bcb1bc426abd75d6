package v1

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	DefaultArchive      = "https://mirrors.bfsu.edu.cn/ubuntu"
	DefaultOS           = "ubuntu"
	DefaultDistribution = "focal"
	DefaultUserAgent    = "Debian APT-HTTP/1.3 (2.0.9) non-interactive"
	DefaultCacheDir     = "/tmp/apt-mirror-minimal"
	DefaultTimeout      = time.Minute
)

// SetDefaults fills in every unset field.
func (s *MirrorSpec) SetDefaults() {
	if s.Archive == "" {
		s.Archive = DefaultArchive
	}
	if s.OS == "" {
		s.OS = DefaultOS
	}
	if s.Distribution == "" {
		s.Distribution = DefaultDistribution
	}
	if len(s.Components) == 0 {
		s.Components = []string{"main", "restricted"}
	}
	if len(s.Architectures) == 0 {
		s.Architectures = []string{"amd64", "i386"}
	}
	if len(s.Extensions) == 0 {
		s.Extensions = []string{"", ".gz", ".xz"}
	}
	if s.UserAgent == "" {
		s.UserAgent = DefaultUserAgent
	}
	if s.Timeout.Duration <= 0 {
		s.Timeout = metav1.Duration{Duration: DefaultTimeout}
	}
	if s.Parallelism < 1 {
		s.Parallelism = 1
	}
	if s.Cache.Type == "" {
		s.Cache.Type = CacheFS
	}
	if s.Cache.Type == CacheFS && s.Cache.Dir == "" {
		s.Cache.Dir = DefaultCacheDir
	}
}
