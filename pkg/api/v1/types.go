package v1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

type CacheType string

const (
	CacheFS      CacheType = "fs"
	CacheS3      CacheType = "s3"
	CacheDisable CacheType = "none"
)

type MirrorSpec struct {
	// Archive is the root of the archive, e.g. https://deb.debian.org/debian
	Archive      string `json:"archive"`
	OS           string `json:"os"`
	Distribution string `json:"distribution"`

	Components    []string `json:"components,omitempty"`
	Architectures []string `json:"architectures,omitempty"`
	// Extensions is the ordered list of acceptable package index
	// encodings. The empty string selects the uncompressed index.
	Extensions []string `json:"extensions,omitempty"`

	UserAgent   string          `json:"userAgent,omitempty"`
	Timeout     metav1.Duration `json:"timeout,omitempty"`
	Parallelism int             `json:"parallelism,omitempty"`
	// MirrorAllVariants downloads every announced index variant into
	// the cache, not only the one that was parsed.
	MirrorAllVariants bool `json:"mirrorAllVariants,omitempty"`

	Cache Cache `json:"cache,omitempty"`
}

type Cache struct {
	Type CacheType `json:"type,omitempty"`
	Dir  string    `json:"dir,omitempty"`
	S3   S3Cache   `json:"s3,omitempty"`
}

type S3Cache struct {
	Bucket   string `json:"bucket"`
	Prefix   string `json:"prefix,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

type Mirror struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec MirrorSpec `json:"spec"`
}
