package cmd

import (
	"os"

	v1 "github.com/djcass44/apt-mirror/pkg/api/v1"
	"github.com/djcass44/apt-mirror/pkg/airutil"
	"k8s.io/apimachinery/pkg/util/yaml"
)

// readConfig loads a mirror configuration. An empty path yields the
// built-in defaults.
func readConfig(s string) (v1.Mirror, error) {
	var config v1.Mirror
	if s != "" {
		f, err := os.Open(s)
		if err != nil {
			return v1.Mirror{}, err
		}
		defer f.Close()

		if err := yaml.NewYAMLOrJSONDecoder(f, 4).Decode(&config); err != nil {
			return v1.Mirror{}, err
		}
	}
	expandSpec(&config.Spec)
	config.Spec.SetDefaults()
	return config, nil
}

func expandSpec(spec *v1.MirrorSpec) {
	spec.Archive = airutil.ExpandEnv(spec.Archive)
	spec.OS = airutil.ExpandEnv(spec.OS)
	spec.Distribution = airutil.ExpandEnv(spec.Distribution)
	spec.UserAgent = airutil.ExpandEnv(spec.UserAgent)
	spec.Components = airutil.ExpandAll(spec.Components)
	spec.Architectures = airutil.ExpandAll(spec.Architectures)
	spec.Cache.Dir = airutil.ExpandEnv(spec.Cache.Dir)
	spec.Cache.S3.Bucket = airutil.ExpandEnv(spec.Cache.S3.Bucket)
	spec.Cache.S3.Prefix = airutil.ExpandEnv(spec.Cache.S3.Prefix)
	spec.Cache.S3.Endpoint = airutil.ExpandEnv(spec.Cache.S3.Endpoint)
}
