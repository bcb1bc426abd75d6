package airutil

import "github.com/drone/envsubst"

// ExpandEnv substitutes ${VAR} references. Values that fail to expand
// are returned unchanged.
func ExpandEnv(s string) string {
	val, err := envsubst.EvalEnv(s)
	if err != nil {
		return s
	}
	return val
}

// ExpandAll expands every element of ss in place.
func ExpandAll(ss []string) []string {
	for i := range ss {
		ss[i] = ExpandEnv(ss[i])
	}
	return ss
}
