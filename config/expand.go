package config

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
)

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnv replaces ${VAR} references in s with their environment values.
// Every referenced variable must be set. "$$" yields a literal "$". Bare
// $VAR forms are left untouched.
func ExpandEnv(s string) (string, error) {
	const dollar = "\x00SHAPEOPS_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollar)

	var missing []string
	out := envRef.ReplaceAllStringFunc(s, func(ref string) string {
		key := envRef.FindStringSubmatch(ref)[1]
		v, ok := os.LookupEnv(key)
		if !ok {
			if !slices.Contains(missing, key) {
				missing = append(missing, key)
			}
			return ref
		}
		return v
	})
	if len(missing) > 0 {
		slices.Sort(missing)
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return strings.ReplaceAll(out, dollar, "$"), nil
}
