package meta

import (
	"os"
	"regexp"
)

var envExpr = regexp.MustCompile(`\$\{env\.([A-Za-z0-9_]*)\}`)

// expandEnv replaces every ${env.NAME} with the value of NAME, or "" when
// unset.  Malformed expressions are left untouched.
func expandEnv(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	return envExpr.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envExpr.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}
