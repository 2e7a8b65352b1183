package utils

import (
	"regexp"
	"strings"
)

// WildcardToRegexp turns a shell style pattern, where * matches any run of
// characters and ? matches one, into a regular expression. The result is not
// anchored.
func WildcardToRegexp(pattern string) string {
	var sb strings.Builder
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return sb.String()
}

// CompileWildcard compiles a wildcard pattern that has to match the whole
// input, optionally ignoring case
func CompileWildcard(pattern string, matchCase bool) (*regexp.Regexp, error) {
	expr := "^" + WildcardToRegexp(pattern) + "$"
	if !matchCase {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}
