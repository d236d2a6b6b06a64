package pool

import "strings"

// EnsureMARS returns connStr with the multiple-active-result-sets flag
// injected when it is absent; injected reports whether the flag had to
// be added. SQL Server introspection issues overlapping result
// iterations on one logical connection, so MARS is mandatory.
func EnsureMARS(connStr string) (rewritten string, injected bool) {
	if strings.Contains(strings.ToLower(connStr), "multipleactiveresultsets") {
		return connStr, false
	}
	sep := ";"
	if connStr == "" || strings.HasSuffix(connStr, ";") {
		sep = ""
	}
	return connStr + sep + "MultipleActiveResultSets=true", true
}
