package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes produced by the parse paths.
const (
	CodeParseError  = "parse_error"  // Input is not valid JSON/YAML.
	CodeInvalidType = "invalid_type" // Document shape the decoder cannot walk.
)

// Issue represents a single parse diagnostic. Only the document parse paths
// (ParseJSON, FromYAML) produce these; the tree operations degrade to
// best-effort defaults instead of erroring.
type Issue struct {
	Path    string // Dot-joined tree path; "(root)" for whole-document failures.
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// parseIssue wraps a decode failure as a single-Issue error.
func parseIssue(code string, err error) Issues {
	return Issues{Issue{Path: "(root)", Code: code, Message: err.Error(), Cause: err}}
}
