package rosterapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Failure kinds. Match with errors.Is.
var (
	ErrNetwork    = errors.New("roster service unreachable")
	ErrAuth       = errors.New("credential rejected by roster service")
	ErrServer     = errors.New("roster service error")
	ErrValidation = errors.New("roster service rejected the request")
)

// APIError typed failure returned by every Client operation
type APIError struct {
	Kind       error             // one of the Err* sentinels
	Op         string            // fetch, create, search
	StatusCode int               // 0 for transport failures
	Message    string            // server-provided message, if any
	Fields     map[string]string // per-field messages from a validation rejection
	Err        error             // underlying cause
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", e.Op, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	} else if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + e.Fields[k]
		}
		b.WriteString(" [" + strings.Join(parts, ", ") + "]")
	}
	return b.String()
}

// Is matches the failure kind
func (e *APIError) Is(target error) bool {
	return target == e.Kind
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps a non-2xx HTTP status to a failure kind
func classifyStatus(op string, status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrAuth
	case op == opCreate && (status == 400 || status == 409 || status == 422):
		return ErrValidation
	default:
		return ErrServer
	}
}
