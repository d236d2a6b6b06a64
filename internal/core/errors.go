package core

import "fmt"

// ConfigError reports a missing or invalid connection string, provider,
// or output path. It always aborts a run before introspection begins.
type ConfigError struct {
	Detail string
	Cause  error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Detail, e.Cause)
	}
	return fmt.Sprintf("config error: %s", e.Detail)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// ConnectivityError reports pool exhaustion, a connection-open failure,
// or a catalog-query failure. It aborts the entire run after the pool
// has been drained.
type ConnectivityError struct {
	Table  string
	Detail string
	Cause  error
}

func (e *ConnectivityError) Error() string {
	prefix := "connectivity error"
	if e.Table != "" {
		prefix = fmt.Sprintf("connectivity error on %s", e.Table)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Detail)
}

func (e *ConnectivityError) Unwrap() error { return e.Cause }

// SchemaError reports a catalog row that violates a schema invariant
// (e.g. non-contiguous index key ordinals). It is table-local and
// non-fatal: the caller logs it and skips the offending table.
type SchemaError struct {
	Table  string
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error on %s: %s", e.Table, e.Detail)
}

// RelationshipAnalysisError wraps an internal fault raised while
// classifying a table pair. It never fails the run: callers downgrade
// the pair to Unknown and log a warning.
type RelationshipAnalysisError struct {
	Source string
	Target string
	Cause  error
}

func (e *RelationshipAnalysisError) Error() string {
	return fmt.Sprintf("relationship analysis error (%s -> %s): %v", e.Source, e.Target, e.Cause)
}

func (e *RelationshipAnalysisError) Unwrap() error { return e.Cause }

// CodeGenerationError wraps a failure surfaced by the downstream code
// emitter.
type CodeGenerationError struct {
	Entity string
	Cause  error
}

func (e *CodeGenerationError) Error() string {
	return fmt.Sprintf("code generation error for %s: %v", e.Entity, e.Cause)
}

func (e *CodeGenerationError) Unwrap() error { return e.Cause }
