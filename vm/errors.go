package vm

import "fmt"

// RuntimeError represents a failure in the running program itself (a type
// error, an out-of-range access, division by zero, ...).
type RuntimeError struct {
	Message string
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: %s", e.Message)
}

// DeveloperError represents an invariant violated by the compiler or VM
// itself, never by source input — e.g. an empty-stack pop. It should never
// surface outside of development.
type DeveloperError struct {
	Message string
}

func (e DeveloperError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}
