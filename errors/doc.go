// Package errors provides structured error types for codecs and transcoders.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go type, format name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("player", "level").
//		GoType("int32").
//		Format("json").
//		Detail("expected a number").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseDecode, path, "int32", "json")
//	err := errors.OutOfBounds(errors.PhaseDecode, path, 10, 5)
//
// Combinators prefix paths as errors bubble up, so a failure deep inside a
// list of records reads as "players.3.level".
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
