// Package errors provides structured error types for the SBE toolkit.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: schema element path,
// offending type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindOffsetRegression).
//		Path("OrderBook", "price").
//		Detail("declared offset 4 is behind block cursor 8").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OffsetRegression(errors.PhaseResolve, path, 4, 8)
//	err := errors.MissingNullValue(path, "char")
//
// The stream validator accumulates violations into a single ValidationError
// rather than stopping at the first, so schema authors see every problem in
// one pass. All errors implement the standard error interface and support
// errors.Is/As.
package errors
