// Package engine orchestrates one execution call against a session.
//
// A call flows through five stages: the reset short-circuit, the
// capture-scoped statement run, the trailing-expression evaluation, result
// classification, and envelope assembly. Failures raised by submitted code
// are data, not protocol errors: they are caught at the boundary and
// returned as an {error} envelope in a normal response. The only raising
// path is [ErrMissingCode], which the transport layer surfaces as a
// tool-call error.
//
// # Trailing expression
//
// After the statement run succeeds, the last non-empty line of the
// submitted code is re-evaluated as a standalone expression to obtain the
// call's result value. The line is only re-evaluated when it parses as a
// pure expression; an assignment, a declaration, or a compound-statement
// fragment (`}` or `if x {`) ends the call successfully with captured
// output and no result. When the line is an expression and its
// re-evaluation fails, the whole call reports that failure.
//
// # Classification
//
// The result value is classified with one level of type dispatch, never
// recursing into nested values: a dataframe becomes the dedicated tabular
// document and replaces the envelope entirely; slices, arrays, and maps
// pass through structured for JSON encoding; everything else is rendered
// as its literal Go-syntax representation.
package engine
