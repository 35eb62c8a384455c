// Package session owns the namespace that persists across execution calls.
//
// A [Session] wraps an embedded interpreter whose state survives from one
// Eval to the next: top-level bindings created by submitted code remain
// visible to later submissions, which is the persistence mechanism of the
// whole server. The namespace is seeded with the interpreter's standard
// library symbol set, a small set of convenience imports, and the tabular
// data package under the alias "df".
//
// Reset replaces the interpreter with a freshly constructed instance and
// re-seeds it; nothing survives a reset. Variables lists every visible
// binding with its literal textual representation, excluding names that
// start with the reserved prefix "_".
//
// Sessions are not safe for concurrent use. There is exactly one logical
// session per process and the server serializes calls against it.
package session
