// Package server exposes the execution session as a three-tool MCP server.
//
// The tools are execute_go (run code against the persistent namespace,
// optionally resetting it), list_variables (enumerate visible bindings),
// and install_package (extend the importable package set). Every response
// is a single text content block carrying a JSON document, with one
// exception: the reset confirmation is plain prose.
//
// Two failure tiers apply. Protocol errors — missing required arguments,
// unknown tools — are returned as Go errors and raised by the SDK as
// tool-call errors. Execution-domain failures are data: they come back as
// {error} documents in a normal response.
//
// One mutex serializes every call. Output-capture redirection is
// interpreter-global, so two in-flight executions would corrupt each
// other's buffers; the session is single-flight by construction.
package server
