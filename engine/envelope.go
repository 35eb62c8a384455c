package engine

// Request carries one execution call.
type Request struct {
	// Code is the source to evaluate. Required unless Reset is set.
	Code string

	// Reset, when true, clears the session instead of running code.
	Reset bool
}

// Envelope is the structured-data document returned as the textual payload
// of an execution response. On failure only Error is set; on success Result
// carries the classified value of the trailing expression when there is
// one, alongside any captured output.
type Envelope struct {
	Output string `json:"output,omitempty"`
	Errors string `json:"errors,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// DataFrame is the document returned in place of the generic envelope when
// the trailing expression evaluates to tabular data: row-major records, the
// ordered column names, and [rows, cols].
type DataFrame struct {
	Type    string           `json:"type"`
	Data    []map[string]any `json:"data"`
	Columns []string         `json:"columns"`
	Shape   [2]int           `json:"shape"`
}

// Response is the outcome of one call: plain prose for the reset
// confirmation, or a document to encode as JSON for everything else.
type Response struct {
	// Text is set only for the reset confirmation.
	Text string

	// Document is an *Envelope or a *DataFrame.
	Document any
}
