package logs

// Span identifies one unit of work, such as a Tagfile run, across log records.
type Span string

type spanKey struct{}

var SpanKey spanKey
