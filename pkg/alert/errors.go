package alert

import "fmt"

// ParseError reports that a raw payload could not be turned into an Alert:
// either no adapter claimed it, or the claiming adapter failed mid-parse.
type ParseError struct {
	SourceHint string
	Reason     string
	Err        error
}

func (e *ParseError) Error() string {
	if e.SourceHint != "" {
		return fmt.Sprintf("alert: parse failed for source %q: %s", e.SourceHint, e.Reason)
	}
	return fmt.Sprintf("alert: parse failed: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(hint, reason string, err error) *ParseError {
	return &ParseError{SourceHint: hint, Reason: reason, Err: err}
}
