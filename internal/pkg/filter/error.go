package filter

import "fmt"

// SyntaxError reports a filter line that failed to compile. Line is 1-based
// within the filter file, Col is a 1-based rune offset within the line.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("filter syntax error at line %d, column %d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("filter syntax error at column %d: %s", e.Col, e.Msg)
}
