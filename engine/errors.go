package engine

import "fmt"

// SyntaxError is raised once a production has committed and a required
// token is missing.
type SyntaxError struct {
	Line     int
	Expected string
	Actual   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("l%d: expected %s, received '%s'", e.Line, e.Expected, e.Actual)
}
