package parser

import "fmt"

// Diagnostic describes a line the parser skipped or could only partly use.
// Diagnostics never stop a parse.
type Diagnostic struct {
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Diagnostics is a slice of Diagnostic that implements the error interface,
// for callers that want to treat a lossy parse as a failure.
type Diagnostics []Diagnostic

func (d Diagnostics) Error() string {
	switch len(d) {
	case 0:
		return ""
	case 1:
		return "tres: " + d[0].String()
	}
	// Report the first diagnostic and how many more there are.
	return fmt.Sprintf("tres: %s (and %d more)", d[0], len(d)-1)
}
