package resolve

import "fmt"

// NoIndex marks a violation that is not tied to a particular record.
const NoIndex = -1

// Violation is one problem found while binding or resolving.
type Violation struct {
	RecordType  string
	RecordIndex int // 0-based, or NoIndex
	Field       string
	Message     string
}

// String renders the violation the way the command line reports it.
func (v Violation) String() string {
	if v.RecordIndex >= 0 {
		return fmt.Sprintf("Record %s, line %d, field %s, violation: %s", v.RecordType, v.RecordIndex+1, v.Field, v.Message)
	}
	return fmt.Sprintf("Record %s, field %s, violation: %s", v.RecordType, v.Field, v.Message)
}

// Reporter receives violations. It decides how they are rendered or stored.
type Reporter interface {
	Report(v Violation)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(v Violation)

// Report calls f(v).
func (f ReporterFunc) Report(v Violation) {
	f(v)
}

// Collector keeps every violation it receives.
type Collector struct {
	Violations []Violation
}

// Report appends v.
func (c *Collector) Report(v Violation) {
	c.Violations = append(c.Violations, v)
}

// Messages returns the message of every collected violation.
func (c *Collector) Messages() []string {
	msgs := make([]string, len(c.Violations))
	for i, v := range c.Violations {
		msgs[i] = v.Message
	}
	return msgs
}
