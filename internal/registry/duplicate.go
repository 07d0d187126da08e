package registry

import "fmt"

// DuplicateKind tells what kind of declaration was skipped.
type DuplicateKind string

const (
	DuplicateURL     DuplicateKind = "url"
	DuplicateCommand DuplicateKind = "command"
)

// Duplicate records a declaration skipped during a merge. It is not an
// error; merging continues.
type Duplicate struct {
	Kind     DuplicateKind
	Value    string // the source URL or the command line
	Workflow string // the workflow whose declaration was skipped
}

func (d Duplicate) String() string {
	return fmt.Sprintf("%s is a duplicate (workflow %s)", d.Value, d.Workflow)
}
