package asset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Command is a free-form setup command expressed as an argv.
type Command struct {
	argv []string
}

// NewCommand builds a command from an argv.
func NewCommand(argv ...string) Command {
	return Command{argv: append([]string(nil), argv...)}
}

// ParseCommand splits a shell-style command line into an argv. Quotes and
// escapes follow POSIX shell word rules; no expansion is performed.
func ParseCommand(line string) (Command, error) {
	argv, err := shellwords.Parse(line)
	if err != nil {
		return Command{}, fmt.Errorf("parsing command %q: %w", line, err)
	}
	if len(argv) == 0 {
		return Command{}, fmt.Errorf("parsing command %q: empty command", line)
	}
	return Command{argv: argv}, nil
}

// Argv returns a copy of the argument vector.
func (c Command) Argv() []string {
	return append([]string(nil), c.argv...)
}

// Key is the value-equality key used for deduplication.
func (c Command) Key() string {
	return strings.Join(c.argv, "\x00")
}

// IsZero reports whether the command has no argv.
func (c Command) IsZero() bool { return len(c.argv) == 0 }

func (c Command) String() string {
	return strings.Join(c.argv, " ")
}

// MarshalJSON renders the command as its argv list.
func (c Command) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.argv)
}
