package runner

import (
	"context"
	"sync"
)

// Recorder is a Runner that records commands instead of executing them.
// Fail, when set, decides the error returned for each command.
type Recorder struct {
	Fail func(Cmd) error

	mu   sync.Mutex
	cmds []Cmd
}

// Run records cmd and returns Fail(cmd) if Fail is set.
func (r *Recorder) Run(_ context.Context, cmd Cmd) error {
	r.mu.Lock()
	r.cmds = append(r.cmds, cmd)
	r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail(cmd)
	}
	return nil
}

// Commands returns the recorded commands in call order.
func (r *Recorder) Commands() []Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cmd, len(r.cmds))
	copy(out, r.cmds)
	return out
}

// Programs returns argv[0] of every recorded command in call order.
func (r *Recorder) Programs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.cmds))
	for _, c := range r.cmds {
		if len(c.Argv) > 0 {
			out = append(out, c.Argv[0])
		}
	}
	return out
}
