// Package checkpoint records tree mutations with the external
// version-control collaborator, one commit per creation event.
package checkpoint

import "sync"

// Checkpointer requests one durable checkpoint of the working tree
// with the given message.
type Checkpointer interface {
	Checkpoint(message string) error
}

// Noop discards checkpoints. Used when version control is disabled.
type Noop struct{}

func (Noop) Checkpoint(string) error { return nil }

// Recorder is a Checkpointer for tests: it records every message in
// order instead of touching a repository. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []string

	// Err, when set, is returned from every Checkpoint call
	// (the message is still recorded).
	Err error
}

func (r *Recorder) Checkpoint(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return r.Err
}

// Messages returns a copy of the recorded messages in call order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
