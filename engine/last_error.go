package engine

import "sync"

// ErrorRegister holds the message of the most recent failure.
//
// Each Set overwrites the previous message; no history is kept.
type ErrorRegister struct {
	mu  sync.RWMutex
	msg string
}

// Set overwrites the current message.
func (r *ErrorRegister) Set(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.msg = msg
}

// SetError records err's message. A nil error is ignored.
func (r *ErrorRegister) SetError(err error) {
	if err == nil {
		return
	}

	r.Set(err.Error())
}

// Get returns the current message, or "" if nothing was recorded.
func (r *ErrorRegister) Get() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.msg
}

// Clear empties the register.
func (r *ErrorRegister) Clear() {
	r.Set("")
}
