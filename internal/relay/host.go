package relay

import "sync/atomic"

// Lifecycle is a Host whose active state is toggled by the embedding
// application. It starts inactive.
type Lifecycle struct {
	active atomic.Bool
}

// NewLifecycle returns a Lifecycle that is already active.
func NewLifecycle() *Lifecycle {
	l := &Lifecycle{}
	l.Activate()
	return l
}

// Activate allows dispatch.
func (l *Lifecycle) Activate() { l.active.Store(true) }

// Deactivate silences dispatch, e.g. while the application tears down.
func (l *Lifecycle) Deactivate() { l.active.Store(false) }

// Active implements Host.
func (l *Lifecycle) Active() bool { return l.active.Load() }

// HostFunc adapts a function to the Host interface.
type HostFunc func() bool

// Active calls f.
func (f HostFunc) Active() bool { return f() }
