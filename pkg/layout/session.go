package layout

import "sync"

// Signals fans out the host's print-start/print-end notifications.
type Signals struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func(printing bool)
}

// NewSignals constructs an empty signal hub.
func NewSignals() *Signals {
	return &Signals{listeners: make(map[int]func(bool))}
}

// Listen registers fn and returns the function that removes it.
func (s *Signals) Listen(fn func(printing bool)) (stop func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.listeners[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Emit notifies every listener.
func (s *Signals) Emit(printing bool) {
	s.mu.Lock()
	fns := make([]func(bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(printing)
	}
}

// Listeners reports how many listeners are attached.
func (s *Signals) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Session tracks the print state of one mounted view. Close must be called
// when the view goes away; it is safe to call more than once.
type Session struct {
	mu       sync.RWMutex
	base     Mode
	printing bool
	stop     func()
}

// Mount attaches a session to signals.
func Mount(signals *Signals, base Mode) *Session {
	sess := &Session{base: base}
	if signals != nil {
		sess.stop = signals.Listen(sess.toggle)
	}
	return sess
}

func (s *Session) toggle(printing bool) {
	s.mu.Lock()
	s.printing = printing
	s.mu.Unlock()
}

// Mode returns the effective render mode.
func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.base == ModeExport {
		return ModeExport
	}
	return ResolveMode(s.base == ModePrint, s.printing, false)
}

// Close detaches the session from its signals.
func (s *Session) Close() {
	if s.stop != nil {
		s.stop()
	}
}
