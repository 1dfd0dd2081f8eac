package policy

import "sync"

// inflightKey identifies one pending request: the same devis may carry
// several distinct pending actions, but never two of the same kind
type inflightKey struct {
	devisID int64
	action  ActionKind
}

// InFlight is a process-wide set of pending (devis, action) requests. It is
// consulted before a transition is dispatched and cleared when the request
// settles, so duplicate submissions never reach the network.
type InFlight struct {
	mu      sync.Mutex
	pending map[inflightKey]struct{}
}

// NewInFlight creates an empty in-flight set
func NewInFlight() *InFlight {
	return &InFlight{
		pending: make(map[inflightKey]struct{}),
	}
}

// Begin marks the (devis, action) pair as pending. It returns false when a
// request for the same pair is already outstanding.
func (f *InFlight) Begin(devisID int64, action ActionKind) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := inflightKey{devisID: devisID, action: action}
	if _, exists := f.pending[key]; exists {
		return false
	}
	f.pending[key] = struct{}{}
	return true
}

// End clears the (devis, action) pair once its request has settled,
// whether it succeeded or failed
func (f *InFlight) End(devisID int64, action ActionKind) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.pending, inflightKey{devisID: devisID, action: action})
}

// Pending reports whether a request for the (devis, action) pair is
// currently outstanding
func (f *InFlight) Pending(devisID int64, action ActionKind) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, exists := f.pending[inflightKey{devisID: devisID, action: action}]
	return exists
}
