package wallet

import (
	"errors"
	"sync"
)

// ErrNotConnected is returned by write operations when no identity is
// connected.
var ErrNotConnected = errors.New("wallet not connected")

// ChangeListener is notified when the connected principal changes. It
// receives the new address, or "" on disconnect.
type ChangeListener func(address string)

// Identity tracks the connected principal and fans out change events.
type Identity struct {
	mu        sync.RWMutex
	address   string
	listeners []ChangeListener
}

// NewIdentity creates a disconnected identity.
func NewIdentity() *Identity {
	return &Identity{}
}

// Address returns the connected principal and whether one is connected.
func (i *Identity) Address() (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.address, i.address != ""
}

// Connect sets the connected principal and notifies listeners.
// Connecting to the already connected address is a no-op.
func (i *Identity) Connect(address string) {
	i.mu.Lock()
	if address == "" || i.address == address {
		i.mu.Unlock()
		return
	}
	i.address = address
	listeners := append([]ChangeListener(nil), i.listeners...)
	i.mu.Unlock()

	for _, fn := range listeners {
		fn(address)
	}
}

// Disconnect clears the connected principal and notifies listeners.
func (i *Identity) Disconnect() {
	i.mu.Lock()
	if i.address == "" {
		i.mu.Unlock()
		return
	}
	i.address = ""
	listeners := append([]ChangeListener(nil), i.listeners...)
	i.mu.Unlock()

	for _, fn := range listeners {
		fn("")
	}
}

// OnChange registers a listener for connect/disconnect events.
// Listeners are invoked outside the identity lock.
func (i *Identity) OnChange(fn ChangeListener) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.listeners = append(i.listeners, fn)
}
