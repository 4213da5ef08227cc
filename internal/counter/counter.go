// Package counter implements three interchangeable strategies for a shared
// integer updated concurrently: no synchronization, a hardware atomic, and
// a mutex.
//
// The unsynchronized strategy is a deliberate data race. Its final value
// under concurrent use is undefined and may change from run to run; it
// exists only to make the failure mode visible next to the two correct
// strategies, which always agree with the exact arithmetic sum.
package counter

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Strategy names accepted by New.
const (
	Unsynchronized = "unsynchronized"
	Atomic         = "atomic"
	Mutex          = "mutex"
)

// ErrUnknownStrategy is returned by New for an unrecognized name.
var ErrUnknownStrategy = errors.New("unknown counter strategy")

// Counter is a shared signed integer.
type Counter interface {
	// Add applies a signed delta.
	Add(delta int64)
	// Value reads the current value.
	Value() int64
	// Reset sets the value back to zero. It must not race with Add.
	Reset()
	// Name returns the strategy name.
	Name() string
}

// Names returns every strategy name in presentation order.
func Names() []string {
	return []string{Unsynchronized, Atomic, Mutex}
}

// Synchronized reports whether the named strategy guarantees an exact
// final value under concurrent use.
func Synchronized(name string) bool {
	return name == Atomic || name == Mutex
}

// New returns a zeroed counter for the named strategy.
func New(name string) (Counter, error) {
	switch name {
	case Unsynchronized:
		return NewUnsynchronized(), nil
	case Atomic:
		return NewAtomic(), nil
	case Mutex:
		return NewMutex(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// UnsynchronizedCounter performs a plain read-modify-write with no ordering
// guarantees. Concurrent Adds race and may lose updates.
type UnsynchronizedCounter struct {
	v int64
}

// NewUnsynchronized returns a zeroed UnsynchronizedCounter.
func NewUnsynchronized() *UnsynchronizedCounter { return &UnsynchronizedCounter{} }

func (c *UnsynchronizedCounter) Add(delta int64) { c.v += delta }
func (c *UnsynchronizedCounter) Value() int64    { return c.v }
func (c *UnsynchronizedCounter) Reset()          { c.v = 0 }
func (c *UnsynchronizedCounter) Name() string    { return Unsynchronized }

// AtomicCounter applies each delta as a single fetch-and-add.
type AtomicCounter struct {
	v atomic.Int64
}

// NewAtomic returns a zeroed AtomicCounter.
func NewAtomic() *AtomicCounter { return &AtomicCounter{} }

func (c *AtomicCounter) Add(delta int64) { c.v.Add(delta) }
func (c *AtomicCounter) Value() int64    { return c.v.Load() }
func (c *AtomicCounter) Reset()          { c.v.Store(0) }
func (c *AtomicCounter) Name() string    { return Atomic }

// MutexCounter holds an exclusive lock for each read-modify-write.
type MutexCounter struct {
	mu sync.Mutex
	v  int64
}

// NewMutex returns a zeroed MutexCounter.
func NewMutex() *MutexCounter { return &MutexCounter{} }

func (c *MutexCounter) Add(delta int64) {
	c.mu.Lock()
	c.v += delta
	c.mu.Unlock()
}

func (c *MutexCounter) Value() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *MutexCounter) Reset() {
	c.mu.Lock()
	c.v = 0
	c.mu.Unlock()
}

func (c *MutexCounter) Name() string { return Mutex }

var (
	_ Counter = (*UnsynchronizedCounter)(nil)
	_ Counter = (*AtomicCounter)(nil)
	_ Counter = (*MutexCounter)(nil)
)
