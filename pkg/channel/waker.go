package channel

import (
	"sync"
	"sync/atomic"
)

// Waker is the wake handle a suspended operation registers on a
// wait-list. Each Waker is registered at most once at a time: the
// queued flag makes re-registration from a spurious poll a no-op, so
// wait-lists cannot grow with duplicate entries.
type Waker struct {
	ch     chan struct{}
	queued atomic.Bool
}

// NewWaker creates a Waker ready for registration.
func NewWaker() *Waker {
	return &Waker{ch: make(chan struct{}, 1)}
}

// Wake resumes the caller waiting on this Waker. The signal channel
// has capacity one, so a wake delivered between a failed poll and the
// wait that follows is retained rather than lost. Waking a Waker
// nobody waits on is harmless; the woken side simply re-polls, finds
// no work, and suspends again.
func (w *Waker) Wake() {
	w.queued.Store(false)
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// Done returns the channel a suspended caller blocks on until woken.
func (w *Waker) Done() <-chan struct{} {
	return w.ch
}

// waitList is a FIFO list of suspended callers. It has its own mutex,
// independent of the buffer's and of the opposite list's, so push/pop
// never block on wait bookkeeping.
type waitList struct {
	mu      sync.Mutex
	waiters []*Waker
}

// enqueue registers w at the back of the list unless it is already
// registered.
func (l *waitList) enqueue(w *Waker) {
	if !w.queued.CompareAndSwap(false, true) {
		return
	}
	l.mu.Lock()
	l.waiters = append(l.waiters, w)
	l.mu.Unlock()
}

// cancel removes w if it is still registered. Callers that stop
// waiting (context cancellation, late success) prune themselves here
// so abandoned registrations do not accumulate. A wake already
// delivered to w is not the canceling caller's to keep: it stands for
// a freed slot or a buffered value, so cancel hands it to the next
// waiter in line. Wakes are delivered under the list lock, so a signal
// is either drained here or w was still listed and cannot receive one.
func (l *waitList) cancel(w *Waker) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, cand := range l.waiters {
		if cand == w {
			l.waiters = append(l.waiters[:i], l.waiters[i+1:]...)
			break
		}
	}
	w.queued.Store(false)

	select {
	case <-w.ch:
		l.wakeOneLocked()
	default:
	}
}

// wakeOne pops the front waiter, if any, and wakes it.
func (l *waitList) wakeOne() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.wakeOneLocked()
}

func (l *waitList) wakeOneLocked() {
	if len(l.waiters) == 0 {
		return
	}
	w := l.waiters[0]
	l.waiters = l.waiters[1:]
	w.Wake()
}

// wakeAll drains the list and wakes every waiter.
func (l *waitList) wakeAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, w := range l.waiters {
		w.Wake()
	}
	l.waiters = nil
}

func (l *waitList) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.waiters)
}
