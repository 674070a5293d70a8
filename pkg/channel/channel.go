package channel

import (
	"context"
	"sync/atomic"

	rberrors "github.com/LVC1D/ring-buffer/pkg/common/errors"
	"github.com/LVC1D/ring-buffer/pkg/common/validation"
	"github.com/LVC1D/ring-buffer/pkg/ring"
)

// Phase is the lifecycle state of a channel.
type Phase int32

const (
	// Open: live senders exist; values flow normally.
	Open Phase = iota

	// Closing: every Sender is gone but buffered values remain to be
	// drained.
	Closing

	// Closed: no senders and an empty buffer. Terminal.
	Closed
)

func (p Phase) String() string {
	switch p {
	case Open:
		return "open"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Stats is a point-in-time snapshot of channel activity.
type Stats struct {
	// Sends is the number of values successfully enqueued.
	Sends int64

	// Receives is the number of values successfully dequeued.
	Receives int64

	// BlockedSends is the number of send polls that had to suspend.
	BlockedSends int64

	// BlockedReceives is the number of receive polls that had to suspend.
	BlockedReceives int64

	// WaitingSenders is the current number of suspended producers.
	WaitingSenders int

	// WaitingReceivers is the current number of suspended consumers.
	WaitingReceivers int

	// Len is the current number of buffered values.
	Len uint64

	// BufferUtilization is Len over usable capacity (0.0 to 1.0).
	BufferUtilization float64
}

// inner is the state shared by every handle derived from one New call.
type inner[T any] struct {
	buf      *ring.Buffer[T]
	capacity uint64

	// Suspended producers and consumers, each behind their own lock so
	// buffer traffic never contends with wait bookkeeping.
	sendq waitList
	recvq waitList

	// senders counts live Sender handles; zero means no value can ever
	// be enqueued again. handles counts live handles of any kind; the
	// buffer is drained when it reaches zero.
	senders atomic.Int64
	handles atomic.Int64

	sends           atomic.Int64
	receives        atomic.Int64
	blockedSends    atomic.Int64
	blockedReceives atomic.Int64
}

func (in *inner[T]) phase() Phase {
	if in.senders.Load() > 0 {
		return Open
	}
	if !in.buf.IsEmpty() {
		return Closing
	}
	return Closed
}

// releaseHandle drops one handle reference and drains the buffer once
// the last handle of any kind is gone.
func (in *inner[T]) releaseHandle() {
	if in.handles.Add(-1) == 0 {
		in.buf.Reset()
	}
}

func (in *inner[T]) stats() Stats {
	s := Stats{
		Sends:            in.sends.Load(),
		Receives:         in.receives.Load(),
		BlockedSends:     in.blockedSends.Load(),
		BlockedReceives:  in.blockedReceives.Load(),
		WaitingSenders:   in.sendq.len(),
		WaitingReceivers: in.recvq.len(),
		Len:              in.buf.Len(),
	}
	if usable := in.buf.Cap(); usable > 0 {
		s.BufferUtilization = float64(s.Len) / float64(usable)
	}
	return s
}

// Sender is a cloneable producer handle. A Sender is safe for
// concurrent use, except that Close must not race with a Send in
// flight on the same handle; clone a handle per goroutine instead.
type Sender[T any] struct {
	inner  *inner[T]
	closed atomic.Bool
}

// Receiver is a cloneable consumer handle, safe for concurrent use
// under the same Close caveat as Sender.
type Receiver[T any] struct {
	inner  *inner[T]
	closed atomic.Bool
}

// New creates a bounded channel over a ring buffer of the given
// declared capacity (a power of two; usable capacity is one less). It
// returns one Sender and one Receiver, both in the Open phase. New
// panics on an invalid capacity; use NewSafe to get an error instead.
func New[T any](capacity uint64) (*Sender[T], *Receiver[T]) {
	tx, rx, err := NewSafe[T](capacity)
	if err != nil {
		panic(err)
	}
	return tx, rx
}

// NewSafe is like New but reports an invalid capacity as an error.
func NewSafe[T any](capacity uint64) (*Sender[T], *Receiver[T], error) {
	if err := validation.ValidatePowerOfTwo("channel", "capacity", capacity); err != nil {
		return nil, nil, err
	}

	in := &inner[T]{
		buf:      ring.New[T](capacity),
		capacity: capacity,
	}
	in.senders.Store(1)
	in.handles.Store(2)

	return &Sender[T]{inner: in}, &Receiver[T]{inner: in}, nil
}

// SendOp starts a send of v. The returned op is polled to completion;
// it is not safe for concurrent use by multiple goroutines.
func (s *Sender[T]) SendOp(v T) *SendOp[T] {
	return &SendOp[T]{s: s, value: v}
}

// Send enqueues v, suspending while the buffer is full, until the
// value is accepted or ctx is done.
func (s *Sender[T]) Send(ctx context.Context, v T) error {
	op := s.SendOp(v)
	w := NewWaker()

	for {
		done, err := op.Poll(w)
		if done {
			return err
		}

		select {
		case <-w.Done():
		case <-ctx.Done():
			s.inner.sendq.cancel(w)
			return ctx.Err()
		}
	}
}

// TrySend enqueues v without suspending. It returns ErrFull when the
// buffer is full and ErrClosed when called through a closed handle.
func (s *Sender[T]) TrySend(v T) error {
	if s.closed.Load() {
		return rberrors.ErrClosed
	}
	if !s.inner.buf.TryPush(v) {
		return rberrors.ErrFull
	}
	s.inner.sends.Add(1)
	s.inner.recvq.wakeOne()
	return nil
}

// Clone creates another live Sender sharing this channel. Cloning a
// closed handle is a programming error and panics.
func (s *Sender[T]) Clone() *Sender[T] {
	if s.closed.Load() {
		panic(rberrors.NewOperationError("channel", "Clone", rberrors.ErrClosed))
	}
	s.inner.senders.Add(1)
	s.inner.handles.Add(1)
	return &Sender[T]{inner: s.inner}
}

// Close releases this handle. When the last Sender is closed the
// channel enters the Closing phase and every suspended receiver is
// woken so it can observe the transition. Close is idempotent.
func (s *Sender[T]) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if s.inner.senders.Add(-1) == 0 {
		s.inner.recvq.wakeAll()
	}
	s.inner.releaseHandle()
	return nil
}

// Phase returns the channel's current lifecycle phase.
func (s *Sender[T]) Phase() Phase { return s.inner.phase() }

// Len returns the number of buffered values.
func (s *Sender[T]) Len() uint64 { return s.inner.buf.Len() }

// Cap returns the usable capacity.
func (s *Sender[T]) Cap() uint64 { return s.inner.buf.Cap() }

// Stats returns a snapshot of channel activity.
func (s *Sender[T]) Stats() Stats { return s.inner.stats() }

// RecvOp starts a receive. The returned op is polled to completion; it
// is not safe for concurrent use by multiple goroutines.
func (r *Receiver[T]) RecvOp() *RecvOp[T] {
	return &RecvOp[T]{r: r}
}

// Recv dequeues the next value, suspending while the buffer is empty
// and producers remain. ok=false with a nil error is the terminal
// signal: no producers are left and the buffer has drained; every
// subsequent Recv reports the same without suspending.
func (r *Receiver[T]) Recv(ctx context.Context) (T, bool, error) {
	var zero T
	op := r.RecvOp()
	w := NewWaker()

	for {
		v, ok, done := op.Poll(w)
		if done {
			if err := op.Err(); err != nil {
				return zero, false, err
			}
			return v, ok, nil
		}

		select {
		case <-w.Done():
		case <-ctx.Done():
			r.inner.recvq.cancel(w)
			return zero, false, ctx.Err()
		}
	}
}

// TryRecv dequeues without suspending. ok=false with a nil error means
// no value is available right now; ErrClosed means the channel has
// terminated (or the handle is closed) and no value will ever arrive.
func (r *Receiver[T]) TryRecv() (T, bool, error) {
	var zero T
	if r.closed.Load() {
		return zero, false, rberrors.ErrClosed
	}

	if v, ok := r.inner.buf.TryPop(); ok {
		r.inner.receives.Add(1)
		r.inner.sendq.wakeOne()
		return v, true, nil
	}

	if r.inner.senders.Load() == 0 {
		// Re-validate: a producer may have pushed just before closing.
		if v, ok := r.inner.buf.TryPop(); ok {
			r.inner.receives.Add(1)
			r.inner.sendq.wakeOne()
			return v, true, nil
		}
		return zero, false, rberrors.ErrClosed
	}

	return zero, false, nil
}

// Clone creates another live Receiver sharing this channel. Cloning a
// closed handle is a programming error and panics.
func (r *Receiver[T]) Clone() *Receiver[T] {
	if r.closed.Load() {
		panic(rberrors.NewOperationError("channel", "Clone", rberrors.ErrClosed))
	}
	r.inner.handles.Add(1)
	return &Receiver[T]{inner: r.inner}
}

// Close releases this handle. Close is idempotent. Values still
// buffered are released when the last handle of any kind is closed.
func (r *Receiver[T]) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.inner.releaseHandle()
	return nil
}

// Phase returns the channel's current lifecycle phase.
func (r *Receiver[T]) Phase() Phase { return r.inner.phase() }

// Len returns the number of buffered values.
func (r *Receiver[T]) Len() uint64 { return r.inner.buf.Len() }

// Cap returns the usable capacity.
func (r *Receiver[T]) Cap() uint64 { return r.inner.buf.Cap() }

// Stats returns a snapshot of channel activity.
func (r *Receiver[T]) Stats() Stats { return r.inner.stats() }
