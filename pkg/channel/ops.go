package channel

import (
	rberrors "github.com/LVC1D/ring-buffer/pkg/common/errors"
)

// SendOp is a resumable send: each Poll attempts one TryPush and
// either completes or registers the given Waker for a later retry.
// The pending value is retained inside the op between polls and is
// released the moment the push succeeds.
type SendOp[T any] struct {
	s     *Sender[T]
	value T
	done  bool
	err   error
}

// Poll advances the send. done=false means the buffer was full and w
// is now registered; the caller must wait for w before polling again.
// A completed op re-reports its result without touching the channel.
func (op *SendOp[T]) Poll(w *Waker) (bool, error) {
	if op.done {
		return true, op.err
	}

	if op.s.closed.Load() {
		op.finish(rberrors.ErrClosed)
		return true, op.err
	}

	in := op.s.inner
	if in.buf.TryPush(op.value) {
		op.finish(nil)
		in.sends.Add(1)
		in.recvq.wakeOne()
		return true, nil
	}

	in.sendq.enqueue(w)

	// A pop may have freed space between the failed push and the
	// registration; without this retry that wake-up would be lost.
	if in.buf.TryPush(op.value) {
		in.sendq.cancel(w)
		op.finish(nil)
		in.sends.Add(1)
		in.recvq.wakeOne()
		return true, nil
	}

	in.blockedSends.Add(1)
	return false, nil
}

func (op *SendOp[T]) finish(err error) {
	var zero T
	op.value = zero
	op.done = true
	op.err = err
}

// RecvOp is a resumable receive: each Poll attempts one TryPop and
// either completes with a value, completes with the terminal signal,
// or registers the given Waker for a later retry.
type RecvOp[T any] struct {
	r    *Receiver[T]
	v    T
	ok   bool
	done bool
	err  error
}

// Poll advances the receive. done=false means the buffer was empty
// with producers still live and w is now registered. done=true with
// ok=false is the terminal channel end (or a closed handle; see Err).
// A completed op re-reports its result without touching the channel.
func (op *RecvOp[T]) Poll(w *Waker) (T, bool, bool) {
	var zero T
	if op.done {
		return op.v, op.ok, true
	}

	if op.r.closed.Load() {
		op.done = true
		op.err = rberrors.ErrClosed
		return zero, false, true
	}

	in := op.r.inner
	if v, ok := in.buf.TryPop(); ok {
		return op.complete(v), true, true
	}

	if in.senders.Load() == 0 {
		// Re-validate: a producer may have pushed between the failed
		// pop and its close.
		if v, ok := in.buf.TryPop(); ok {
			return op.complete(v), true, true
		}
		op.done = true
		return zero, false, true
	}

	in.recvq.enqueue(w)

	// Close the register/push race the same way SendOp does, and
	// re-check termination so a close racing with the registration
	// cannot strand this receiver.
	if v, ok := in.buf.TryPop(); ok {
		in.recvq.cancel(w)
		return op.complete(v), true, true
	}
	if in.senders.Load() == 0 && in.buf.IsEmpty() {
		if v, ok := in.buf.TryPop(); ok {
			in.recvq.cancel(w)
			return op.complete(v), true, true
		}
		in.recvq.cancel(w)
		op.done = true
		return zero, false, true
	}

	in.blockedReceives.Add(1)
	return zero, false, false
}

// Err reports the handle-misuse error, if any, once the op completed.
// A terminal channel end is not an error and leaves Err nil.
func (op *RecvOp[T]) Err() error {
	return op.err
}

func (op *RecvOp[T]) complete(v T) T {
	op.v = v
	op.ok = true
	op.done = true
	in := op.r.inner
	in.receives.Add(1)
	in.sendq.wakeOne()
	return v
}
