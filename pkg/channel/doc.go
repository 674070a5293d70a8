/*
Package channel provides a bounded multi-producer multi-consumer channel
built on the ring buffer in pkg/ring.

Any number of Sender and Receiver handles exchange values of one type
through a fixed-capacity buffer. Producers suspend when the buffer is
full, consumers suspend when it is empty, and the channel signals
completion once every Sender is gone and the buffer has drained.

Construction:

	tx, rx := channel.New[string](64) // capacity must be a power of two
	defer tx.Close()
	defer rx.Close()

The declared capacity reserves one slot to distinguish full from empty,
so a channel of capacity 64 buffers up to 63 values. New panics on a
capacity that is not a power of two; NewSafe returns an error instead.

Sending and receiving:

	// Blocking, context-aware
	err := tx.Send(ctx, "hello")
	v, ok, err := rx.Recv(ctx)

	// Non-blocking
	err := tx.TrySend("world")
	v, ok, err := rx.TryRecv()

Recv reports ok=false with a nil error exactly when the channel has
terminated: every Sender was closed and the buffer is empty. That
signal is permanent and never an error.

Handles:

Handles are cloneable. Each clone is an independent handle that must be
closed; the channel's shared state is released when the last handle of
any kind is closed. Closing the last Sender moves the channel into the
Closing phase, where buffered values can still be drained:

	tx2 := tx.Clone()
	go func() {
		defer tx2.Close()
		_ = tx2.Send(ctx, "from clone")
	}()

Poll-based operations:

Send and Recv are thin loops over explicitly resumable operations. A
caller integrating with its own scheduler can drive them directly:

	op := tx.SendOp("hello")
	w := channel.NewWaker()
	for {
		done, err := op.Poll(w)
		if done {
			// err is nil on success
			break
		}
		<-w.Done() // suspended; resumed by a consumer freeing space
	}

Each failed Poll registers the Waker in a FIFO wait-list; a successful
push or pop on the opposite side wakes the front waiter. Wake-ups are
at-least-one, not exact: a woken caller that loses the race to another
producer or consumer simply re-polls and suspends again.

Backpressure:

A full buffer never drops a value and never surfaces an error from
Send; the producer is suspended until a consumer frees space. Only
TrySend reports the transient full condition, as errors.ErrFull.

Metrics:

NewWithMetrics returns handles instrumented with Prometheus counters,
gauges and wait-time histograms:

	tx, rx := channel.NewWithMetrics[Job](256, "jobs")

Phases:

A channel moves Open -> Closing -> Closed. Transitions are observed
lazily at the next operation; no operation forces them eagerly. Phase()
reports the current phase on any handle.
*/
package channel
