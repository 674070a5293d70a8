/*
Package ringbuffer provides a bounded multi-producer multi-consumer channel
built on a fixed-capacity ring buffer.

Ring Buffer (pkg/ring):
  - Buffer: power-of-two circular storage with non-blocking TryPush/TryPop

Channel (pkg/channel):
  - Sender/Receiver: cloneable handles with suspend/wake backpressure
  - SendOp/RecvOp: poll-based resumable operations
  - NewWithMetrics: Prometheus-instrumented handles

Example usage:

	import "github.com/LVC1D/ring-buffer/pkg/channel"

	tx, rx := channel.New[string](64)
	defer tx.Close()
	defer rx.Close()

	go func() {
		_ = tx.Send(ctx, "hello")
	}()

	v, ok, _ := rx.Recv(ctx)
	if ok {
		fmt.Println(v)
	}
*/
package ringbuffer
