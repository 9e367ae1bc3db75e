// Package jsonlutil provides the shared line-delimited JSON writer
// goroutine behind the streaming catalog output format.
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// A 64 KiB buffered writer is reused across streams; one catalog row
// is well under a line of that, so flushes stay rare.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for values of type T.
// encode writes one value through the encoder; isBroken recognizes
// broken/closed-pipe errors so an early-exiting consumer is not
// reported as a failure. Callers close the channel and then receive
// the final error.
func Start[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			// Drop the reference to out before pooling.
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)

		for v := range in {
			if err := encode(enc, v); err != nil {
				done <- err
				return
			}
		}
		if err := bw.Flush(); err != nil && !isBroken(err) {
			done <- err
			return
		}
		done <- nil
	}()

	return in, done
}
