package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"sync"
)

// sseWriter serializes events onto one server-sent-event stream. Upload
// goroutines share it, so every write is mutex-guarded and flushed
// immediately to keep progress visible in real time.
type sseWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func newSSEWriter(w *bufio.Writer) *sseWriter {
	return &sseWriter{w: w}
}

// send writes one `data: {...}` line. A failed write means the client went
// away; the error tells callers to stop emitting.
func (s *sseWriter) send(event any) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", b); err != nil {
		return err
	}
	return s.w.Flush()
}
