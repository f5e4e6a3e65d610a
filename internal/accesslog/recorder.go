package accesslog

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fbarbosa/hr-management/pkg/logger"
)

const defaultBufferSize = 1024

// Recorder persists entries off the request path. Record never blocks:
// a full buffer drops the entry, and storage faults are logged and
// swallowed. Auditing must not take a request down with it.
type Recorder struct {
	repo    RepositoryAPI
	entries chan Entry
	log     *slog.Logger
	wg      sync.WaitGroup
	closed  atomic.Bool
}

func NewRecorder(repo RepositoryAPI, bufferSize int) *Recorder {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	r := &Recorder{
		repo:    repo,
		entries: make(chan Entry, bufferSize),
		log:     logger.LoggerWrapper(),
	}

	r.wg.Add(1)
	go r.drain()

	return r
}

// Record enqueues an entry for persistence.
func (r *Recorder) Record(entry Entry) {
	if r.closed.Load() {
		return
	}

	select {
	case r.entries <- entry:
	default:
		r.log.Warn("access log buffer full, dropping entry", "path", entry.Path)
	}
}

// Close stops accepting entries and waits for the buffer to flush.
// Call only after the HTTP server has stopped serving.
func (r *Recorder) Close() {
	if r.closed.Swap(true) {
		return
	}
	close(r.entries)
	r.wg.Wait()
}

func (r *Recorder) drain() {
	defer r.wg.Done()
	for entry := range r.entries {
		if err := r.repo.Insert(entry); err != nil {
			r.log.Error("failed to persist access log entry", "path", entry.Path, "error", err)
		}
	}
}
