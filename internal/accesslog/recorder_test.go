package accesslog_test

import (
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fbarbosa/hr-management/internal/accesslog"
)

func TestAccessLog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AccessLog Suite")
}

// MockRepository implements accesslog.RepositoryAPI for testing
type MockRepository struct {
	mu      sync.Mutex
	entries []accesslog.Entry

	// blockFirst makes the first Insert wait for release, so tests can
	// hold the drain goroutine in a known state.
	blockFirst bool
	started    chan struct{}
	release    chan struct{}
	blocked    bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (m *MockRepository) Insert(entry accesslog.Entry) error {
	m.mu.Lock()
	shouldBlock := m.blockFirst && !m.blocked
	if shouldBlock {
		m.blocked = true
	}
	m.mu.Unlock()

	if shouldBlock {
		close(m.started)
		<-m.release
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockRepository) List(limit, offset int) ([]accesslog.Entry, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]accesslog.Entry(nil), m.entries...), int64(len(m.entries)), nil
}

func (m *MockRepository) Entries() []accesslog.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]accesslog.Entry(nil), m.entries...)
}

var _ = Describe("Recorder", func() {
	It("persists recorded entries", func() {
		repo := NewMockRepository()
		recorder := accesslog.NewRecorder(repo, 8)

		recorder.Record(accesslog.Entry{Method: "GET", Path: "/api/v1/employees", StatusCode: 200})
		recorder.Record(accesslog.Entry{Method: "POST", Path: "/api/v1/absences", StatusCode: 201})

		Eventually(func() int { return len(repo.Entries()) }).Should(Equal(2))
		recorder.Close()
	})

	It("flushes buffered entries on close", func() {
		repo := NewMockRepository()
		recorder := accesslog.NewRecorder(repo, 16)

		for i := 0; i < 10; i++ {
			recorder.Record(accesslog.Entry{Method: "GET", Path: "/api/v1/ping", StatusCode: 200})
		}
		recorder.Close()

		Expect(repo.Entries()).To(HaveLen(10))
	})

	It("drops entries instead of blocking when the buffer is full", func() {
		repo := NewMockRepository()
		repo.blockFirst = true
		recorder := accesslog.NewRecorder(repo, 1)

		recorder.Record(accesslog.Entry{Path: "/a"})
		// wait for the drain goroutine to pick up the first entry
		Eventually(repo.started).Should(BeClosed())

		recorder.Record(accesslog.Entry{Path: "/b"}) // fills the buffer
		recorder.Record(accesslog.Entry{Path: "/c"}) // dropped, must not block

		close(repo.release)
		recorder.Close()

		entries := repo.Entries()
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].Path).To(Equal("/a"))
		Expect(entries[1].Path).To(Equal("/b"))
	})

	It("ignores records after close", func() {
		repo := NewMockRepository()
		recorder := accesslog.NewRecorder(repo, 4)
		recorder.Close()

		recorder.Record(accesslog.Entry{Path: "/late"})
		Expect(repo.Entries()).To(BeEmpty())
	})
})
