package accesslog_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/accesslog"
	"github.com/fbarbosa/hr-management/internal/transport/middleware"
)

var _ = Describe("Middleware", func() {
	var (
		repo     *MockRepository
		recorder *accesslog.Recorder
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		recorder = accesslog.NewRecorder(repo, 16)
	})

	serve := func(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		accesslog.Middleware(recorder)(handler).ServeHTTP(rr, req)
		return rr
	}

	It("records exactly one entry per request", func() {
		req := httptest.NewRequest("GET", "/api/v1/employees?status=ACTIVE", nil)
		req.RemoteAddr = "10.0.0.5:4321"

		serve(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}, req)
		recorder.Close()

		entries := repo.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Method).To(Equal("GET"))
		Expect(entries[0].Path).To(Equal("/api/v1/employees"))
		Expect(entries[0].Query).To(Equal("status=ACTIVE"))
		Expect(entries[0].StatusCode).To(Equal(http.StatusOK))
		Expect(entries[0].IPAddress).To(Equal("10.0.0.5"))
	})

	It("records denied requests too", func() {
		req := httptest.NewRequest("GET", "/api/v1/employees", nil)

		serve(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}, req)
		recorder.Close()

		entries := repo.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].StatusCode).To(Equal(http.StatusForbidden))
		Expect(entries[0].UserID).To(BeNil())
		Expect(entries[0].CompanyCode).To(BeNil())
	})

	It("skips paths outside the API", func() {
		req := httptest.NewRequest("GET", "/metrics", nil)

		serve(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}, req)
		recorder.Close()

		Expect(repo.Entries()).To(BeEmpty())
	})

	It("attributes the actor and company filled in downstream", func() {
		req := httptest.NewRequest("GET", "/api/v1/employees", nil)

		serve(func(w http.ResponseWriter, r *http.Request) {
			audit, ok := internal.AuditFromContext(r.Context())
			Expect(ok).To(BeTrue())
			audit.SetUser(7)
			audit.SetCompany(1001)
			w.WriteHeader(http.StatusOK)
		}, req)
		recorder.Close()

		entries := repo.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].UserID).NotTo(BeNil())
		Expect(*entries[0].UserID).To(Equal(int64(7)))
		Expect(*entries[0].CompanyCode).To(Equal(int64(1001)))
	})

	It("prefers the first X-Forwarded-For hop", func() {
		req := httptest.NewRequest("GET", "/api/v1/ping", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		req.RemoteAddr = "10.0.0.1:9999"

		serve(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}, req)
		recorder.Close()

		entries := repo.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].IPAddress).To(Equal("203.0.113.9"))
	})

	It("records a request whose handler panics as a 500", func() {
		req := httptest.NewRequest("GET", "/api/v1/employees", nil)
		rr := httptest.NewRecorder()

		inner := middleware.RecoveryMiddleware(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))
		accesslog.Middleware(recorder)(inner).ServeHTTP(rr, req)
		recorder.Close()

		Expect(rr.Code).To(Equal(http.StatusInternalServerError))
		entries := repo.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].StatusCode).To(Equal(http.StatusInternalServerError))
	})

	It("records the default status when the handler writes no header", func() {
		req := httptest.NewRequest("GET", "/api/v1/ping", nil)

		serve(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("pong"))
		}, req)
		recorder.Close()

		entries := repo.Entries()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].StatusCode).To(Equal(http.StatusOK))
	})
})
