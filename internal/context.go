package internal

import (
	"context"
	"sync"
	"time"
)

type ctxKey string

const (
	ContextUserKey    ctxKey = "user"
	ContextCompanyKey ctxKey = "company"
	ContextAuditKey   ctxKey = "audit"
)

// CompanyFromContext returns the company code resolved for the request, if any.
func CompanyFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	code, ok := ctx.Value(ContextCompanyKey).(int64)
	return code, ok
}

func ContextWithCompany(ctx context.Context, companyCode int64) context.Context {
	return context.WithValue(ctx, ContextCompanyKey, companyCode)
}

// RequestAudit carries mutable request attribution. Middlewares further
// down the chain fill it in; the access log reads it only after the
// response is written, so it is a shared pointer with its own lock.
type RequestAudit struct {
	mu          sync.Mutex
	userID      *int64
	companyCode *int64
}

func (a *RequestAudit) SetUser(id int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userID = &id
}

func (a *RequestAudit) SetCompany(code int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.companyCode = &code
}

func (a *RequestAudit) Snapshot() (userID, companyCode *int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID, a.companyCode
}

// ContextWithAudit attaches a fresh audit record to the context.
func ContextWithAudit(ctx context.Context) (context.Context, *RequestAudit) {
	audit := &RequestAudit{}
	return context.WithValue(ctx, ContextAuditKey, audit), audit
}

func AuditFromContext(ctx context.Context) (*RequestAudit, bool) {
	if ctx == nil {
		return nil, false
	}
	audit, ok := ctx.Value(ContextAuditKey).(*RequestAudit)
	return audit, ok
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
