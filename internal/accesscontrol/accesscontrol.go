package accesscontrol

// CompanyHeader is the request header carrying an explicit company
// selection for a single request.
const CompanyHeader = "X-Empresa"

// GrantStore answers whether a user holds a grant. Implementations are
// read-only; grant management lives with the company and screen admin
// endpoints.
type GrantStore interface {
	HasCompanyGrant(userID int64, companyCode int64) (bool, error)
	HasScreenGrant(userID int64, screenCode string) (bool, error)
}

// SessionStore remembers the company a user last selected explicitly.
type SessionStore interface {
	Get(userID int64) (int64, bool)
	Set(userID int64, companyCode int64)
	Delete(userID int64)
}

// ScreenRoute maps a path prefix to the screen that gates it. Order
// matters: the first matching prefix wins.
type ScreenRoute struct {
	PathPrefix string
	ScreenCode string
}
