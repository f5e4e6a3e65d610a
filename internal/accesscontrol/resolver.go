package accesscontrol

import (
	"context"
	"strconv"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/auth"
)

// Resolver decides which company a request operates on. Sources are
// tried in a fixed order: explicit header hint, stored selection, then
// the identity's default company. A candidate produced by any source is
// checked against the access rule; a denied candidate fails the request
// rather than falling through to the next source.
type Resolver struct {
	grants   GrantStore
	sessions SessionStore
	persist  bool
}

func NewResolver(grants GrantStore, sessions SessionStore, persistSelection bool) *Resolver {
	return &Resolver{
		grants:   grants,
		sessions: sessions,
		persist:  persistSelection,
	}
}

func (r *Resolver) Resolve(ctx context.Context, identity *auth.User, hint string) (int64, error) {
	if hint != "" {
		code, err := strconv.ParseInt(hint, 10, 64)
		if err != nil {
			return 0, internal.NewValidationFieldError(CompanyHeader, "company header must be a numeric company code", internal.ErrCodeMissingCompany)
		}
		if err := r.authorize(identity, code); err != nil {
			return 0, err
		}
		if r.persist {
			r.sessions.Set(identity.ID, code)
		}
		return code, nil
	}

	if code, ok := r.sessions.Get(identity.ID); ok {
		if err := r.authorize(identity, code); err != nil {
			return 0, err
		}
		return code, nil
	}

	if identity.DefaultCompanyCode != nil {
		code := *identity.DefaultCompanyCode
		if err := r.authorize(identity, code); err != nil {
			return 0, err
		}
		return code, nil
	}

	return 0, internal.ErrNoCompanyContext
}

// Select stores an explicit company selection after checking access.
// Unlike header hints, selections made through the endpoint always
// persist.
func (r *Resolver) Select(ctx context.Context, identity *auth.User, companyCode int64) error {
	if err := r.authorize(identity, companyCode); err != nil {
		return err
	}
	r.sessions.Set(identity.ID, companyCode)
	return nil
}

func (r *Resolver) authorize(identity *auth.User, companyCode int64) error {
	if identity.IsUnrestricted() {
		return nil
	}

	ok, err := r.grants.HasCompanyGrant(identity.ID, companyCode)
	if err != nil {
		return internal.NewInternalError("failed to check company grant", err)
	}
	if !ok {
		return internal.ErrCompanyAccessDenied
	}
	return nil
}
