package accesscontrol_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/accesscontrol"
	"github.com/fbarbosa/hr-management/internal/auth"
	usermodel "github.com/fbarbosa/hr-management/internal/core/datamodel/user"
)

func TestAccessControl(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AccessControl Suite")
}

// MockGrantStore implements accesscontrol.GrantStore for testing
type MockGrantStore struct {
	companyGrants map[int64]map[int64]bool
	screenGrants  map[int64]map[string]bool
	failError     error
}

func NewMockGrantStore() *MockGrantStore {
	return &MockGrantStore{
		companyGrants: make(map[int64]map[int64]bool),
		screenGrants:  make(map[int64]map[string]bool),
	}
}

func (m *MockGrantStore) GrantCompany(userID, companyCode int64) {
	if m.companyGrants[userID] == nil {
		m.companyGrants[userID] = make(map[int64]bool)
	}
	m.companyGrants[userID][companyCode] = true
}

func (m *MockGrantStore) GrantScreen(userID int64, screenCode string) {
	if m.screenGrants[userID] == nil {
		m.screenGrants[userID] = make(map[string]bool)
	}
	m.screenGrants[userID][screenCode] = true
}

func (m *MockGrantStore) HasCompanyGrant(userID, companyCode int64) (bool, error) {
	if m.failError != nil {
		return false, m.failError
	}
	return m.companyGrants[userID][companyCode], nil
}

func (m *MockGrantStore) HasScreenGrant(userID int64, screenCode string) (bool, error) {
	if m.failError != nil {
		return false, m.failError
	}
	return m.screenGrants[userID][screenCode], nil
}

func normalUser(id int64, defaultCompany *int64) *auth.User {
	return &auth.User{
		ID:                 id,
		Email:              "user@mail.com",
		UserType:           usermodel.TypeNormal,
		IsActive:           true,
		DefaultCompanyCode: defaultCompany,
	}
}

func adminUser(id int64) *auth.User {
	return &auth.User{
		ID:       id,
		Email:    "admin@mail.com",
		UserType: usermodel.TypeAdmin,
		IsActive: true,
	}
}

var _ = Describe("Resolver", func() {
	var (
		grants   *MockGrantStore
		sessions *accesscontrol.MemorySessionStore
		resolver *accesscontrol.Resolver
		ctx      context.Context
	)

	BeforeEach(func() {
		grants = NewMockGrantStore()
		sessions = accesscontrol.NewMemorySessionStore()
		resolver = accesscontrol.NewResolver(grants, sessions, true)
		ctx = context.Background()
	})

	Describe("header hint", func() {
		It("resolves a granted company from the header", func() {
			u := normalUser(1, nil)
			grants.GrantCompany(1, 1001)

			code, err := resolver.Resolve(ctx, u, "1001")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal(int64(1001)))
		})

		It("denies an ungranted hint without falling through to the default", func() {
			defaultCompany := int64(2002)
			u := normalUser(1, &defaultCompany)
			grants.GrantCompany(1, 2002)

			_, err := resolver.Resolve(ctx, u, "1001")
			Expect(err).To(Equal(internal.ErrCompanyAccessDenied))
		})

		It("rejects a non-numeric hint as a validation error", func() {
			u := normalUser(1, nil)

			_, err := resolver.Resolve(ctx, u, "acme")
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("persists the hinted company for later requests", func() {
			u := normalUser(1, nil)
			grants.GrantCompany(1, 1001)

			_, err := resolver.Resolve(ctx, u, "1001")
			Expect(err).NotTo(HaveOccurred())

			code, err := resolver.Resolve(ctx, u, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal(int64(1001)))
		})

		It("does not persist the hint when persistence is disabled", func() {
			resolver = accesscontrol.NewResolver(grants, sessions, false)
			u := normalUser(1, nil)
			grants.GrantCompany(1, 1001)

			_, err := resolver.Resolve(ctx, u, "1001")
			Expect(err).NotTo(HaveOccurred())

			_, err = resolver.Resolve(ctx, u, "")
			Expect(err).To(Equal(internal.ErrNoCompanyContext))
		})
	})

	Describe("stored selection", func() {
		It("uses the stored selection when no hint is present", func() {
			u := normalUser(1, nil)
			grants.GrantCompany(1, 1001)
			sessions.Set(1, 1001)

			code, err := resolver.Resolve(ctx, u, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal(int64(1001)))
		})

		It("denies a stored selection whose grant was revoked", func() {
			defaultCompany := int64(2002)
			u := normalUser(1, &defaultCompany)
			grants.GrantCompany(1, 2002)
			sessions.Set(1, 1001)

			_, err := resolver.Resolve(ctx, u, "")
			Expect(err).To(Equal(internal.ErrCompanyAccessDenied))
		})
	})

	Describe("default company", func() {
		It("falls back to the identity's default company", func() {
			defaultCompany := int64(2002)
			u := normalUser(1, &defaultCompany)
			grants.GrantCompany(1, 2002)

			code, err := resolver.Resolve(ctx, u, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal(int64(2002)))
		})

		It("returns a no-context error when nothing resolves", func() {
			u := normalUser(1, nil)

			_, err := resolver.Resolve(ctx, u, "")
			Expect(err).To(Equal(internal.ErrNoCompanyContext))
		})
	})

	Describe("admin bypass", func() {
		It("resolves any company for an admin without a grant", func() {
			u := adminUser(9)

			code, err := resolver.Resolve(ctx, u, "1001")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal(int64(1001)))
		})
	})

	Describe("idempotence", func() {
		It("resolves the same company for repeated identical requests", func() {
			u := normalUser(1, nil)
			grants.GrantCompany(1, 1001)

			first, err := resolver.Resolve(ctx, u, "1001")
			Expect(err).NotTo(HaveOccurred())

			second, err := resolver.Resolve(ctx, u, "1001")
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})
	})

	Describe("Select", func() {
		It("persists a granted selection even when header persistence is off", func() {
			resolver = accesscontrol.NewResolver(grants, sessions, false)
			u := normalUser(1, nil)
			grants.GrantCompany(1, 1001)

			Expect(resolver.Select(ctx, u, 1001)).To(Succeed())

			code, err := resolver.Resolve(ctx, u, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal(int64(1001)))
		})

		It("rejects an ungranted selection", func() {
			u := normalUser(1, nil)

			err := resolver.Select(ctx, u, 1001)
			Expect(err).To(Equal(internal.ErrCompanyAccessDenied))

			_, ok := sessions.Get(1)
			Expect(ok).To(BeFalse())
		})
	})
})
