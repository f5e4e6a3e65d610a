package auth_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/auth"
	usermodel "github.com/fbarbosa/hr-management/internal/core/datamodel/user"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// MockRepository implements auth.RepositoryAPI for testing
type MockRepository struct {
	users         map[int64]*auth.User
	credentials   map[string]*auth.Credentials
	passwords     map[int64]string
	sessionStarts map[int64]int
	companies     []auth.CompanyAccess
	screens       []auth.ScreenAccess
	failError     error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:         make(map[int64]*auth.User),
		credentials:   make(map[string]*auth.Credentials),
		passwords:     make(map[int64]string),
		sessionStarts: make(map[int64]int),
	}
}

func (m *MockRepository) AddUser(u *auth.User, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.users[u.ID] = u
	m.credentials[u.Email] = &auth.Credentials{
		UserID:       u.ID,
		PasswordHash: string(hash),
		IsActive:     u.IsActive,
	}
	m.passwords[u.ID] = string(hash)
}

func (m *MockRepository) GetCredentials(email string) (*auth.Credentials, error) {
	creds, ok := m.credentials[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return creds, nil
}

func (m *MockRepository) GetPasswordForUserID(userID int64) (string, error) {
	hash, ok := m.passwords[userID]
	if !ok {
		return "", errors.New("not found")
	}
	return hash, nil
}

func (m *MockRepository) GetUserByID(userID int64) (*auth.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (m *MockRepository) UpdatePassword(userID int64, passwordHash string) error {
	if m.failError != nil {
		return m.failError
	}
	m.passwords[userID] = passwordHash
	return nil
}

func (m *MockRepository) RecordSessionStart(userID int64, at time.Time) error {
	if m.failError != nil {
		return m.failError
	}
	m.sessionStarts[userID]++
	return nil
}

func (m *MockRepository) ListGrantedCompanies(userID int64) ([]auth.CompanyAccess, error) {
	return m.companies, nil
}

func (m *MockRepository) ListActiveCompanies() ([]auth.CompanyAccess, error) {
	return m.companies, nil
}

func (m *MockRepository) ListGrantedScreens(userID int64) ([]auth.ScreenAccess, error) {
	return m.screens, nil
}

func (m *MockRepository) ListActiveScreens() ([]auth.ScreenAccess, error) {
	return m.screens, nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo    *MockRepository
		service *auth.Service
	)

	newTokens := func() *auth.JWTTokenGenerator {
		return auth.NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			15*time.Minute,
			24*time.Hour,
		)
	}

	BeforeEach(func() {
		repo = NewMockRepository()
		service = auth.NewService(repo, newTokens(), bcrypt.MinCost)
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			repo.AddUser(&auth.User{
				ID:       1,
				Email:    "maria@mail.com",
				Name:     "Maria",
				UserType: usermodel.TypeNormal,
				IsActive: true,
			}, "secret-password")
			repo.companies = []auth.CompanyAccess{{Code: 1001, ShortName: "Acme BR"}}
			repo.screens = []auth.ScreenAccess{{ID: 1, Code: "employees", Name: "Funcionários"}}
		})

		It("returns tokens and access lists for valid credentials", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "maria@mail.com", Password: "secret-password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.User.ID).To(Equal(int64(1)))
			Expect(result.Tokens.AccessToken).NotTo(BeEmpty())
			Expect(result.Tokens.RefreshToken).NotTo(BeEmpty())
			Expect(result.Companies).To(HaveLen(1))
			Expect(result.Screens).To(HaveLen(1))
		})

		It("records the session start once per login", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "maria@mail.com", Password: "secret-password"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.sessionStarts[1]).To(Equal(1))
		})

		It("rejects a wrong password with the generic credentials error", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "maria@mail.com", Password: "wrong"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("rejects an unknown email with the same generic error", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "nobody@mail.com", Password: "secret-password"})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("rejects an inactive user with a response indistinguishable from bad credentials", func() {
			repo.AddUser(&auth.User{
				ID:       2,
				Email:    "gone@mail.com",
				UserType: usermodel.TypeNormal,
				IsActive: false,
			}, "secret-password")

			_, err := service.Authenticate(auth.LoginDTO{Email: "gone@mail.com", Password: "secret-password"})
			Expect(err).To(Equal(internal.ErrUserInactive))

			inactiveBody, marshalErr := json.Marshal(err)
			Expect(marshalErr).NotTo(HaveOccurred())
			credentialsBody, marshalErr := json.Marshal(internal.ErrInvalidCredentials)
			Expect(marshalErr).NotTo(HaveOccurred())
			Expect(inactiveBody).To(MatchJSON(credentialsBody))
		})

		It("rejects an empty email as a validation error", func() {
			_, err := service.Authenticate(auth.LoginDTO{Password: "secret-password"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("RefreshTokens", func() {
		BeforeEach(func() {
			repo.AddUser(&auth.User{
				ID:       1,
				Email:    "maria@mail.com",
				UserType: usermodel.TypeNormal,
				IsActive: true,
			}, "secret-password")
		})

		It("rotates the pair for a valid refresh token", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "maria@mail.com", Password: "secret-password"})
			Expect(err).NotTo(HaveOccurred())

			tokens, err := service.RefreshTokens(result.Tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
		})

		It("rejects an access token used as a refresh token", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "maria@mail.com", Password: "secret-password"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.RefreshTokens(result.Tokens.AccessToken)
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("rejects garbage", func() {
			_, err := service.RefreshTokens("not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("ChangePassword", func() {
		BeforeEach(func() {
			repo.AddUser(&auth.User{
				ID:       1,
				Email:    "maria@mail.com",
				UserType: usermodel.TypeNormal,
				IsActive: true,
			}, "old-password")
		})

		It("stores a new hash when the current password matches", func() {
			err := service.ChangePassword(1, auth.ChangePasswordDTO{
				CurrentPassword: "old-password",
				NewPassword:     "new-password",
				ConfirmPassword: "new-password",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(bcrypt.CompareHashAndPassword([]byte(repo.passwords[1]), []byte("new-password"))).To(Succeed())
		})

		It("rejects a wrong current password as a field error", func() {
			err := service.ChangePassword(1, auth.ChangePasswordDTO{
				CurrentPassword: "wrong",
				NewPassword:     "new-password",
				ConfirmPassword: "new-password",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("rejects a short new password", func() {
			err := service.ChangePassword(1, auth.ChangePasswordDTO{
				CurrentPassword: "old-password",
				NewPassword:     "short",
				ConfirmPassword: "short",
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a mismatched confirmation", func() {
			err := service.ChangePassword(1, auth.ChangePasswordDTO{
				CurrentPassword: "old-password",
				NewPassword:     "new-password",
				ConfirmPassword: "other-password",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("token claims", func() {
		It("carries user type and default company", func() {
			defaultCompany := int64(1001)
			repo.AddUser(&auth.User{
				ID:                 3,
				Email:              "admin@mail.com",
				UserType:           usermodel.TypeAdmin,
				IsActive:           true,
				DefaultCompanyCode: &defaultCompany,
			}, "secret-password")

			result, err := service.Authenticate(auth.LoginDTO{Email: "admin@mail.com", Password: "secret-password"})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(result.Tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("3"))
			Expect(claims.UserType).To(Equal(usermodel.TypeAdmin))
			Expect(claims.DefaultCompany).NotTo(BeNil())
			Expect(*claims.DefaultCompany).To(Equal(int64(1001)))
		})
	})
})
