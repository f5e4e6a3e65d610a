package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fbarbosa/hr-management/internal"
	usermodel "github.com/fbarbosa/hr-management/internal/core/datamodel/user"
)

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*LoginResult, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ChangePassword(userID int64, dto ChangePasswordDTO) error
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserByID(userID int64) (*User, error)
	Profile(userID int64) (*ProfileResult, error)
}

type RepositoryAPI interface {
	GetCredentials(email string) (*Credentials, error)
	GetPasswordForUserID(userID int64) (string, error)
	GetUserByID(userID int64) (*User, error)
	UpdatePassword(userID int64, passwordHash string) error
	RecordSessionStart(userID int64, at time.Time) error
	ListGrantedCompanies(userID int64) ([]CompanyAccess, error)
	ListActiveCompanies() ([]CompanyAccess, error)
	ListGrantedScreens(userID int64) ([]ScreenAccess, error)
	ListActiveScreens() ([]ScreenAccess, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(u *User) (string, error)
	GenerateRefreshToken(u *User) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

// User is the identity attached to authenticated requests.
type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	UserType           string     `json:"user_type"`
	IsActive           bool       `json:"is_active"`
	DefaultCompanyCode *int64     `json:"default_company,omitempty"`
	LastSessionAt      *time.Time `json:"last_session_at,omitempty"`
}

// IsUnrestricted reports whether the user bypasses company and screen
// checks. The resolver and the gate both call this, so the bypass rule
// lives in exactly one place.
func (u *User) IsUnrestricted() bool {
	return u.UserType == usermodel.TypeAdmin
}

// Credentials is the minimal row the login path needs before the
// password check has passed.
type Credentials struct {
	UserID       int64
	PasswordHash string
	IsActive     bool
}

type CompanyAccess struct {
	Code      int64  `json:"code" gorm:"column:code"`
	ShortName string `json:"short_name" gorm:"column:short_name"`
	CNPJ      string `json:"cnpj" gorm:"column:cnpj"`
}

type ScreenAccess struct {
	ID            int64   `json:"id" gorm:"column:id"`
	Code          string  `json:"code" gorm:"column:code"`
	Name          string  `json:"name" gorm:"column:name"`
	FrontendRoute *string `json:"frontend_route,omitempty" gorm:"column:frontend_route"`
	Icon          *string `json:"icon,omitempty" gorm:"column:icon"`
	DisplayOrder  int     `json:"display_order" gorm:"column:display_order"`
	Permissions   string  `json:"permissions" gorm:"column:permissions"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult is the full login payload: the identity plus everything
// the frontend needs to render without further round trips.
type LoginResult struct {
	User      *User           `json:"user"`
	Tokens    AuthTokens      `json:"tokens"`
	Companies []CompanyAccess `json:"companies"`
	Screens   []ScreenAccess  `json:"screens"`
}

type ProfileResult struct {
	User      *User           `json:"user"`
	Companies []CompanyAccess `json:"companies"`
	Screens   []ScreenAccess  `json:"screens"`
}

type Claims struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	UserType       string `json:"user_type"`
	DefaultCompany *int64 `json:"default_company,omitempty"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

// UserFromContext returns the authenticated user placed by the auth
// middleware, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(internal.ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, internal.ContextUserKey, u)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
