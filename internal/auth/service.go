package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/pkg/logger"
)

// Service implements the authentication business logic on top of the
// identity store and the token generator.
type Service struct {
	repo       RepositoryAPI
	tokens     TokenGeneratorAPI
	bcryptCost int
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and returns the identity, a token
// pair and the companies and screens the user may reach.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	creds, err := s.repo.GetCredentials(dto.Email)
	if err != nil {
		return nil, internal.ErrInvalidCredentials
	}
	if !creds.IsActive {
		return nil, internal.ErrUserInactive
	}

	if err := VerifyPassword(creds.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	u, err := s.repo.GetUserByID(creds.UserID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}

	// Session start is bookkeeping, not part of the login contract.
	if err := s.repo.RecordSessionStart(u.ID, time.Now().UTC()); err != nil {
		logger.LoggerWrapper().Warn("failed to record session start", "user_id", u.ID, "error", err)
	}

	companies, screens, err := s.accessLists(u)
	if err != nil {
		return nil, internal.NewInternalError("failed to load access lists", err)
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:      u,
		Tokens:    tokens,
		Companies: companies,
		Screens:   screens,
	}, nil
}

// RefreshTokens validates a refresh token and rotates the pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	u, err := s.repo.GetUserByID(userID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if !u.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokens(u)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(userID int64, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	currentHash, err := s.repo.GetPasswordForUserID(userID)
	if err != nil {
		return internal.ErrUserNotFound
	}

	if err := VerifyPassword(currentHash, dto.CurrentPassword); err != nil {
		return internal.NewValidationFieldError("current_password", "current password is incorrect", internal.ErrCodeWrongPassword)
	}

	newHash, err := HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	return s.repo.UpdatePassword(userID, newHash)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

func (s *Service) GetUserByID(userID int64) (*User, error) {
	return s.repo.GetUserByID(userID)
}

// Profile returns the same payload as login minus the tokens.
func (s *Service) Profile(userID int64) (*ProfileResult, error) {
	u, err := s.repo.GetUserByID(userID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	companies, screens, err := s.accessLists(u)
	if err != nil {
		return nil, internal.NewInternalError("failed to load access lists", err)
	}

	return &ProfileResult{
		User:      u,
		Companies: companies,
		Screens:   screens,
	}, nil
}

// accessLists resolves which companies and screens a user sees.
// Unrestricted users see every active record, others only their grants.
func (s *Service) accessLists(u *User) ([]CompanyAccess, []ScreenAccess, error) {
	var (
		companies []CompanyAccess
		screens   []ScreenAccess
		err       error
	)

	if u.IsUnrestricted() {
		companies, err = s.repo.ListActiveCompanies()
	} else {
		companies, err = s.repo.ListGrantedCompanies(u.ID)
	}
	if err != nil {
		return nil, nil, err
	}

	if u.IsUnrestricted() {
		screens, err = s.repo.ListActiveScreens()
	} else {
		screens, err = s.repo.ListGrantedScreens(u.ID)
	}
	if err != nil {
		return nil, nil, err
	}

	return companies, screens, nil
}

func (s *Service) issueTokens(u *User) (AuthTokens, error) {
	accessToken, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign access token", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(u)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("failed to sign refresh token", err)
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(u *User) (string, error) {
	return j.sign(u, j.AccessTokenSecret, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(u *User) (string, error) {
	return j.sign(u, j.RefreshTokenSecret, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) sign(u *User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	userID := strconv.FormatInt(u.ID, 10)

	claims := &Claims{
		UserID:         userID,
		Email:          u.Email,
		UserType:       u.UserType,
		DefaultCompany: u.DefaultCompanyCode,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (j *JWTTokenGenerator) ValidateAccessToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
