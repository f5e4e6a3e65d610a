package auth

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal/auth"
	usermodel "github.com/fbarbosa/hr-management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetCredentials(email string) (*auth.Credentials, error) {
	var creds auth.Credentials
	query := `SELECT id, password_hash, is_active FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&creds.UserID, &creds.PasswordHash, &creds.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &creds, nil
}

func (r *Repository) GetPasswordForUserID(userID int64) (string, error) {
	var passwordHash string
	query := `SELECT password_hash FROM users WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", gorm.ErrRecordNotFound
		}
		return "", err
	}
	return passwordHash, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var row usermodel.User
	if err := r.db.First(&row, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	return &auth.User{
		ID:                 row.ID,
		Email:              row.Email,
		Name:               row.Name,
		UserType:           row.UserType,
		IsActive:           row.IsActive,
		DefaultCompanyCode: row.DefaultCompanyCode,
		LastSessionAt:      row.LastSessionAt,
	}, nil
}

func (r *Repository) UpdatePassword(userID int64, passwordHash string) error {
	return r.db.Model(&usermodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (r *Repository) RecordSessionStart(userID int64, at time.Time) error {
	return r.db.Model(&usermodel.User{}).
		Where("id = ?", userID).
		Update("last_session_at", at).Error
}

func (r *Repository) ListGrantedCompanies(userID int64) ([]auth.CompanyAccess, error) {
	var companies []auth.CompanyAccess
	query := `SELECT c.code, c.short_name, c.cnpj
	          FROM companies c
	          JOIN company_grants g ON g.company_code = c.code
	          WHERE g.user_id = ? AND c.is_active = true
	          ORDER BY c.short_name`

	if err := r.db.Raw(query, userID).Scan(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *Repository) ListActiveCompanies() ([]auth.CompanyAccess, error) {
	var companies []auth.CompanyAccess
	query := `SELECT code, short_name, cnpj FROM companies WHERE is_active = true ORDER BY short_name`

	if err := r.db.Raw(query).Scan(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *Repository) ListGrantedScreens(userID int64) ([]auth.ScreenAccess, error) {
	var screens []auth.ScreenAccess
	query := `SELECT s.id, s.code, s.name, s.frontend_route, s.icon, s.display_order, g.permissions
	          FROM screens s
	          JOIN screen_grants g ON g.screen_id = s.id
	          WHERE g.user_id = ? AND s.is_active = true
	          ORDER BY s.display_order, s.code`

	if err := r.db.Raw(query, userID).Scan(&screens).Error; err != nil {
		return nil, err
	}
	return screens, nil
}

// ListActiveScreens returns every active screen with its full available
// permission payload, which is what unrestricted users operate with.
func (r *Repository) ListActiveScreens() ([]auth.ScreenAccess, error) {
	var screens []auth.ScreenAccess
	query := `SELECT id, code, name, frontend_route, icon, display_order,
	                 available_permissions AS permissions
	          FROM screens
	          WHERE is_active = true
	          ORDER BY display_order, code`

	if err := r.db.Raw(query).Scan(&screens).Error; err != nil {
		return nil, err
	}
	return screens, nil
}
