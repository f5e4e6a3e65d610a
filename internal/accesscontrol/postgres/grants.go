package accesscontrol

import (
	"gorm.io/gorm"
)

type GrantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) *GrantRepository {
	return &GrantRepository{
		db: db,
	}
}

func (r *GrantRepository) HasCompanyGrant(userID int64, companyCode int64) (bool, error) {
	var count int64
	query := `SELECT COUNT(1) FROM company_grants WHERE user_id = ? AND company_code = ?`

	if err := r.db.Raw(query, userID, companyCode).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasScreenGrant treats a grant on an inactive screen as absent, so
// deactivating a screen revokes access everywhere at once.
func (r *GrantRepository) HasScreenGrant(userID int64, screenCode string) (bool, error) {
	var count int64
	query := `SELECT COUNT(1)
	          FROM screen_grants g
	          JOIN screens s ON s.id = g.screen_id
	          WHERE g.user_id = ? AND s.code = ? AND s.is_active = true`

	if err := r.db.Raw(query, userID, screenCode).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
