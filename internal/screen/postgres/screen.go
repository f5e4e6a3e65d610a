package postgres

import (
	"gorm.io/gorm"

	screenmodel "github.com/fbarbosa/hr-management/internal/core/datamodel/screen"
	usermodel "github.com/fbarbosa/hr-management/internal/core/datamodel/user"
	"github.com/fbarbosa/hr-management/internal/screen"
)

type ScreenRepository struct {
	db *gorm.DB
}

func NewScreenRepository(db *gorm.DB) screen.RepositoryAPI {
	return &ScreenRepository{db: db}
}

func (r *ScreenRepository) List(activeOnly bool) ([]*screenmodel.Screen, error) {
	query := r.db.Model(&screenmodel.Screen{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var screens []*screenmodel.Screen
	err := query.Order("display_order ASC, code ASC").Find(&screens).Error
	if err != nil {
		return nil, err
	}
	return screens, nil
}

func (r *ScreenRepository) GetByID(id int64) (*screenmodel.Screen, error) {
	var sc screenmodel.Screen
	err := r.db.Where("id = ?", id).First(&sc).Error
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *ScreenRepository) UserExists(userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ScreenRepository) GetGrant(userID, screenID int64) (*usermodel.ScreenGrant, error) {
	var grant usermodel.ScreenGrant
	err := r.db.
		Where("user_id = ? AND screen_id = ?", userID, screenID).
		First(&grant).Error
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *ScreenRepository) CreateGrant(grant *usermodel.ScreenGrant) error {
	return r.db.Create(grant).Error
}

func (r *ScreenRepository) UpdateGrant(grant *usermodel.ScreenGrant) error {
	return r.db.Save(grant).Error
}

func (r *ScreenRepository) DeleteGrant(userID, screenID int64) error {
	return r.db.
		Where("user_id = ? AND screen_id = ?", userID, screenID).
		Delete(&usermodel.ScreenGrant{}).Error
}

func (r *ScreenRepository) ListGrants(screenID int64) ([]screen.GrantInfo, error) {
	var grants []screen.GrantInfo
	query := `SELECT g.user_id, u.email, u.name, g.permissions, g.granted_by, g.granted_at
	          FROM screen_grants g
	          JOIN users u ON u.id = g.user_id
	          WHERE g.screen_id = ?
	          ORDER BY g.granted_at DESC`

	if err := r.db.Raw(query, screenID).Scan(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}
