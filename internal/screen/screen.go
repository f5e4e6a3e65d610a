package screen

import (
	"time"

	screenmodel "github.com/fbarbosa/hr-management/internal/core/datamodel/screen"
	usermodel "github.com/fbarbosa/hr-management/internal/core/datamodel/user"
)

// GrantInfo is a screen grant joined with the grantee for listing.
type GrantInfo struct {
	UserID      int64     `json:"user_id" gorm:"column:user_id"`
	Email       string    `json:"email" gorm:"column:email"`
	Name        string    `json:"name" gorm:"column:name"`
	Permissions string    `json:"permissions" gorm:"column:permissions"`
	GrantedBy   *int64    `json:"granted_by,omitempty" gorm:"column:granted_by"`
	GrantedAt   time.Time `json:"granted_at" gorm:"column:granted_at"`
}

type RepositoryAPI interface {
	List(activeOnly bool) ([]*screenmodel.Screen, error)
	GetByID(id int64) (*screenmodel.Screen, error)
	UserExists(userID int64) (bool, error)
	GetGrant(userID, screenID int64) (*usermodel.ScreenGrant, error)
	CreateGrant(grant *usermodel.ScreenGrant) error
	UpdateGrant(grant *usermodel.ScreenGrant) error
	DeleteGrant(userID, screenID int64) error
	ListGrants(screenID int64) ([]GrantInfo, error)
}

type ServiceAPI interface {
	ListScreens(activeOnly bool) ([]*screenmodel.Screen, error)
	GetScreen(id int64) (*screenmodel.Screen, error)
	GrantAccess(screenID, userID int64, permissions *string, grantedBy *int64) error
	RevokeAccess(screenID, userID int64) error
	ListGrants(screenID int64) ([]GrantInfo, error)
}
