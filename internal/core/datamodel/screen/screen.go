package screen

import "time"

// Screen is a named functional area subject to access gating. Code is the
// machine identifier routes are mapped to. AvailablePermissions is a JSON
// description of the permission keys the screen supports; it is metadata
// only and is not enforced by the gate.
type Screen struct {
	ID                   int64     `gorm:"primaryKey"`
	Code                 string    `gorm:"column:code;uniqueIndex;not null"`
	Name                 string    `gorm:"column:name;not null"`
	Description          *string   `gorm:"column:description"`
	FrontendRoute        *string   `gorm:"column:frontend_route"`
	Icon                 *string   `gorm:"column:icon"`
	DisplayOrder         int       `gorm:"column:display_order;default:0"`
	AvailablePermissions string    `gorm:"column:available_permissions;default:'{}'"`
	IsActive             bool      `gorm:"column:is_active;default:true"`
	CreatedAt            time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt            time.Time `gorm:"column:updated_at;default:now()"`
}

func (Screen) TableName() string {
	return "screens"
}
