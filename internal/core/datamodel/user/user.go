package user

import "time"

const (
	TypeAdmin  = "admin"
	TypeNormal = "normal"
)

type User struct {
	ID                 int64      `gorm:"primaryKey"`
	Email              string     `gorm:"column:email;uniqueIndex;not null"`
	Name               string     `gorm:"column:name;not null"`
	PasswordHash       string     `gorm:"column:password_hash;not null"`
	UserType           string     `gorm:"column:user_type;default:normal"`
	IsActive           bool       `gorm:"column:is_active;default:true"`
	LastSessionAt      *time.Time `gorm:"column:last_session_at"`
	DefaultCompanyCode *int64     `gorm:"column:default_company_code"`
	CreatedAt          time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

// CompanyGrant authorizes a user to act within a company. At most one row
// may exist per (user, company) pair.
type CompanyGrant struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:idx_company_grant"`
	CompanyCode int64     `gorm:"column:company_code;not null;uniqueIndex:idx_company_grant"`
	GrantedBy   *int64    `gorm:"column:granted_by"`
	GrantedAt   time.Time `gorm:"column:granted_at;default:now()"`
}

func (CompanyGrant) TableName() string {
	return "company_grants"
}

// ScreenGrant authorizes a user to access a screen. The permissions payload
// is stored as opaque JSON and is not evaluated by the gate.
type ScreenGrant struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:idx_screen_grant"`
	ScreenID    int64     `gorm:"column:screen_id;not null;uniqueIndex:idx_screen_grant"`
	Permissions string    `gorm:"column:permissions;default:'{}'"`
	GrantedBy   *int64    `gorm:"column:granted_by"`
	GrantedAt   time.Time `gorm:"column:granted_at;default:now()"`
}

func (ScreenGrant) TableName() string {
	return "screen_grants"
}
