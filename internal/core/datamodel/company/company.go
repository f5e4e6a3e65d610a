package company

import "time"

// Company is the tenant unit. Code is the externally assigned business
// identifier, not a generated surrogate; it is stable and globally unique.
type Company struct {
	Code       int64     `gorm:"column:code;primaryKey;autoIncrement:false"`
	CNPJ       string    `gorm:"column:cnpj;uniqueIndex;not null"`
	ShortName  string    `gorm:"column:short_name;not null"`
	LegalName  string    `gorm:"column:legal_name;not null"`
	Street     string    `gorm:"column:street"`
	Number     string    `gorm:"column:number"`
	Complement *string   `gorm:"column:complement"`
	District   string    `gorm:"column:district"`
	City       string    `gorm:"column:city"`
	PostalCode string    `gorm:"column:postal_code"`
	State      string    `gorm:"column:state;size:2"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `gorm:"column:updated_at;default:now()"`
}

func (Company) TableName() string {
	return "companies"
}
