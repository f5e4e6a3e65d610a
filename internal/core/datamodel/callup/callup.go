package callup

import "time"

// CallUpType is a catalog entry describing what the employee is being
// called up for.
type CallUpType struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (CallUpType) TableName() string {
	return "callup_types"
}

// CallUp is a notice requiring an employee response by a deadline.
type CallUp struct {
	ID               int64      `gorm:"primaryKey"`
	CompanyCode      int64      `gorm:"column:company_code;not null;index"`
	EmployeeID       int64      `gorm:"column:employee_id;not null;index"`
	TypeID           int64      `gorm:"column:type_id;not null"`
	CallUpDate       time.Time  `gorm:"column:callup_date;not null"`
	ResponseDeadline time.Time  `gorm:"column:response_deadline;not null"`
	Responded        bool       `gorm:"column:responded;default:false"`
	ResponseDate     *time.Time `gorm:"column:response_date"`
	Response         string     `gorm:"column:response;default:PENDING"`
	Notes            *string    `gorm:"column:notes"`
	CreatedBy        *int64     `gorm:"column:created_by"`
	CreatedAt        time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;default:now()"`
}

func (CallUp) TableName() string {
	return "callups"
}
