package absence

import "time"

// AbsenceType is a catalog entry describing a reason for absence.
type AbsenceType struct {
	ID                  int64     `gorm:"primaryKey"`
	Name                string    `gorm:"column:name;not null"`
	Description         *string   `gorm:"column:description"`
	RequiresCertificate bool      `gorm:"column:requires_certificate;default:false"`
	CreatedAt           time.Time `gorm:"column:created_at;default:now()"`
}

func (AbsenceType) TableName() string {
	return "absence_types"
}

// Absence is one leave period, inclusive of both endpoints.
type Absence struct {
	ID             int64     `gorm:"primaryKey"`
	CompanyCode    int64     `gorm:"column:company_code;not null;index"`
	EmployeeID     int64     `gorm:"column:employee_id;not null;index"`
	TypeID         int64     `gorm:"column:type_id;not null"`
	StartDate      time.Time `gorm:"column:start_date;not null"`
	EndDate        time.Time `gorm:"column:end_date;not null"`
	Justification  *string   `gorm:"column:justification"`
	HasCertificate bool      `gorm:"column:has_certificate;default:false"`
	CreatedBy      *int64    `gorm:"column:created_by"`
	CreatedAt      time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `gorm:"column:updated_at;default:now()"`
}

func (Absence) TableName() string {
	return "absences"
}

// Days counts the covered days inclusively: a single-day absence is 1.
func (a *Absence) Days() int {
	return int(a.EndDate.Sub(a.StartDate).Hours()/24) + 1
}
