package employee

import "time"

// Employee is a tenant-scoped workforce record. Code is the external
// payroll identifier, unique within a company but not globally.
type Employee struct {
	ID                 int64      `gorm:"primaryKey"`
	CompanyCode        int64      `gorm:"column:company_code;not null;uniqueIndex:idx_employee_code"`
	Code               int64      `gorm:"column:code;not null;uniqueIndex:idx_employee_code"`
	Name               string     `gorm:"column:name;not null"`
	CPF                string     `gorm:"column:cpf;uniqueIndex;not null"`
	BirthDate          *time.Time `gorm:"column:birth_date"`
	Gender             *int       `gorm:"column:gender"`
	MaritalStatus      *int       `gorm:"column:marital_status"`
	RegistrationNumber *string    `gorm:"column:registration_number"`
	HireDate           *time.Time `gorm:"column:hire_date"`
	TerminationDate    *time.Time `gorm:"column:termination_date"`
	Status             string     `gorm:"column:status;not null"`
	UnitCode           *string    `gorm:"column:unit_code"`
	UnitName           *string    `gorm:"column:unit_name"`
	DepartmentCode     *string    `gorm:"column:department_code"`
	DepartmentName     *string    `gorm:"column:department_name"`
	JobTitleCode       *string    `gorm:"column:job_title_code"`
	JobTitleName       *string    `gorm:"column:job_title_name"`
	Email              *string    `gorm:"column:email"`
	Phone              *string    `gorm:"column:phone"`
	CreatedAt          time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Employee) TableName() string {
	return "employees"
}
