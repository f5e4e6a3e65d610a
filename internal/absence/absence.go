package absence

import (
	"time"

	absencemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/absence"
)

// PeriodFilter optionally bounds metrics and listings. A record matches
// when its start is on or after From and its end is on or before To.
type PeriodFilter struct {
	From *time.Time
	To   *time.Time
}

type ListFilters struct {
	EmployeeID int64
	TypeID     int64
	Period     PeriodFilter
	Limit      int
	Offset     int
}

// MetricsRow is a flattened absence joined with its employee and type,
// which is everything the aggregation needs in one read.
type MetricsRow struct {
	ID             int64      `gorm:"column:id"`
	EmployeeID     int64      `gorm:"column:employee_id"`
	EmployeeCode   int64      `gorm:"column:employee_code"`
	EmployeeName   string     `gorm:"column:employee_name"`
	DepartmentCode *string    `gorm:"column:department_code"`
	DepartmentName *string    `gorm:"column:department_name"`
	TypeName       string     `gorm:"column:type_name"`
	StartDate      time.Time  `gorm:"column:start_date"`
	EndDate        time.Time  `gorm:"column:end_date"`
}

type RepositoryAPI interface {
	Create(a *absencemodel.Absence) error
	GetByID(companyCode, id int64) (*absencemodel.Absence, error)
	List(companyCode int64, filters ListFilters) ([]*absencemodel.Absence, int64, error)
	Update(a *absencemodel.Absence) error
	Delete(companyCode, id int64) error
	ListForMetrics(companyCode int64, period PeriodFilter) ([]MetricsRow, error)
	CountActiveEmployees(companyCode int64) (int64, error)
	EmployeeExists(companyCode, employeeID int64) (bool, error)
	TypeExists(typeID int64) (bool, error)
	ListTypes() ([]*absencemodel.AbsenceType, error)
}

type ServiceAPI interface {
	CreateAbsence(companyCode int64, createdBy *int64, dto *CreateAbsenceDTO) (*absencemodel.Absence, error)
	GetAbsence(companyCode, id int64) (*absencemodel.Absence, error)
	ListAbsences(companyCode int64, filters ListFilters) (*ListResult, error)
	UpdateAbsence(companyCode, id int64, dto *UpdateAbsenceDTO) (*absencemodel.Absence, error)
	DeleteAbsence(companyCode, id int64) error
	Metrics(companyCode int64, period PeriodFilter) (*Metrics, error)
	ExportCSV(companyCode int64, period PeriodFilter) ([][]string, error)
	ListTypes() ([]*absencemodel.AbsenceType, error)
}

type ListResult struct {
	Absences []*absencemodel.Absence `json:"absences"`
	Total    int64                   `json:"total"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Total int    `json:"total"`
}

type GroupCount struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Total int    `json:"total"`
}

type EmployeeCount struct {
	Code  int64  `json:"code"`
	Name  string `json:"name"`
	Total int    `json:"total"`
}

type Metrics struct {
	TotalRecords      int             `json:"total_records"`
	TotalDays         int             `json:"total_days"`
	AverageDays       float64         `json:"average_days_per_record"`
	AffectedEmployees int             `json:"affected_employees"`
	AbsenteeismIndex  float64         `json:"absenteeism_index"`
	ByType            []TypeCount     `json:"by_type"`
	TopDepartments    []GroupCount    `json:"top_departments"`
	TopEmployees      []EmployeeCount `json:"top_employees"`
}
