package employee

import (
	employeemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/employee"
)

// Employee lifecycle statuses.
const (
	StatusActive    = "ACTIVE"
	StatusInactive  = "INACTIVE"
	StatusOnLeave   = "ON_LEAVE"
	StatusSuspended = "SUSPENDED"
)

// ValidStatuses is the closed set accepted on create and update.
var ValidStatuses = []string{StatusActive, StatusInactive, StatusOnLeave, StatusSuspended}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type ListFilters struct {
	Status string
	Search string
	Limit  int
	Offset int
}

type RepositoryAPI interface {
	Create(e *employeemodel.Employee) error
	GetByID(companyCode, id int64) (*employeemodel.Employee, error)
	GetByCode(companyCode, code int64) (*employeemodel.Employee, error)
	List(companyCode int64, filters ListFilters) ([]*employeemodel.Employee, int64, error)
	ListAll(companyCode int64) ([]*employeemodel.Employee, error)
	Update(e *employeemodel.Employee) error
	Delete(companyCode, id int64) error
}

type ServiceAPI interface {
	CreateEmployee(companyCode int64, dto *CreateEmployeeDTO) (*employeemodel.Employee, error)
	GetEmployee(companyCode, id int64) (*employeemodel.Employee, error)
	ListEmployees(companyCode int64, filters ListFilters) (*ListResult, error)
	UpdateEmployee(companyCode, id int64, dto *UpdateEmployeeDTO) (*employeemodel.Employee, error)
	DeleteEmployee(companyCode, id int64) error
	Metrics(companyCode int64) (*Metrics, error)
	ExportCSV(companyCode int64, filters ListFilters) ([][]string, error)
}

type ListResult struct {
	Employees []*employeemodel.Employee `json:"employees"`
	Total     int64                     `json:"total"`
	Limit     int                       `json:"limit"`
	Offset    int                       `json:"offset"`
}

type StatusCount struct {
	Status string `json:"status"`
	Total  int    `json:"total"`
}

type GroupCount struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Total int    `json:"total"`
}

type Metrics struct {
	TotalEmployees int           `json:"total_employees"`
	ByStatus       []StatusCount `json:"by_status"`
	TopUnits       []GroupCount  `json:"top_units"`
	TopDepartments []GroupCount  `json:"top_departments"`
	TopJobTitles   []GroupCount  `json:"top_job_titles"`
}
