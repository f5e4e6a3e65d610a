package callup

import (
	"time"

	callupmodel "github.com/fbarbosa/hr-management/internal/core/datamodel/callup"
)

// Call-up response states.
const (
	ResponseAccepted = "ACCEPTED"
	ResponseRefused  = "REFUSED"
	ResponsePending  = "PENDING"
)

// upcomingWindowDays bounds the deadline window highlighted as urgent.
const upcomingWindowDays = 30

type ListFilters struct {
	EmployeeID int64
	TypeID     int64
	Responded  *bool
	Limit      int
	Offset     int
}

// MetricsRow is a call-up joined with its employee's unit, which is all
// the bucket computation reads.
type MetricsRow struct {
	ID               int64      `gorm:"column:id"`
	Responded        bool       `gorm:"column:responded"`
	Response         string     `gorm:"column:response"`
	ResponseDate     *time.Time `gorm:"column:response_date"`
	ResponseDeadline time.Time  `gorm:"column:response_deadline"`
	UnitCode         *string    `gorm:"column:unit_code"`
	UnitName         *string    `gorm:"column:unit_name"`
}

type RepositoryAPI interface {
	Create(c *callupmodel.CallUp) error
	GetByID(companyCode, id int64) (*callupmodel.CallUp, error)
	List(companyCode int64, filters ListFilters) ([]*callupmodel.CallUp, int64, error)
	Update(c *callupmodel.CallUp) error
	Delete(companyCode, id int64) error
	ListForMetrics(companyCode int64) ([]MetricsRow, error)
	EmployeeExists(companyCode, employeeID int64) (bool, error)
	TypeExists(typeID int64) (bool, error)
	ListTypes() ([]*callupmodel.CallUpType, error)
}

type ServiceAPI interface {
	CreateCallUp(companyCode int64, createdBy *int64, dto *CreateCallUpDTO) (*callupmodel.CallUp, error)
	GetCallUp(companyCode, id int64) (*callupmodel.CallUp, error)
	ListCallUps(companyCode int64, filters ListFilters) (*ListResult, error)
	UpdateCallUp(companyCode, id int64, dto *UpdateCallUpDTO) (*callupmodel.CallUp, error)
	RespondCallUp(companyCode, id int64, dto *RespondCallUpDTO) (*callupmodel.CallUp, error)
	DeleteCallUp(companyCode, id int64) error
	Metrics(companyCode int64) (*Metrics, error)
	ExportCSV(companyCode int64) ([][]string, error)
	ListTypes() ([]*callupmodel.CallUpType, error)
}

type ListResult struct {
	CallUps []*callupmodel.CallUp `json:"callups"`
	Total   int64                 `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

type StatusBucket struct {
	Status string `json:"status"`
	Total  int    `json:"total"`
}

type UnitBreakdown struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Pending int    `json:"pending"`
	OnTime  int    `json:"on_time"`
	Overdue int    `json:"overdue"`
}

type Metrics struct {
	TotalOverdue  int             `json:"total_overdue"`
	TotalPending  int             `json:"total_pending"`
	TotalUpcoming int             `json:"total_upcoming"`
	TotalOnTime   int             `json:"total_on_time"`
	ByStatus      []StatusBucket  `json:"by_status"`
	ByUnit        []UnitBreakdown `json:"by_unit"`
}
