package employee

import (
	"errors"
	"log/slog"
	"strconv"

	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal"
	employeemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/employee"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateEmployee(companyCode int64, dto *CreateEmployeeDTO) (*employeemodel.Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(companyCode, dto.Code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to check employee code", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("an employee with this code already exists", internal.ErrCodeDuplicateEmployee)
	}

	e := dto.ToModel(companyCode)
	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create employee", "company_code", companyCode, "code", dto.Code, "error", err)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created", "company_code", companyCode, "employee_id", e.ID)
	return e, nil
}

func (s *Service) GetEmployee(companyCode, id int64) (*employeemodel.Employee, error) {
	e, err := s.repo.GetByID(companyCode, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, internal.NewInternalError("failed to load employee", err)
	}
	return e, nil
}

func (s *Service) ListEmployees(companyCode int64, filters ListFilters) (*ListResult, error) {
	if filters.Limit < 1 || filters.Limit > 100 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	employees, total, err := s.repo.List(companyCode, filters)
	if err != nil {
		return nil, internal.NewInternalError("failed to list employees", err)
	}

	return &ListResult{
		Employees: employees,
		Total:     total,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	}, nil
}

func (s *Service) UpdateEmployee(companyCode, id int64, dto *UpdateEmployeeDTO) (*employeemodel.Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.GetEmployee(companyCode, id)
	if err != nil {
		return nil, err
	}

	dto.ApplyTo(e)
	if err := s.repo.Update(e); err != nil {
		s.logger.Error("failed to update employee", "employee_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update employee", err)
	}

	return e, nil
}

func (s *Service) DeleteEmployee(companyCode, id int64) error {
	if _, err := s.GetEmployee(companyCode, id); err != nil {
		return err
	}

	if err := s.repo.Delete(companyCode, id); err != nil {
		s.logger.Error("failed to delete employee", "employee_id", id, "error", err)
		return internal.NewInternalError("failed to delete employee", err)
	}

	s.logger.Info("employee deleted", "company_code", companyCode, "employee_id", id)
	return nil
}

func (s *Service) Metrics(companyCode int64) (*Metrics, error) {
	rows, err := s.repo.ListAll(companyCode)
	if err != nil {
		return nil, internal.NewInternalError("failed to load employees for metrics", err)
	}
	return BuildMetrics(rows), nil
}

var csvHeader = []string{
	"code", "name", "cpf", "status", "registration_number",
	"unit_code", "unit_name", "department_code", "department_name",
	"job_title_code", "job_title_name", "email", "phone",
}

// ExportCSV renders the filtered employee list as CSV rows, header first.
func (s *Service) ExportCSV(companyCode int64, filters ListFilters) ([][]string, error) {
	filters.Limit = 0
	filters.Offset = 0

	rows, err := s.repo.ListAll(companyCode)
	if err != nil {
		return nil, internal.NewInternalError("failed to load employees for export", err)
	}

	records := [][]string{csvHeader}
	for _, e := range rows {
		if filters.Status != "" && e.Status != filters.Status {
			continue
		}
		records = append(records, []string{
			strconv.FormatInt(e.Code, 10),
			e.Name,
			e.CPF,
			e.Status,
			deref(e.RegistrationNumber),
			deref(e.UnitCode),
			deref(e.UnitName),
			deref(e.DepartmentCode),
			deref(e.DepartmentName),
			deref(e.JobTitleCode),
			deref(e.JobTitleName),
			deref(e.Email),
			deref(e.Phone),
		})
	}

	return records, nil
}
