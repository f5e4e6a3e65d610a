package absence

import (
	"errors"
	"log/slog"
	"strconv"

	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal"
	absencemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/absence"
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

func (s *Service) CreateAbsence(companyCode int64, createdBy *int64, dto *CreateAbsenceDTO) (*absencemodel.Absence, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmployeeExists(companyCode, dto.EmployeeID)
	if err != nil {
		return nil, internal.NewInternalError("failed to check employee", err)
	}
	if !exists {
		return nil, internal.ErrEmployeeNotFound
	}

	typeExists, err := s.repo.TypeExists(dto.TypeID)
	if err != nil {
		return nil, internal.NewInternalError("failed to check absence type", err)
	}
	if !typeExists {
		return nil, internal.NewValidationFieldError("type_id", "unknown absence type", internal.ErrCodeValidationFailed)
	}

	a := dto.ToModel(companyCode, createdBy)
	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create absence", "company_code", companyCode, "employee_id", dto.EmployeeID, "error", err)
		return nil, internal.NewInternalError("failed to create absence", err)
	}

	s.logger.Info("absence created", "company_code", companyCode, "absence_id", a.ID)
	return a, nil
}

func (s *Service) GetAbsence(companyCode, id int64) (*absencemodel.Absence, error) {
	a, err := s.repo.GetByID(companyCode, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAbsenceNotFound
		}
		return nil, internal.NewInternalError("failed to load absence", err)
	}
	return a, nil
}

func (s *Service) ListAbsences(companyCode int64, filters ListFilters) (*ListResult, error) {
	if filters.Limit < 1 || filters.Limit > 100 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	absences, total, err := s.repo.List(companyCode, filters)
	if err != nil {
		return nil, internal.NewInternalError("failed to list absences", err)
	}

	return &ListResult{
		Absences: absences,
		Total:    total,
		Limit:    filters.Limit,
		Offset:   filters.Offset,
	}, nil
}

func (s *Service) UpdateAbsence(companyCode, id int64, dto *UpdateAbsenceDTO) (*absencemodel.Absence, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.GetAbsence(companyCode, id)
	if err != nil {
		return nil, err
	}

	if dto.TypeID != nil {
		typeExists, err := s.repo.TypeExists(*dto.TypeID)
		if err != nil {
			return nil, internal.NewInternalError("failed to check absence type", err)
		}
		if !typeExists {
			return nil, internal.NewValidationFieldError("type_id", "unknown absence type", internal.ErrCodeValidationFailed)
		}
	}

	dto.ApplyTo(a)
	if a.EndDate.Before(a.StartDate) {
		return nil, internal.NewValidationFieldError("end_date", "end_date cannot be before start_date", internal.ErrCodeInvalidDate)
	}

	if err := s.repo.Update(a); err != nil {
		s.logger.Error("failed to update absence", "absence_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update absence", err)
	}

	return a, nil
}

func (s *Service) DeleteAbsence(companyCode, id int64) error {
	if _, err := s.GetAbsence(companyCode, id); err != nil {
		return err
	}

	if err := s.repo.Delete(companyCode, id); err != nil {
		s.logger.Error("failed to delete absence", "absence_id", id, "error", err)
		return internal.NewInternalError("failed to delete absence", err)
	}
	return nil
}

func (s *Service) Metrics(companyCode int64, period PeriodFilter) (*Metrics, error) {
	rows, err := s.repo.ListForMetrics(companyCode, period)
	if err != nil {
		return nil, internal.NewInternalError("failed to load absences for metrics", err)
	}

	active, err := s.repo.CountActiveEmployees(companyCode)
	if err != nil {
		return nil, internal.NewInternalError("failed to count active employees", err)
	}

	return BuildMetrics(rows, active), nil
}

var csvHeader = []string{
	"employee_code", "employee_name", "type", "start_date", "end_date", "days",
	"department_code", "department_name",
}

func (s *Service) ExportCSV(companyCode int64, period PeriodFilter) ([][]string, error) {
	rows, err := s.repo.ListForMetrics(companyCode, period)
	if err != nil {
		return nil, internal.NewInternalError("failed to load absences for export", err)
	}

	records := [][]string{csvHeader}
	for _, row := range rows {
		records = append(records, []string{
			strconv.FormatInt(row.EmployeeCode, 10),
			row.EmployeeName,
			row.TypeName,
			row.StartDate.Format(dateLayout),
			row.EndDate.Format(dateLayout),
			strconv.Itoa(inclusiveDays(row)),
			strOrEmpty(row.DepartmentCode),
			strOrEmpty(row.DepartmentName),
		})
	}

	return records, nil
}

func (s *Service) ListTypes() ([]*absencemodel.AbsenceType, error) {
	types, err := s.repo.ListTypes()
	if err != nil {
		return nil, internal.NewInternalError("failed to list absence types", err)
	}
	return types, nil
}
