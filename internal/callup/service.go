package callup

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal"
	callupmodel "github.com/fbarbosa/hr-management/internal/core/datamodel/callup"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) CreateCallUp(companyCode int64, createdBy *int64, dto *CreateCallUpDTO) (*callupmodel.CallUp, error) {
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
		return nil, internal.NewInternalError("failed to check call-up type", err)
	}
	if !typeExists {
		return nil, internal.NewValidationFieldError("type_id", "unknown call-up type", internal.ErrCodeValidationFailed)
	}

	c := dto.ToModel(companyCode, createdBy)
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create call-up", "company_code", companyCode, "employee_id", dto.EmployeeID, "error", err)
		return nil, internal.NewInternalError("failed to create call-up", err)
	}

	s.logger.Info("call-up created", "company_code", companyCode, "callup_id", c.ID)
	return c, nil
}

func (s *Service) GetCallUp(companyCode, id int64) (*callupmodel.CallUp, error) {
	c, err := s.repo.GetByID(companyCode, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCallUpNotFound
		}
		return nil, internal.NewInternalError("failed to load call-up", err)
	}
	return c, nil
}

func (s *Service) ListCallUps(companyCode int64, filters ListFilters) (*ListResult, error) {
	if filters.Limit < 1 || filters.Limit > 100 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	callups, total, err := s.repo.List(companyCode, filters)
	if err != nil {
		return nil, internal.NewInternalError("failed to list call-ups", err)
	}

	return &ListResult{
		CallUps: callups,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

func (s *Service) UpdateCallUp(companyCode, id int64, dto *UpdateCallUpDTO) (*callupmodel.CallUp, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.GetCallUp(companyCode, id)
	if err != nil {
		return nil, err
	}

	if dto.TypeID != nil {
		typeExists, err := s.repo.TypeExists(*dto.TypeID)
		if err != nil {
			return nil, internal.NewInternalError("failed to check call-up type", err)
		}
		if !typeExists {
			return nil, internal.NewValidationFieldError("type_id", "unknown call-up type", internal.ErrCodeValidationFailed)
		}
	}

	dto.ApplyTo(c)
	if c.ResponseDeadline.Before(c.CallUpDate) {
		return nil, internal.NewValidationFieldError("response_deadline", "response_deadline cannot be before callup_date", internal.ErrCodeInvalidDate)
	}

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update call-up", "callup_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update call-up", err)
	}

	return c, nil
}

// RespondCallUp marks a call-up answered. The response date defaults to
// now when the caller does not supply one.
func (s *Service) RespondCallUp(companyCode, id int64, dto *RespondCallUpDTO) (*callupmodel.CallUp, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.GetCallUp(companyCode, id)
	if err != nil {
		return nil, err
	}

	if c.Responded {
		return nil, internal.NewConflictError("call-up has already been responded", internal.ErrCodeValidationFailed)
	}

	responseDate := s.now().UTC()
	if dto.ResponseDate != nil {
		parsed, _ := time.Parse(dateLayout, *dto.ResponseDate)
		responseDate = parsed
	}

	c.Responded = true
	c.Response = dto.Response
	c.ResponseDate = &responseDate

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to record call-up response", "callup_id", id, "error", err)
		return nil, internal.NewInternalError("failed to record call-up response", err)
	}

	s.logger.Info("call-up responded", "callup_id", id, "response", dto.Response)
	return c, nil
}

func (s *Service) DeleteCallUp(companyCode, id int64) error {
	if _, err := s.GetCallUp(companyCode, id); err != nil {
		return err
	}

	if err := s.repo.Delete(companyCode, id); err != nil {
		s.logger.Error("failed to delete call-up", "callup_id", id, "error", err)
		return internal.NewInternalError("failed to delete call-up", err)
	}
	return nil
}

func (s *Service) Metrics(companyCode int64) (*Metrics, error) {
	rows, err := s.repo.ListForMetrics(companyCode)
	if err != nil {
		return nil, internal.NewInternalError("failed to load call-ups for metrics", err)
	}
	return BuildMetrics(rows, s.now()), nil
}

var csvHeader = []string{
	"id", "responded", "response", "response_date", "response_deadline",
	"unit_code", "unit_name",
}

func (s *Service) ExportCSV(companyCode int64) ([][]string, error) {
	rows, err := s.repo.ListForMetrics(companyCode)
	if err != nil {
		return nil, internal.NewInternalError("failed to load call-ups for export", err)
	}

	records := [][]string{csvHeader}
	for _, row := range rows {
		responseDate := ""
		if row.ResponseDate != nil {
			responseDate = row.ResponseDate.Format(dateLayout)
		}
		records = append(records, []string{
			strconv.FormatInt(row.ID, 10),
			strconv.FormatBool(row.Responded),
			row.Response,
			responseDate,
			row.ResponseDeadline.Format(dateLayout),
			strOrEmpty(row.UnitCode),
			strOrEmpty(row.UnitName),
		})
	}

	return records, nil
}

func (s *Service) ListTypes() ([]*callupmodel.CallUpType, error) {
	types, err := s.repo.ListTypes()
	if err != nil {
		return nil, internal.NewInternalError("failed to list call-up types", err)
	}
	return types, nil
}
