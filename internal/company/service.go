package company

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal"
	companymodel "github.com/fbarbosa/hr-management/internal/core/datamodel/company"
	usermodel "github.com/fbarbosa/hr-management/internal/core/datamodel/user"
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

func (s *Service) CreateCompany(dto *CreateCompanyDTO) (*companymodel.Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(dto.Code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to check company code", err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("a company with this code already exists", internal.ErrCodeDuplicateCompany)
	}

	byCNPJ, err := s.repo.GetByCNPJ(dto.CNPJ)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal.NewInternalError("failed to check company cnpj", err)
	}
	if byCNPJ != nil {
		return nil, internal.NewConflictError("a company with this CNPJ already exists", internal.ErrCodeDuplicateCompany)
	}

	c := dto.ToModel()
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create company", "code", dto.Code, "error", err)
		return nil, internal.NewInternalError("failed to create company", err)
	}

	s.logger.Info("company created", "code", c.Code)
	return c, nil
}

func (s *Service) GetCompany(code int64) (*companymodel.Company, error) {
	c, err := s.repo.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrCompanyNotFound
		}
		return nil, internal.NewInternalError("failed to load company", err)
	}
	return c, nil
}

func (s *Service) ListCompanies(filters ListFilters) (*ListResult, error) {
	if filters.Limit < 1 || filters.Limit > 100 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	companies, total, err := s.repo.List(filters)
	if err != nil {
		return nil, internal.NewInternalError("failed to list companies", err)
	}

	return &ListResult{
		Companies: companies,
		Total:     total,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	}, nil
}

func (s *Service) UpdateCompany(code int64, dto *UpdateCompanyDTO) (*companymodel.Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.GetCompany(code)
	if err != nil {
		return nil, err
	}

	dto.ApplyTo(c)
	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update company", "code", code, "error", err)
		return nil, internal.NewInternalError("failed to update company", err)
	}

	return c, nil
}

// DeactivateCompany soft-deletes: the code stays reserved forever.
func (s *Service) DeactivateCompany(code int64) error {
	if _, err := s.GetCompany(code); err != nil {
		return err
	}

	if err := s.repo.Deactivate(code); err != nil {
		s.logger.Error("failed to deactivate company", "code", code, "error", err)
		return internal.NewInternalError("failed to deactivate company", err)
	}

	s.logger.Info("company deactivated", "code", code)
	return nil
}

// GrantAccess is idempotent: granting an already granted pair is a
// no-op, never a duplicate row.
func (s *Service) GrantAccess(companyCode, userID int64, grantedBy *int64) error {
	if _, err := s.GetCompany(companyCode); err != nil {
		return err
	}

	userExists, err := s.repo.UserExists(userID)
	if err != nil {
		return internal.NewInternalError("failed to check user", err)
	}
	if !userExists {
		return internal.ErrUserNotFound
	}

	granted, err := s.repo.HasGrant(userID, companyCode)
	if err != nil {
		return internal.NewInternalError("failed to check company grant", err)
	}
	if granted {
		return nil
	}

	grant := &usermodel.CompanyGrant{
		UserID:      userID,
		CompanyCode: companyCode,
		GrantedBy:   grantedBy,
	}
	if err := s.repo.CreateGrant(grant); err != nil {
		s.logger.Error("failed to create company grant", "company_code", companyCode, "user_id", userID, "error", err)
		return internal.NewInternalError("failed to create company grant", err)
	}

	s.logger.Info("company access granted", "company_code", companyCode, "user_id", userID)
	return nil
}

func (s *Service) RevokeAccess(companyCode, userID int64) error {
	if _, err := s.GetCompany(companyCode); err != nil {
		return err
	}

	if err := s.repo.DeleteGrant(userID, companyCode); err != nil {
		s.logger.Error("failed to revoke company grant", "company_code", companyCode, "user_id", userID, "error", err)
		return internal.NewInternalError("failed to revoke company grant", err)
	}

	s.logger.Info("company access revoked", "company_code", companyCode, "user_id", userID)
	return nil
}

func (s *Service) ListGrants(companyCode int64) ([]GrantInfo, error) {
	if _, err := s.GetCompany(companyCode); err != nil {
		return nil, err
	}

	grants, err := s.repo.ListGrants(companyCode)
	if err != nil {
		return nil, internal.NewInternalError("failed to list company grants", err)
	}
	return grants, nil
}
