package company

import (
	"time"

	companymodel "github.com/fbarbosa/hr-management/internal/core/datamodel/company"
	usermodel "github.com/fbarbosa/hr-management/internal/core/datamodel/user"
)

type ListFilters struct {
	Search string
	Limit  int
	Offset int
}

// GrantInfo is a company grant joined with the grantee for listing.
type GrantInfo struct {
	UserID    int64     `json:"user_id" gorm:"column:user_id"`
	Email     string    `json:"email" gorm:"column:email"`
	Name      string    `json:"name" gorm:"column:name"`
	GrantedBy *int64    `json:"granted_by,omitempty" gorm:"column:granted_by"`
	GrantedAt time.Time `json:"granted_at" gorm:"column:granted_at"`
}

type RepositoryAPI interface {
	Create(c *companymodel.Company) error
	GetByCode(code int64) (*companymodel.Company, error)
	GetByCNPJ(cnpj string) (*companymodel.Company, error)
	List(filters ListFilters) ([]*companymodel.Company, int64, error)
	Update(c *companymodel.Company) error
	Deactivate(code int64) error
	UserExists(userID int64) (bool, error)
	HasGrant(userID, companyCode int64) (bool, error)
	CreateGrant(grant *usermodel.CompanyGrant) error
	DeleteGrant(userID, companyCode int64) error
	ListGrants(companyCode int64) ([]GrantInfo, error)
}

type ServiceAPI interface {
	CreateCompany(dto *CreateCompanyDTO) (*companymodel.Company, error)
	GetCompany(code int64) (*companymodel.Company, error)
	ListCompanies(filters ListFilters) (*ListResult, error)
	UpdateCompany(code int64, dto *UpdateCompanyDTO) (*companymodel.Company, error)
	DeactivateCompany(code int64) error
	GrantAccess(companyCode, userID int64, grantedBy *int64) error
	RevokeAccess(companyCode, userID int64) error
	ListGrants(companyCode int64) ([]GrantInfo, error)
}

type ListResult struct {
	Companies []*companymodel.Company `json:"companies"`
	Total     int64                   `json:"total"`
	Limit     int                     `json:"limit"`
	Offset    int                     `json:"offset"`
}
