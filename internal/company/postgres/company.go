package postgres

import (
	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal/company"
	companymodel "github.com/fbarbosa/hr-management/internal/core/datamodel/company"
	usermodel "github.com/fbarbosa/hr-management/internal/core/datamodel/user"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.RepositoryAPI {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(c *companymodel.Company) error {
	return r.db.Create(c).Error
}

func (r *CompanyRepository) GetByCode(code int64) (*companymodel.Company, error) {
	var c companymodel.Company
	err := r.db.Where("code = ?", code).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) GetByCNPJ(cnpj string) (*companymodel.Company, error) {
	var c companymodel.Company
	err := r.db.Where("cnpj = ?", cnpj).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) List(filters company.ListFilters) ([]*companymodel.Company, int64, error) {
	query := r.db.Model(&companymodel.Company{})

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("short_name LIKE ? OR legal_name LIKE ? OR cnpj LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []*companymodel.Company
	err := query.
		Order("short_name ASC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

func (r *CompanyRepository) Update(c *companymodel.Company) error {
	return r.db.Save(c).Error
}

func (r *CompanyRepository) Deactivate(code int64) error {
	return r.db.Model(&companymodel.Company{}).
		Where("code = ?", code).
		Update("is_active", false).Error
}

func (r *CompanyRepository) UserExists(userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).
		Where("id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *CompanyRepository) HasGrant(userID, companyCode int64) (bool, error) {
	var count int64
	err := r.db.Model(&usermodel.CompanyGrant{}).
		Where("user_id = ? AND company_code = ?", userID, companyCode).
		Count(&count).Error
	return count > 0, err
}

func (r *CompanyRepository) CreateGrant(grant *usermodel.CompanyGrant) error {
	return r.db.Create(grant).Error
}

func (r *CompanyRepository) DeleteGrant(userID, companyCode int64) error {
	return r.db.
		Where("user_id = ? AND company_code = ?", userID, companyCode).
		Delete(&usermodel.CompanyGrant{}).Error
}

func (r *CompanyRepository) ListGrants(companyCode int64) ([]company.GrantInfo, error) {
	var grants []company.GrantInfo
	query := `SELECT g.user_id, u.email, u.name, g.granted_by, g.granted_at
	          FROM company_grants g
	          JOIN users u ON u.id = g.user_id
	          WHERE g.company_code = ?
	          ORDER BY g.granted_at DESC`

	if err := r.db.Raw(query, companyCode).Scan(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}
