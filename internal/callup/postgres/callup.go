package postgres

import (
	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal/callup"
	callupmodel "github.com/fbarbosa/hr-management/internal/core/datamodel/callup"
	employeemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/employee"
)

type CallUpRepository struct {
	db *gorm.DB
}

func NewCallUpRepository(db *gorm.DB) callup.RepositoryAPI {
	return &CallUpRepository{db: db}
}

func (r *CallUpRepository) Create(c *callupmodel.CallUp) error {
	return r.db.Create(c).Error
}

func (r *CallUpRepository) GetByID(companyCode, id int64) (*callupmodel.CallUp, error) {
	var c callupmodel.CallUp
	err := r.db.Where("company_code = ? AND id = ?", companyCode, id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CallUpRepository) List(companyCode int64, filters callup.ListFilters) ([]*callupmodel.CallUp, int64, error) {
	query := r.db.Model(&callupmodel.CallUp{}).Where("company_code = ?", companyCode)

	if filters.EmployeeID > 0 {
		query = query.Where("employee_id = ?", filters.EmployeeID)
	}
	if filters.TypeID > 0 {
		query = query.Where("type_id = ?", filters.TypeID)
	}
	if filters.Responded != nil {
		query = query.Where("responded = ?", *filters.Responded)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var callups []*callupmodel.CallUp
	err := query.
		Order("callup_date DESC, id DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&callups).Error
	if err != nil {
		return nil, 0, err
	}

	return callups, total, nil
}

func (r *CallUpRepository) Update(c *callupmodel.CallUp) error {
	return r.db.Save(c).Error
}

func (r *CallUpRepository) Delete(companyCode, id int64) error {
	return r.db.
		Where("company_code = ? AND id = ?", companyCode, id).
		Delete(&callupmodel.CallUp{}).Error
}

func (r *CallUpRepository) ListForMetrics(companyCode int64) ([]callup.MetricsRow, error) {
	query := `SELECT c.id, c.responded, c.response, c.response_date, c.response_deadline,
	                 e.unit_code, e.unit_name
	          FROM callups c
	          JOIN employees e ON e.id = c.employee_id
	          WHERE c.company_code = ?
	          ORDER BY c.callup_date DESC, c.id DESC`

	var rows []callup.MetricsRow
	if err := r.db.Raw(query, companyCode).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CallUpRepository) EmployeeExists(companyCode, employeeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&employeemodel.Employee{}).
		Where("company_code = ? AND id = ?", companyCode, employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *CallUpRepository) TypeExists(typeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&callupmodel.CallUpType{}).
		Where("id = ?", typeID).
		Count(&count).Error
	return count > 0, err
}

func (r *CallUpRepository) ListTypes() ([]*callupmodel.CallUpType, error) {
	var types []*callupmodel.CallUpType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}
