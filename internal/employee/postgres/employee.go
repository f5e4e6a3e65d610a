package postgres

import (
	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal/employee"
	employeemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/employee"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(e *employeemodel.Employee) error {
	return r.db.Create(e).Error
}

func (r *EmployeeRepository) GetByID(companyCode, id int64) (*employeemodel.Employee, error) {
	var e employeemodel.Employee
	err := r.db.Where("company_code = ? AND id = ?", companyCode, id).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByCode(companyCode, code int64) (*employeemodel.Employee, error) {
	var e employeemodel.Employee
	err := r.db.Where("company_code = ? AND code = ?", companyCode, code).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) List(companyCode int64, filters employee.ListFilters) ([]*employeemodel.Employee, int64, error) {
	query := r.db.Model(&employeemodel.Employee{}).Where("company_code = ?", companyCode)

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("name LIKE ? OR cpf LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*employeemodel.Employee
	err := query.
		Order("name ASC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *EmployeeRepository) ListAll(companyCode int64) ([]*employeemodel.Employee, error) {
	var employees []*employeemodel.Employee
	err := r.db.
		Where("company_code = ?", companyCode).
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Update(e *employeemodel.Employee) error {
	return r.db.Save(e).Error
}

func (r *EmployeeRepository) Delete(companyCode, id int64) error {
	return r.db.
		Where("company_code = ? AND id = ?", companyCode, id).
		Delete(&employeemodel.Employee{}).Error
}
