package postgres

import (
	"gorm.io/gorm"

	"github.com/fbarbosa/hr-management/internal/absence"
	absencemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/absence"
	employeemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/employee"
)

type AbsenceRepository struct {
	db *gorm.DB
}

func NewAbsenceRepository(db *gorm.DB) absence.RepositoryAPI {
	return &AbsenceRepository{db: db}
}

func (r *AbsenceRepository) Create(a *absencemodel.Absence) error {
	return r.db.Create(a).Error
}

func (r *AbsenceRepository) GetByID(companyCode, id int64) (*absencemodel.Absence, error) {
	var a absencemodel.Absence
	err := r.db.Where("company_code = ? AND id = ?", companyCode, id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AbsenceRepository) List(companyCode int64, filters absence.ListFilters) ([]*absencemodel.Absence, int64, error) {
	query := r.db.Model(&absencemodel.Absence{}).Where("company_code = ?", companyCode)

	if filters.EmployeeID > 0 {
		query = query.Where("employee_id = ?", filters.EmployeeID)
	}
	if filters.TypeID > 0 {
		query = query.Where("type_id = ?", filters.TypeID)
	}
	if filters.Period.From != nil {
		query = query.Where("start_date >= ?", *filters.Period.From)
	}
	if filters.Period.To != nil {
		query = query.Where("end_date <= ?", *filters.Period.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var absences []*absencemodel.Absence
	err := query.
		Order("start_date DESC, id DESC").
		Limit(filters.Limit).
		Offset(filters.Offset).
		Find(&absences).Error
	if err != nil {
		return nil, 0, err
	}

	return absences, total, nil
}

func (r *AbsenceRepository) Update(a *absencemodel.Absence) error {
	return r.db.Save(a).Error
}

func (r *AbsenceRepository) Delete(companyCode, id int64) error {
	return r.db.
		Where("company_code = ? AND id = ?", companyCode, id).
		Delete(&absencemodel.Absence{}).Error
}

func (r *AbsenceRepository) ListForMetrics(companyCode int64, period absence.PeriodFilter) ([]absence.MetricsRow, error) {
	query := `SELECT a.id, a.employee_id, e.code AS employee_code, e.name AS employee_name,
	                 e.department_code, e.department_name, t.name AS type_name,
	                 a.start_date, a.end_date
	          FROM absences a
	          JOIN employees e ON e.id = a.employee_id
	          JOIN absence_types t ON t.id = a.type_id
	          WHERE a.company_code = ?`
	args := []interface{}{companyCode}

	if period.From != nil {
		query += " AND a.start_date >= ?"
		args = append(args, *period.From)
	}
	if period.To != nil {
		query += " AND a.end_date <= ?"
		args = append(args, *period.To)
	}
	query += " ORDER BY a.start_date DESC, a.id DESC"

	var rows []absence.MetricsRow
	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AbsenceRepository) CountActiveEmployees(companyCode int64) (int64, error) {
	var count int64
	err := r.db.Model(&employeemodel.Employee{}).
		Where("company_code = ? AND status = ?", companyCode, "ACTIVE").
		Count(&count).Error
	return count, err
}

func (r *AbsenceRepository) EmployeeExists(companyCode, employeeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&employeemodel.Employee{}).
		Where("company_code = ? AND id = ?", companyCode, employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *AbsenceRepository) TypeExists(typeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&absencemodel.AbsenceType{}).
		Where("id = ?", typeID).
		Count(&count).Error
	return count > 0, err
}

func (r *AbsenceRepository) ListTypes() ([]*absencemodel.AbsenceType, error) {
	var types []*absencemodel.AbsenceType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}
