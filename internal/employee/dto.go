package employee

import (
	"strings"
	"time"

	"github.com/fbarbosa/hr-management/internal"
	employeemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/employee"
)

const dateLayout = "2006-01-02"

// CreateEmployeeDTO accepts date fields as YYYY-MM-DD strings.
type CreateEmployeeDTO struct {
	Code               int64   `json:"code"`
	Name               string  `json:"name"`
	CPF                string  `json:"cpf"`
	Status             string  `json:"status"`
	BirthDate          *string `json:"birth_date,omitempty"`
	Gender             *int    `json:"gender,omitempty"`
	MaritalStatus      *int    `json:"marital_status,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	HireDate           *string `json:"hire_date,omitempty"`
	TerminationDate    *string `json:"termination_date,omitempty"`
	UnitCode           *string `json:"unit_code,omitempty"`
	UnitName           *string `json:"unit_name,omitempty"`
	DepartmentCode     *string `json:"department_code,omitempty"`
	DepartmentName     *string `json:"department_name,omitempty"`
	JobTitleCode       *string `json:"job_title_code,omitempty"`
	JobTitleName       *string `json:"job_title_name,omitempty"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
}

type UpdateEmployeeDTO struct {
	Name               *string `json:"name,omitempty"`
	Status             *string `json:"status,omitempty"`
	BirthDate          *string `json:"birth_date,omitempty"`
	Gender             *int    `json:"gender,omitempty"`
	MaritalStatus      *int    `json:"marital_status,omitempty"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	HireDate           *string `json:"hire_date,omitempty"`
	TerminationDate    *string `json:"termination_date,omitempty"`
	UnitCode           *string `json:"unit_code,omitempty"`
	UnitName           *string `json:"unit_name,omitempty"`
	DepartmentCode     *string `json:"department_code,omitempty"`
	DepartmentName     *string `json:"department_name,omitempty"`
	JobTitleCode       *string `json:"job_title_code,omitempty"`
	JobTitleName       *string `json:"job_title_name,omitempty"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
}

func (dto *CreateEmployeeDTO) Validate() error {
	var fields []internal.ValidationError

	if dto.Code <= 0 {
		fields = appendFieldError(fields, "code", "code must be a positive integer")
	}
	if strings.TrimSpace(dto.Name) == "" {
		fields = appendFieldError(fields, "name", "name is required")
	}
	if strings.TrimSpace(dto.CPF) == "" {
		fields = appendFieldError(fields, "cpf", "cpf is required")
	}
	if !IsValidStatus(dto.Status) {
		fields = appendFieldError(fields, "status", "status must be one of ACTIVE, INACTIVE, ON_LEAVE, SUSPENDED")
	}
	for _, d := range []struct {
		field string
		value *string
	}{
		{"birth_date", dto.BirthDate},
		{"hire_date", dto.HireDate},
		{"termination_date", dto.TerminationDate},
	} {
		if d.value != nil {
			if _, err := time.Parse(dateLayout, *d.value); err != nil {
				fields = appendFieldError(fields, d.field, d.field+" must be formatted as YYYY-MM-DD")
			}
		}
	}

	if len(fields) > 0 {
		return internal.NewValidationError("employee rejected", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fields})
	}
	return nil
}

func (dto *UpdateEmployeeDTO) Validate() error {
	var fields []internal.ValidationError

	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		fields = appendFieldError(fields, "name", "name cannot be empty")
	}
	if dto.Status != nil && !IsValidStatus(*dto.Status) {
		fields = appendFieldError(fields, "status", "status must be one of ACTIVE, INACTIVE, ON_LEAVE, SUSPENDED")
	}
	for _, d := range []struct {
		field string
		value *string
	}{
		{"birth_date", dto.BirthDate},
		{"hire_date", dto.HireDate},
		{"termination_date", dto.TerminationDate},
	} {
		if d.value != nil {
			if _, err := time.Parse(dateLayout, *d.value); err != nil {
				fields = appendFieldError(fields, d.field, d.field+" must be formatted as YYYY-MM-DD")
			}
		}
	}

	if len(fields) > 0 {
		return internal.NewValidationError("employee rejected", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fields})
	}
	return nil
}

// ToModel builds a data row for the given company.
func (dto *CreateEmployeeDTO) ToModel(companyCode int64) *employeemodel.Employee {
	return &employeemodel.Employee{
		CompanyCode:        companyCode,
		Code:               dto.Code,
		Name:               dto.Name,
		CPF:                dto.CPF,
		Status:             dto.Status,
		BirthDate:          parseDatePtr(dto.BirthDate),
		Gender:             dto.Gender,
		MaritalStatus:      dto.MaritalStatus,
		RegistrationNumber: dto.RegistrationNumber,
		HireDate:           parseDatePtr(dto.HireDate),
		TerminationDate:    parseDatePtr(dto.TerminationDate),
		UnitCode:           dto.UnitCode,
		UnitName:           dto.UnitName,
		DepartmentCode:     dto.DepartmentCode,
		DepartmentName:     dto.DepartmentName,
		JobTitleCode:       dto.JobTitleCode,
		JobTitleName:       dto.JobTitleName,
		Email:              dto.Email,
		Phone:              dto.Phone,
	}
}

// ApplyTo mutates only the fields the caller sent.
func (dto *UpdateEmployeeDTO) ApplyTo(e *employeemodel.Employee) {
	if dto.Name != nil {
		e.Name = *dto.Name
	}
	if dto.Status != nil {
		e.Status = *dto.Status
	}
	if dto.BirthDate != nil {
		e.BirthDate = parseDatePtr(dto.BirthDate)
	}
	if dto.Gender != nil {
		e.Gender = dto.Gender
	}
	if dto.MaritalStatus != nil {
		e.MaritalStatus = dto.MaritalStatus
	}
	if dto.RegistrationNumber != nil {
		e.RegistrationNumber = dto.RegistrationNumber
	}
	if dto.HireDate != nil {
		e.HireDate = parseDatePtr(dto.HireDate)
	}
	if dto.TerminationDate != nil {
		e.TerminationDate = parseDatePtr(dto.TerminationDate)
	}
	if dto.UnitCode != nil {
		e.UnitCode = dto.UnitCode
	}
	if dto.UnitName != nil {
		e.UnitName = dto.UnitName
	}
	if dto.DepartmentCode != nil {
		e.DepartmentCode = dto.DepartmentCode
	}
	if dto.DepartmentName != nil {
		e.DepartmentName = dto.DepartmentName
	}
	if dto.JobTitleCode != nil {
		e.JobTitleCode = dto.JobTitleCode
	}
	if dto.JobTitleName != nil {
		e.JobTitleName = dto.JobTitleName
	}
	if dto.Email != nil {
		e.Email = dto.Email
	}
	if dto.Phone != nil {
		e.Phone = dto.Phone
	}
}

func appendFieldError(fields []internal.ValidationError, field, message string) []internal.ValidationError {
	return append(fields, internal.ValidationError{
		Field:   field,
		Message: message,
		Code:    string(internal.ErrCodeValidationFailed),
	})
}

func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
