package absence

import (
	"time"

	"github.com/fbarbosa/hr-management/internal"
	absencemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/absence"
)

const dateLayout = "2006-01-02"

type CreateAbsenceDTO struct {
	EmployeeID     int64   `json:"employee_id"`
	TypeID         int64   `json:"type_id"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Justification  *string `json:"justification,omitempty"`
	HasCertificate bool    `json:"has_certificate"`
}

type UpdateAbsenceDTO struct {
	TypeID         *int64  `json:"type_id,omitempty"`
	StartDate      *string `json:"start_date,omitempty"`
	EndDate        *string `json:"end_date,omitempty"`
	Justification  *string `json:"justification,omitempty"`
	HasCertificate *bool   `json:"has_certificate,omitempty"`
}

func (dto *CreateAbsenceDTO) Validate() error {
	var fields []internal.ValidationError

	if dto.EmployeeID <= 0 {
		fields = append(fields, fieldError("employee_id", "employee_id is required"))
	}
	if dto.TypeID <= 0 {
		fields = append(fields, fieldError("type_id", "type_id is required"))
	}

	start, startErr := time.Parse(dateLayout, dto.StartDate)
	if startErr != nil {
		fields = append(fields, fieldError("start_date", "start_date must be formatted as YYYY-MM-DD"))
	}
	end, endErr := time.Parse(dateLayout, dto.EndDate)
	if endErr != nil {
		fields = append(fields, fieldError("end_date", "end_date must be formatted as YYYY-MM-DD"))
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		fields = append(fields, fieldError("end_date", "end_date cannot be before start_date"))
	}

	if len(fields) > 0 {
		return internal.NewValidationError("absence rejected", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fields})
	}
	return nil
}

func (dto *UpdateAbsenceDTO) Validate() error {
	var fields []internal.ValidationError

	if dto.TypeID != nil && *dto.TypeID <= 0 {
		fields = append(fields, fieldError("type_id", "type_id must be positive"))
	}
	if dto.StartDate != nil {
		if _, err := time.Parse(dateLayout, *dto.StartDate); err != nil {
			fields = append(fields, fieldError("start_date", "start_date must be formatted as YYYY-MM-DD"))
		}
	}
	if dto.EndDate != nil {
		if _, err := time.Parse(dateLayout, *dto.EndDate); err != nil {
			fields = append(fields, fieldError("end_date", "end_date must be formatted as YYYY-MM-DD"))
		}
	}

	if len(fields) > 0 {
		return internal.NewValidationError("absence rejected", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fields})
	}
	return nil
}

func (dto *CreateAbsenceDTO) ToModel(companyCode int64, createdBy *int64) *absencemodel.Absence {
	start, _ := time.Parse(dateLayout, dto.StartDate)
	end, _ := time.Parse(dateLayout, dto.EndDate)

	return &absencemodel.Absence{
		CompanyCode:    companyCode,
		EmployeeID:     dto.EmployeeID,
		TypeID:         dto.TypeID,
		StartDate:      start,
		EndDate:        end,
		Justification:  dto.Justification,
		HasCertificate: dto.HasCertificate,
		CreatedBy:      createdBy,
	}
}

// ApplyTo mutates only the fields the caller sent. Dates were already
// validated, so parse failures cannot happen here.
func (dto *UpdateAbsenceDTO) ApplyTo(a *absencemodel.Absence) {
	if dto.TypeID != nil {
		a.TypeID = *dto.TypeID
	}
	if dto.StartDate != nil {
		start, _ := time.Parse(dateLayout, *dto.StartDate)
		a.StartDate = start
	}
	if dto.EndDate != nil {
		end, _ := time.Parse(dateLayout, *dto.EndDate)
		a.EndDate = end
	}
	if dto.Justification != nil {
		a.Justification = dto.Justification
	}
	if dto.HasCertificate != nil {
		a.HasCertificate = *dto.HasCertificate
	}
}

// ParsePeriod reads optional period_from/period_to query values.
func ParsePeriod(from, to string) (PeriodFilter, error) {
	var period PeriodFilter

	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return period, internal.NewValidationFieldError("period_from", "period_from must be formatted as YYYY-MM-DD", internal.ErrCodeInvalidPeriod)
		}
		period.From = &t
	}
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return period, internal.NewValidationFieldError("period_to", "period_to must be formatted as YYYY-MM-DD", internal.ErrCodeInvalidPeriod)
		}
		period.To = &t
	}
	if period.From != nil && period.To != nil && period.To.Before(*period.From) {
		return period, internal.NewValidationFieldError("period_to", "period_to cannot be before period_from", internal.ErrCodeInvalidPeriod)
	}

	return period, nil
}

func fieldError(field, message string) internal.ValidationError {
	return internal.ValidationError{
		Field:   field,
		Message: message,
		Code:    string(internal.ErrCodeValidationFailed),
	}
}
