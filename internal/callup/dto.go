package callup

import (
	"time"

	"github.com/fbarbosa/hr-management/internal"
	callupmodel "github.com/fbarbosa/hr-management/internal/core/datamodel/callup"
)

const dateLayout = "2006-01-02"

type CreateCallUpDTO struct {
	EmployeeID       int64   `json:"employee_id"`
	TypeID           int64   `json:"type_id"`
	CallUpDate       string  `json:"callup_date"`
	ResponseDeadline string  `json:"response_deadline"`
	Notes            *string `json:"notes,omitempty"`
}

type UpdateCallUpDTO struct {
	TypeID           *int64  `json:"type_id,omitempty"`
	CallUpDate       *string `json:"callup_date,omitempty"`
	ResponseDeadline *string `json:"response_deadline,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

type RespondCallUpDTO struct {
	Response     string  `json:"response"`
	ResponseDate *string `json:"response_date,omitempty"`
}

func (dto *CreateCallUpDTO) Validate() error {
	var fields []internal.ValidationError

	if dto.EmployeeID <= 0 {
		fields = append(fields, fieldError("employee_id", "employee_id is required"))
	}
	if dto.TypeID <= 0 {
		fields = append(fields, fieldError("type_id", "type_id is required"))
	}

	callUpDate, callUpErr := time.Parse(dateLayout, dto.CallUpDate)
	if callUpErr != nil {
		fields = append(fields, fieldError("callup_date", "callup_date must be formatted as YYYY-MM-DD"))
	}
	deadline, deadlineErr := time.Parse(dateLayout, dto.ResponseDeadline)
	if deadlineErr != nil {
		fields = append(fields, fieldError("response_deadline", "response_deadline must be formatted as YYYY-MM-DD"))
	}
	if callUpErr == nil && deadlineErr == nil && deadline.Before(callUpDate) {
		fields = append(fields, fieldError("response_deadline", "response_deadline cannot be before callup_date"))
	}

	if len(fields) > 0 {
		return internal.NewValidationError("call-up rejected", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fields})
	}
	return nil
}

func (dto *UpdateCallUpDTO) Validate() error {
	var fields []internal.ValidationError

	if dto.TypeID != nil && *dto.TypeID <= 0 {
		fields = append(fields, fieldError("type_id", "type_id must be positive"))
	}
	if dto.CallUpDate != nil {
		if _, err := time.Parse(dateLayout, *dto.CallUpDate); err != nil {
			fields = append(fields, fieldError("callup_date", "callup_date must be formatted as YYYY-MM-DD"))
		}
	}
	if dto.ResponseDeadline != nil {
		if _, err := time.Parse(dateLayout, *dto.ResponseDeadline); err != nil {
			fields = append(fields, fieldError("response_deadline", "response_deadline must be formatted as YYYY-MM-DD"))
		}
	}

	if len(fields) > 0 {
		return internal.NewValidationError("call-up rejected", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fields})
	}
	return nil
}

func (dto *RespondCallUpDTO) Validate() error {
	var fields []internal.ValidationError

	if dto.Response != ResponseAccepted && dto.Response != ResponseRefused {
		fields = append(fields, fieldError("response", "response must be ACCEPTED or REFUSED"))
	}
	if dto.ResponseDate != nil {
		if _, err := time.Parse(dateLayout, *dto.ResponseDate); err != nil {
			fields = append(fields, fieldError("response_date", "response_date must be formatted as YYYY-MM-DD"))
		}
	}

	if len(fields) > 0 {
		return internal.NewValidationError("call-up response rejected", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fields})
	}
	return nil
}

func (dto *CreateCallUpDTO) ToModel(companyCode int64, createdBy *int64) *callupmodel.CallUp {
	callUpDate, _ := time.Parse(dateLayout, dto.CallUpDate)
	deadline, _ := time.Parse(dateLayout, dto.ResponseDeadline)

	return &callupmodel.CallUp{
		CompanyCode:      companyCode,
		EmployeeID:       dto.EmployeeID,
		TypeID:           dto.TypeID,
		CallUpDate:       callUpDate,
		ResponseDeadline: deadline,
		Responded:        false,
		Response:         ResponsePending,
		Notes:            dto.Notes,
		CreatedBy:        createdBy,
	}
}

func (dto *UpdateCallUpDTO) ApplyTo(c *callupmodel.CallUp) {
	if dto.TypeID != nil {
		c.TypeID = *dto.TypeID
	}
	if dto.CallUpDate != nil {
		callUpDate, _ := time.Parse(dateLayout, *dto.CallUpDate)
		c.CallUpDate = callUpDate
	}
	if dto.ResponseDeadline != nil {
		deadline, _ := time.Parse(dateLayout, *dto.ResponseDeadline)
		c.ResponseDeadline = deadline
	}
	if dto.Notes != nil {
		c.Notes = dto.Notes
	}
}

func fieldError(field, message string) internal.ValidationError {
	return internal.ValidationError{
		Field:   field,
		Message: message,
		Code:    string(internal.ErrCodeValidationFailed),
	}
}
