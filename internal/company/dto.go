package company

import (
	"regexp"
	"strings"

	"github.com/fbarbosa/hr-management/internal"
	companymodel "github.com/fbarbosa/hr-management/internal/core/datamodel/company"
)

var (
	cnpjPattern       = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)
	postalCodePattern = regexp.MustCompile(`^\d{5}-\d{3}$`)
)

// Brazilian federative unit codes.
var validStates = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

type CreateCompanyDTO struct {
	Code       int64   `json:"code"`
	CNPJ       string  `json:"cnpj"`
	ShortName  string  `json:"short_name"`
	LegalName  string  `json:"legal_name"`
	Street     string  `json:"street"`
	Number     string  `json:"number"`
	Complement *string `json:"complement,omitempty"`
	District   string  `json:"district"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code"`
	State      string  `json:"state"`
}

type UpdateCompanyDTO struct {
	ShortName  *string `json:"short_name,omitempty"`
	LegalName  *string `json:"legal_name,omitempty"`
	Street     *string `json:"street,omitempty"`
	Number     *string `json:"number,omitempty"`
	Complement *string `json:"complement,omitempty"`
	District   *string `json:"district,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	State      *string `json:"state,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type GrantAccessDTO struct {
	UserID *int64 `json:"user_id"`
}

func (dto *CreateCompanyDTO) Validate() error {
	var fields []internal.ValidationError

	if dto.Code <= 0 {
		fields = append(fields, fieldError("code", "code must be a positive integer"))
	}
	if !cnpjPattern.MatchString(dto.CNPJ) {
		fields = append(fields, fieldError("cnpj", "cnpj must be formatted as XX.XXX.XXX/XXXX-XX"))
	}
	if strings.TrimSpace(dto.ShortName) == "" {
		fields = append(fields, fieldError("short_name", "short_name is required"))
	}
	if strings.TrimSpace(dto.LegalName) == "" {
		fields = append(fields, fieldError("legal_name", "legal_name is required"))
	}
	if dto.PostalCode != "" && !postalCodePattern.MatchString(dto.PostalCode) {
		fields = append(fields, fieldError("postal_code", "postal_code must be formatted as XXXXX-XXX"))
	}
	if dto.State != "" && !validStates[dto.State] {
		fields = append(fields, fieldError("state", "state must be a valid federative unit code"))
	}

	if len(fields) > 0 {
		return internal.NewValidationError("company rejected", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fields})
	}
	return nil
}

func (dto *UpdateCompanyDTO) Validate() error {
	var fields []internal.ValidationError

	if dto.ShortName != nil && strings.TrimSpace(*dto.ShortName) == "" {
		fields = append(fields, fieldError("short_name", "short_name cannot be empty"))
	}
	if dto.LegalName != nil && strings.TrimSpace(*dto.LegalName) == "" {
		fields = append(fields, fieldError("legal_name", "legal_name cannot be empty"))
	}
	if dto.PostalCode != nil && *dto.PostalCode != "" && !postalCodePattern.MatchString(*dto.PostalCode) {
		fields = append(fields, fieldError("postal_code", "postal_code must be formatted as XXXXX-XXX"))
	}
	if dto.State != nil && !validStates[*dto.State] {
		fields = append(fields, fieldError("state", "state must be a valid federative unit code"))
	}

	if len(fields) > 0 {
		return internal.NewValidationError("company rejected", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fields})
	}
	return nil
}

func (dto *GrantAccessDTO) Validate() error {
	if dto.UserID == nil || *dto.UserID <= 0 {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (dto *CreateCompanyDTO) ToModel() *companymodel.Company {
	return &companymodel.Company{
		Code:       dto.Code,
		CNPJ:       dto.CNPJ,
		ShortName:  dto.ShortName,
		LegalName:  dto.LegalName,
		Street:     dto.Street,
		Number:     dto.Number,
		Complement: dto.Complement,
		District:   dto.District,
		City:       dto.City,
		PostalCode: dto.PostalCode,
		State:      dto.State,
		IsActive:   true,
	}
}

func (dto *UpdateCompanyDTO) ApplyTo(c *companymodel.Company) {
	if dto.ShortName != nil {
		c.ShortName = *dto.ShortName
	}
	if dto.LegalName != nil {
		c.LegalName = *dto.LegalName
	}
	if dto.Street != nil {
		c.Street = *dto.Street
	}
	if dto.Number != nil {
		c.Number = *dto.Number
	}
	if dto.Complement != nil {
		c.Complement = dto.Complement
	}
	if dto.District != nil {
		c.District = *dto.District
	}
	if dto.City != nil {
		c.City = *dto.City
	}
	if dto.PostalCode != nil {
		c.PostalCode = *dto.PostalCode
	}
	if dto.State != nil {
		c.State = *dto.State
	}
	if dto.IsActive != nil {
		c.IsActive = *dto.IsActive
	}
}

func fieldError(field, message string) internal.ValidationError {
	return internal.ValidationError{
		Field:   field,
		Message: message,
		Code:    string(internal.ErrCodeValidationFailed),
	}
}
