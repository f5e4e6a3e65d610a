package auth

import (
	"strings"

	"github.com/fbarbosa/hr-management/internal"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (d LoginDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return internal.NewValidationFieldError("refresh_token", "refresh_token is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

func (d ChangePasswordDTO) Validate() error {
	var fields []internal.ValidationError

	if d.CurrentPassword == "" {
		fields = append(fields, internal.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
			Code:    string(internal.ErrCodeValidationFailed),
		})
	}
	if d.NewPassword == "" {
		fields = append(fields, internal.ValidationError{
			Field:   "new_password",
			Message: "new_password is required",
			Code:    string(internal.ErrCodeValidationFailed),
		})
	} else if len(d.NewPassword) < 8 {
		fields = append(fields, internal.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 8 characters",
			Code:    string(internal.ErrCodeValidationFailed),
		})
	}
	if d.NewPassword != "" && d.ConfirmPassword != d.NewPassword {
		fields = append(fields, internal.ValidationError{
			Field:   "confirm_password",
			Message: "confirm_password does not match new_password",
			Code:    string(internal.ErrCodePasswordMismatch),
		})
	}

	if len(fields) > 0 {
		return internal.NewValidationError("password change rejected", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: fields})
	}
	return nil
}
