package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound       ErrorType = "NOT_FOUND"
	ErrorTypeAuthentication ErrorType = "AUTHENTICATION_ERROR"
	ErrorTypeAuthorization  ErrorType = "AUTHORIZATION_ERROR"
	ErrorTypeNoContext      ErrorType = "NO_CONTEXT"
	ErrorTypeConflict       ErrorType = "CONFLICT"
	ErrorTypeInternal       ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate         ErrorCode = "INVALID_DATE"
	ErrCodeInvalidPeriod       ErrorCode = "INVALID_PERIOD"
	ErrCodeMissingCompany      ErrorCode = "MISSING_COMPANY"
	ErrCodePasswordMismatch    ErrorCode = "PASSWORD_MISMATCH"
	ErrCodeWrongPassword       ErrorCode = "WRONG_PASSWORD"
	ErrCodeInvalidCredentials  ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken        ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired        ErrorCode = "TOKEN_EXPIRED"
	ErrCodeCompanyDenied       ErrorCode = "COMPANY_ACCESS_DENIED"
	ErrCodeScreenDenied        ErrorCode = "SCREEN_ACCESS_DENIED"
	ErrCodeNoCompanyContext    ErrorCode = "NO_COMPANY_CONTEXT"
	ErrCodeCompanyNotFound     ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeEmployeeNotFound    ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeAbsenceNotFound     ErrorCode = "ABSENCE_NOT_FOUND"
	ErrCodeCallUpNotFound      ErrorCode = "CALLUP_NOT_FOUND"
	ErrCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	ErrCodeScreenNotFound      ErrorCode = "SCREEN_NOT_FOUND"
	ErrCodeDuplicateCompany    ErrorCode = "DUPLICATE_COMPANY"
	ErrCodeDuplicateEmployee   ErrorCode = "DUPLICATE_EMPLOYEE"
	ErrCodeAdminRequired       ErrorCode = "ADMIN_REQUIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewAuthenticationError maps to 401. The message must stay generic so a
// caller cannot tell which of email/password was wrong.
func NewAuthenticationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthentication,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewAuthorizationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthorization,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewNoContextError is a 400, not a 403: nothing was denied, there was
// simply no company to resolve for the request.
func NewNoContextError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNoContext,
		Code:       ErrCodeNoCompanyContext,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

var (
	ErrInvalidCredentials = NewAuthenticationError("Invalid email or password", ErrCodeInvalidCredentials)
	// ErrUserInactive is a distinct sentinel for internal branching, but
	// serializes identically to ErrInvalidCredentials so the 401 payload
	// cannot reveal that the account exists and is deactivated.
	ErrUserInactive = NewAuthenticationError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidToken = NewAuthenticationError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired = NewAuthenticationError("Token has expired", ErrCodeTokenExpired)

	ErrCompanyAccessDenied = NewAuthorizationError("Access to this company is denied", ErrCodeCompanyDenied)
	ErrScreenAccessDenied  = NewAuthorizationError("Access to this functionality is denied", ErrCodeScreenDenied)
	ErrNoCompanyContext    = NewNoContextError("No company context set for this request")
	ErrAdminRequired       = NewAuthorizationError("Administrator access required", ErrCodeAdminRequired)

	ErrCompanyNotFound  = NewNotFoundError("Company not found", ErrCodeCompanyNotFound)
	ErrEmployeeNotFound = NewNotFoundError("Employee not found", ErrCodeEmployeeNotFound)
	ErrAbsenceNotFound  = NewNotFoundError("Absence record not found", ErrCodeAbsenceNotFound)
	ErrCallUpNotFound   = NewNotFoundError("Call-up not found", ErrCodeCallUpNotFound)
	ErrUserNotFound     = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrScreenNotFound   = NewNotFoundError("Screen not found", ErrCodeScreenNotFound)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
