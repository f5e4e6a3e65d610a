package screen

import (
	"encoding/json"

	"github.com/fbarbosa/hr-management/internal"
)

type GrantScreenDTO struct {
	UserID *int64 `json:"user_id"`
	// Permissions is an optional JSON object stored alongside the grant.
	Permissions *string `json:"permissions,omitempty"`
}

func (dto *GrantScreenDTO) Validate() error {
	if dto.UserID == nil || *dto.UserID <= 0 {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.Permissions != nil && !json.Valid([]byte(*dto.Permissions)) {
		return internal.NewValidationFieldError("permissions", "permissions must be a valid JSON document", internal.ErrCodeValidationFailed)
	}
	return nil
}
