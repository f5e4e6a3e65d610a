package accesscontrol

import (
	"encoding/json"
	"net/http"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/auth"
	"github.com/fbarbosa/hr-management/internal/transport"
	"github.com/fbarbosa/hr-management/pkg/logger"
)

type SelectCompanyDTO struct {
	CompanyID *int64 `json:"company_id"`
}

func (d SelectCompanyDTO) Validate() error {
	if d.CompanyID == nil {
		return internal.NewValidationFieldError("company_id", "company_id is required", internal.ErrCodeMissingCompany)
	}
	return nil
}

type Handler struct {
	*transport.BaseHandler
	resolver *Resolver
}

func NewHandler(resolver *Resolver) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		resolver:    resolver,
	}
}

// SelectCompany stores an explicit company selection for the session.
func (h *Handler) SelectCompany(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	var dto SelectCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	if err := h.resolver.Select(r.Context(), u, *dto.CompanyID); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "company selected",
		"company_id": *dto.CompanyID,
	})
}
