package company

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/fbarbosa/hr-management/internal/auth"
	"github.com/fbarbosa/hr-management/internal/transport"
	"github.com/fbarbosa/hr-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.CreateCompany(&dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid company code")
		return
	}

	c, err := h.Service.GetCompany(code)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		Search: r.URL.Query().Get("search"),
		Limit:  20,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 100 {
			filters.Limit = l
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil && o >= 0 {
			filters.Offset = o
		}
	}

	result, err := h.Service.ListCompanies(filters)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid company code")
		return
	}

	var dto UpdateCompanyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.UpdateCompany(code, &dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid company code")
		return
	}

	if err := h.Service.DeactivateCompany(code); err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid company code")
		return
	}

	var dto GrantAccessDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	var grantedBy *int64
	if u, ok := auth.UserFromContext(r.Context()); ok {
		grantedBy = &u.ID
	}

	if err := h.Service.GrantAccess(code, *dto.UserID, grantedBy); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "access granted",
		"company_code": code,
		"user_id":      *dto.UserID,
	})
}

func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid company code")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.Service.RevokeAccess(code, userID); err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Grants(w http.ResponseWriter, r *http.Request) {
	code, err := pathCode(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid company code")
		return
	}

	grants, err := h.Service.ListGrants(code)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"grants": grants})
}

func pathCode(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "code"), 10, 64)
}
