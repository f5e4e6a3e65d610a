package callup

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/fbarbosa/hr-management/internal"
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
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	var dto CreateCallUpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var createdBy *int64
	if u, ok := auth.UserFromContext(r.Context()); ok {
		createdBy = &u.ID
	}

	c, err := h.Service.CreateCallUp(companyCode, createdBy, &dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid call-up ID")
		return
	}

	c, err := h.Service.GetCallUp(companyCode, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	result, err := h.Service.ListCallUps(companyCode, filtersFromQuery(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid call-up ID")
		return
	}

	var dto UpdateCallUpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.UpdateCallUp(companyCode, id, &dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid call-up ID")
		return
	}

	var dto RespondCallUpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.RespondCallUp(companyCode, id, &dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid call-up ID")
		return
	}

	if err := h.Service.DeleteCallUp(companyCode, id); err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	metrics, err := h.Service.Metrics(companyCode)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, metrics)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	records, err := h.Service.ExportCSV(companyCode)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="callups.csv"`)

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		h.Logger.Error("failed to stream call-up export", "error", err)
	}
}

func (h *Handler) Types(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ListTypes()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"types": types})
}

func filtersFromQuery(r *http.Request) ListFilters {
	filters := ListFilters{Limit: 20}

	if v := r.URL.Query().Get("employee_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.EmployeeID = id
		}
	}
	if v := r.URL.Query().Get("type_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.TypeID = id
		}
	}
	if v := r.URL.Query().Get("responded"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filters.Responded = &b
		}
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

	return filters
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
