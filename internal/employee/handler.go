package employee

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/fbarbosa/hr-management/internal"
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

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.CreateEmployee(companyCode, &dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	e, err := h.Service.GetEmployee(companyCode, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	filters := filtersFromQuery(r)
	result, err := h.Service.ListEmployees(companyCode, filters)
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
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.Service.UpdateEmployee(companyCode, id, &dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	if err := h.Service.DeleteEmployee(companyCode, id); err != nil {
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

	records, err := h.Service.ExportCSV(companyCode, filtersFromQuery(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="employees.csv"`)

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		h.Logger.Error("failed to stream employee export", "error", err)
	}
}

func filtersFromQuery(r *http.Request) ListFilters {
	filters := ListFilters{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Limit:  20,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			filters.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filters.Offset = o
		}
	}

	return filters
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
