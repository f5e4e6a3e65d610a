package absence

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

	var dto CreateAbsenceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var createdBy *int64
	if u, ok := auth.UserFromContext(r.Context()); ok {
		createdBy = &u.ID
	}

	a, err := h.Service.CreateAbsence(companyCode, createdBy, &dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid absence ID")
		return
	}

	a, err := h.Service.GetAbsence(companyCode, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	filters, err := filtersFromQuery(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	result, err := h.Service.ListAbsences(companyCode, filters)
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
		h.WriteError(w, http.StatusBadRequest, "invalid absence ID")
		return
	}

	var dto UpdateAbsenceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateAbsence(companyCode, id, &dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	companyCode, ok := internal.CompanyFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.ErrNoCompanyContext)
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid absence ID")
		return
	}

	if err := h.Service.DeleteAbsence(companyCode, id); err != nil {
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

	period, err := ParsePeriod(r.URL.Query().Get("period_from"), r.URL.Query().Get("period_to"))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	metrics, err := h.Service.Metrics(companyCode, period)
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

	period, err := ParsePeriod(r.URL.Query().Get("period_from"), r.URL.Query().Get("period_to"))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	records, err := h.Service.ExportCSV(companyCode, period)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="absences.csv"`)

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		h.Logger.Error("failed to stream absence export", "error", err)
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

func filtersFromQuery(r *http.Request) (ListFilters, error) {
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

	period, err := ParsePeriod(r.URL.Query().Get("period_from"), r.URL.Query().Get("period_to"))
	if err != nil {
		return filters, err
	}
	filters.Period = period

	return filters, nil
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
