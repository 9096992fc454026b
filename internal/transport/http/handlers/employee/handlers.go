package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"folha/internal/auth"
	"folha/internal/domain/employee"
	"folha/internal/domain/payroll"
	"folha/internal/transport/http/api"
	"folha/internal/transport/http/middleware"
	"folha/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Service
	Payroll   *payroll.Service
}

func NewHandler(employees *employee.Service, payrollService *payroll.Service) *Handler {
	return &Handler{Employees: employees, Payroll: payrollService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleHR)).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/{employeeID}/archive", h.handleArchive)
		r.Get("/{employeeID}/salary", h.handleSalaryPreview)
		r.Get("/{employeeID}/adjustments", h.handleListAdjustments)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/{employeeID}/adjustments", h.handleAddAdjustment)
		r.With(middleware.RequireRole(auth.RoleHR)).Delete("/{employeeID}/adjustments/{adjustmentID}", h.handleRemoveAdjustment)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != employee.StatusActive && status != employee.StatusArchived {
		api.Fail(w, http.StatusBadRequest, "invalid_status", "status must be active or archived", middleware.GetRequestID(r.Context()))
		return
	}
	employees, err := h.Employees.List(r.Context(), status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload employee.NewEmployee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("employmentType", payload.EmploymentType, "employment type is required")
	v.Enum("employmentType", payload.EmploymentType, employee.EmploymentTypes(), "unknown employment type")
	if payload.Salary < 0 {
		v.Add("salary", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	emp, err := h.Employees.Create(r.Context(), payload)
	if err != nil {
		failEmployeeError(w, r, err, "employee_create_failed", "failed to create employee")
		return
	}
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Employees.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		failEmployeeError(w, r, err, "employee_get_failed", "failed to load employee")
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	emp, err := h.Employees.Update(r.Context(), chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		failEmployeeError(w, r, err, "employee_update_failed", "failed to update employee")
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

type archivePayload struct {
	Reason string `json:"reason"`
}

func (h *Handler) handleArchive(w http.ResponseWriter, r *http.Request) {
	var payload archivePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Employees.Archive(r.Context(), chi.URLParam(r, "employeeID"), payload.Reason); err != nil {
		failEmployeeError(w, r, err, "employee_archive_failed", "failed to archive employee")
		return
	}
	emp, err := h.Employees.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		failEmployeeError(w, r, err, "employee_get_failed", "failed to load employee")
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSalaryPreview(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Employees.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		failEmployeeError(w, r, err, "salary_preview_failed", "failed to load employee")
		return
	}
	breakdown, err := h.Payroll.Preview(r.Context(), emp)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_preview_failed", "failed to compute salary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, breakdown, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAdjustments(w http.ResponseWriter, r *http.Request) {
	includeProcessed := r.URL.Query().Get("includeProcessed") == "true"
	adjustments, err := h.Payroll.ListAdjustments(r.Context(), chi.URLParam(r, "employeeID"), includeProcessed)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "adjustments_list_failed", "failed to list adjustments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, adjustments, middleware.GetRequestID(r.Context()))
}

type adjustmentPayload struct {
	Kind          string  `json:"kind"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	EffectiveDate string  `json:"effectiveDate"`
}

func (h *Handler) handleAddAdjustment(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if _, err := h.Employees.Get(r.Context(), employeeID); err != nil {
		failEmployeeError(w, r, err, "adjustment_create_failed", "failed to load employee")
		return
	}

	var payload adjustmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Enum("kind", payload.Kind, []string{payroll.KindBonus, payroll.KindDeduction}, "must be bonus or deduction")
	v.Required("kind", payload.Kind, "kind is required")
	v.Positive("amount", payload.Amount, "must be a positive amount")
	v.Required("description", payload.Description, "description is required")
	effectiveDate, _ := v.Date("effectiveDate", payload.EffectiveDate)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	adj, err := h.Payroll.AddAdjustment(r.Context(), employeeID, payroll.Adjustment{
		Kind:          payload.Kind,
		Amount:        payload.Amount,
		Description:   payload.Description,
		EffectiveDate: effectiveDate,
	})
	if errors.Is(err, payroll.ErrInvalidAdjustment) {
		api.Fail(w, http.StatusBadRequest, "invalid_adjustment", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "adjustment_create_failed", "failed to create adjustment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, adj, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRemoveAdjustment(w http.ResponseWriter, r *http.Request) {
	err := h.Payroll.RemoveAdjustment(r.Context(), chi.URLParam(r, "employeeID"), chi.URLParam(r, "adjustmentID"))
	if errors.Is(err, payroll.ErrAdjustmentNotFound) {
		api.Fail(w, http.StatusNotFound, "adjustment_not_found", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "adjustment_delete_failed", "failed to delete adjustment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func failEmployeeError(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", employee.ErrNotFound.Error(), requestID)
	case errors.Is(err, employee.ErrNotActive),
		errors.Is(err, employee.ErrEmptyArchiveReason),
		errors.Is(err, employee.ErrMissingRequired),
		errors.Is(err, employee.ErrNegativeSalary),
		errors.Is(err, employee.ErrUnknownEmployment):
		api.Fail(w, http.StatusBadRequest, code, err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}
