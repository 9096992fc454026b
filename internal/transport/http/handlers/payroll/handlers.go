package payrollhandler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"folha/internal/auth"
	"folha/internal/domain/payroll"
	"folha/internal/transport/http/api"
	"folha/internal/transport/http/middleware"
	"folha/internal/transport/http/shared"
)

type Handler struct {
	Payroll *payroll.Service
}

func NewHandler(payrollService *payroll.Service) *Handler {
	return &Handler{Payroll: payrollService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/runs", h.handleListRuns)
		r.With(middleware.RequireRole(auth.RoleHR)).Post("/runs", h.handleProcessRun)
		r.Get("/runs/{month}", h.handleGetRun)
		r.Get("/runs/{month}/register", h.handleExportRegister)
		r.Get("/runs/{month}/payslips/{employeeID}", h.handleDownloadPayslip)
	})
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Payroll.ListRuns(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_runs_failed", "failed to list payroll runs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, runs, middleware.GetRequestID(r.Context()))
}

type processPayload struct {
	Month string `json:"month"`
}

func (h *Handler) handleProcessRun(w http.ResponseWriter, r *http.Request) {
	var payload processPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	month, _ := v.Month("month", payload.Month)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	run, err := h.Payroll.ProcessRun(r.Context(), month)
	switch {
	case errors.Is(err, payroll.ErrRunExists):
		api.Fail(w, http.StatusConflict, "period_already_processed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	case errors.Is(err, payroll.ErrInvalidMonth):
		api.Fail(w, http.StatusBadRequest, "invalid_month", err.Error(), middleware.GetRequestID(r.Context()))
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "payroll_run_failed", "failed to process payroll", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, run, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.Payroll.GetRun(r.Context(), chi.URLParam(r, "month"))
	if errors.Is(err, payroll.ErrRunNotFound) {
		api.Fail(w, http.StatusNotFound, "run_not_found", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_run_failed", "failed to load payroll run", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, run, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportRegister(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	run, err := h.Payroll.GetRun(r.Context(), month)
	if errors.Is(err, payroll.ErrRunNotFound) {
		api.Fail(w, http.StatusNotFound, "run_not_found", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_export_failed", "failed to load payroll run", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payroll-register-%s.csv"`, month))

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"employee_number", "name", "base_salary", "allowances", "gross", "total_deductions", "net"})
	for _, item := range run.Items {
		_ = writer.Write([]string{
			item.EmployeeNumber,
			item.Name,
			fmt.Sprintf("%.0f", item.BaseSalary),
			fmt.Sprintf("%.0f", item.Allowances),
			fmt.Sprintf("%.0f", item.Gross),
			fmt.Sprintf("%.0f", item.TotalDeductions),
			fmt.Sprintf("%.0f", item.Net),
		})
	}
	writer.Flush()
}

func (h *Handler) handleDownloadPayslip(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	run, err := h.Payroll.GetRun(r.Context(), month)
	if errors.Is(err, payroll.ErrRunNotFound) {
		api.Fail(w, http.StatusNotFound, "run_not_found", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to load payroll run", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	var found *payroll.LineItem
	for i := range run.Items {
		if run.Items[i].EmployeeID == employeeID {
			found = &run.Items[i]
			break
		}
	}
	if found == nil {
		api.Fail(w, http.StatusNotFound, "payslip_not_found", "no line item for employee in this run", middleware.GetRequestID(r.Context()))
		return
	}

	pdf, err := payroll.RenderPayslipPDF(*found, month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to render payslip", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s-%s.pdf"`, month, employeeID))
	_, _ = w.Write(pdf)
}
