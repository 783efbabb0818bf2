package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftcrew/shiftcrew/internal/domain"
)

type invoiceSummaryResponse struct {
	CompanyID       string `json:"companyId"`
	CompanyName     string `json:"companyName"`
	AssignmentCount int64  `json:"assignmentCount"`
	WageTotal       int64  `json:"totalWage"`
	ChargeTotal     int64  `json:"totalCharge"`
	Margin          int64  `json:"margin"`
}

type invoiceLineResponse struct {
	AssignmentID string `json:"assignmentId"`
	JobTitle     string `json:"jobTitle"`
	SkillName    string `json:"skillName"`
	LabourerName string `json:"labourerName"`
	Date         string `json:"date"`
	WageAmount   int64  `json:"wageAmount"`
	ChargeAmount int64  `json:"chargeAmount"`
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, pageSize, err := parsePagination(query)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	from, err := parseDateParam(query, "fromDate")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	to, err := parseDateParam(query, "toDate")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	if from == nil || to == nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "fromDate and toDate are required")
		return
	}

	total, summaries, err := s.invoices.ListInvoices(r.Context(), *from, *to, queryStringPtr(query, "companyId"), page, pageSize)
	if err != nil {
		s.respondDomainError(w, err, "list invoices failed")
		return
	}

	items := make([]invoiceSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		items = append(items, toInvoiceSummaryResponse(summary))
	}
	s.respondJSON(w, http.StatusOK, pagedResponse{Result: items, TotalRows: total})
}

func (s *Server) handleInvoiceDetails(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, pageSize, err := parsePagination(query)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	from, err := parseDateParam(query, "fromDate")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	to, err := parseDateParam(query, "toDate")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	if from == nil || to == nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "fromDate and toDate are required")
		return
	}

	total, lines, err := s.invoices.CompanyInvoiceDetails(r.Context(), chi.URLParam(r, "companyId"), *from, *to, page, pageSize)
	if err != nil {
		s.respondDomainError(w, err, "invoice details failed")
		return
	}

	items := make([]invoiceLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, invoiceLineResponse{
			AssignmentID: line.AssignmentID,
			JobTitle:     line.JobTitle,
			SkillName:    line.SkillName,
			LabourerName: line.LabourerName,
			Date:         line.Date.Format(dateLayout),
			WageAmount:   line.WageAmount,
			ChargeAmount: line.ChargeAmount,
		})
	}
	s.respondJSON(w, http.StatusOK, pagedResponse{Result: items, TotalRows: total})
}

func toInvoiceSummaryResponse(s domain.InvoiceSummary) invoiceSummaryResponse {
	return invoiceSummaryResponse{
		CompanyID:       s.CompanyID,
		CompanyName:     s.CompanyName,
		AssignmentCount: s.AssignmentCount,
		WageTotal:       s.WageTotal,
		ChargeTotal:     s.ChargeTotal,
		Margin:          s.Margin,
	}
}
