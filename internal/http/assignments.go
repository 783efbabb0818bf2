package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shiftcrew/shiftcrew/internal/domain"
	"github.com/shiftcrew/shiftcrew/internal/repository"
)

type assignmentCreateRequest struct {
	JobID        string `json:"jobId"`
	LabourerID   string `json:"labourerId"`
	SkillID      string `json:"skillId"`
	Date         string `json:"date"`
	WageAmount   int64  `json:"wageAmount"`
	ChargeAmount int64  `json:"chargeAmount"`
}

type assignmentResponse struct {
	ID            string `json:"id"`
	JobID         string `json:"jobId"`
	LabourerID    string `json:"labourerId"`
	SkillID       string `json:"skillId"`
	Date          string `json:"date"`
	WageAmount    int64  `json:"wageAmount"`
	ChargeAmount  int64  `json:"chargeAmount"`
	QualityRating *int16 `json:"qualityRating,omitempty"`
	SafetyRating  *int16 `json:"safetyRating,omitempty"`
	JobRating     *int16 `json:"jobRating,omitempty"`
}

type gradeRequest struct {
	Rating int16 `json:"rating"`
}

type workRatingsRequest struct {
	QualityRating *int16 `json:"qualityRating"`
	SafetyRating  *int16 `json:"safetyRating"`
}

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
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

	filters := repository.AssignmentListFilters{
		JobID:      queryStringPtr(query, "jobId"),
		LabourerID: queryStringPtr(query, "labourerId"),
		CompanyID:  queryStringPtr(query, "companyId"),
		From:       from,
		To:         to,
		Page:       page,
		PageSize:   pageSize,
	}

	result, err := s.repo.Assignments.List(r.Context(), filters)
	if err != nil {
		s.respondDomainError(w, err, "list assignments failed")
		return
	}

	items := make([]assignmentResponse, 0, len(result.Items))
	for _, a := range result.Items {
		items = append(items, toAssignmentResponse(a))
	}
	s.respondJSON(w, http.StatusOK, pagedResponse{Result: items, TotalRows: result.TotalRows})
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req assignmentCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "date must follow YYYY-MM-DD format")
		return
	}
	if req.JobID == "" || req.LabourerID == "" || req.SkillID == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "jobId, labourerId and skillId are required")
		return
	}

	assignment, err := s.repo.Assignments.Create(r.Context(), repository.AssignmentCreateParams{
		JobID:        req.JobID,
		LabourerID:   req.LabourerID,
		SkillID:      req.SkillID,
		Date:         date,
		WageAmount:   req.WageAmount,
		ChargeAmount: req.ChargeAmount,
	})
	if err != nil {
		s.respondDomainError(w, err, "create assignment failed")
		return
	}
	s.respondJSON(w, http.StatusCreated, toAssignmentResponse(assignment))
}

func (s *Server) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := s.repo.Assignments.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, err, "get assignment failed")
		return
	}
	s.respondJSON(w, http.StatusOK, toAssignmentResponse(assignment))
}

// handleGradeAssignment is the labourer's once-only job rating. The caller's
// labourer identity arrives from the identity layer via header.
func (s *Server) handleGradeAssignment(w http.ResponseWriter, r *http.Request) {
	labourerID := strings.TrimSpace(r.Header.Get("X-Labourer-Id"))
	if labourerID == "" {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req gradeRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if err := s.engine.GradeAssignment(r.Context(), chi.URLParam(r, "id"), req.Rating, labourerID); err != nil {
		s.respondDomainError(w, err, "grade assignment failed")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "graded"})
}

func (s *Server) handleWorkRatings(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req workRatingsRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if req.QualityRating == nil && req.SafetyRating == nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "at least one of qualityRating, safetyRating is required")
		return
	}

	if err := s.repo.Assignments.UpdateWorkRatings(r.Context(), chi.URLParam(r, "id"), req.QualityRating, req.SafetyRating); err != nil {
		s.respondDomainError(w, err, "update work ratings failed")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func toAssignmentResponse(a domain.Assignment) assignmentResponse {
	return assignmentResponse{
		ID:            a.ID,
		JobID:         a.JobID,
		LabourerID:    a.LabourerID,
		SkillID:       a.SkillID,
		Date:          a.Date.Format(dateLayout),
		WageAmount:    a.WageAmount,
		ChargeAmount:  a.ChargeAmount,
		QualityRating: a.QualityRating,
		SafetyRating:  a.SafetyRating,
		JobRating:     a.JobRating,
	}
}
