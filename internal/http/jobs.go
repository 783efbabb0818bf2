package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shiftcrew/shiftcrew/internal/domain"
	"github.com/shiftcrew/shiftcrew/internal/repository"
	"github.com/shiftcrew/shiftcrew/internal/schedule"
)

type jobCreateRequest struct {
	CompanyID   string `json:"companyId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Country     string `json:"country"`
	Address     string `json:"address"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Weekdays    uint8  `json:"weekdays"`
}

type jobUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Country     string `json:"country"`
	Address     string `json:"address"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Weekdays    uint8  `json:"weekdays"`
	IsActive    bool   `json:"isActive"`
}

type jobResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"companyId"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	City        string  `json:"city,omitempty"`
	Province    string  `json:"province,omitempty"`
	Country     string  `json:"country,omitempty"`
	Address     string  `json:"address,omitempty"`
	Rating      float32 `json:"rating"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Weekdays    uint8   `json:"weekdays"`
	IsActive    bool    `json:"isActive"`
}

type jobRatingRowResponse struct {
	JobID       string  `json:"jobId"`
	JobTitle    string  `json:"jobTitle"`
	CompanyID   string  `json:"companyId"`
	CompanyName string  `json:"companyName"`
	Rating      float32 `json:"rating"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

type scheduleRequest struct {
	Picks []schedulePickRequest `json:"picks"`
}

type schedulePickRequest struct {
	LabourerID string `json:"labourerId"`
	SkillID    string `json:"skillId"`
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.repo.Jobs.List(r.Context(), repository.JobListFilters{
		CompanyID: queryStringPtr(query, "companyId"),
		From:      from,
		To:        to,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		s.respondDomainError(w, err, "list jobs failed")
		return
	}

	items := make([]jobResponse, 0, len(result.Items))
	for _, job := range result.Items {
		items = append(items, toJobResponse(job))
	}
	s.respondJSON(w, http.StatusOK, pagedResponse{Result: items, TotalRows: result.TotalRows})
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req jobCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "startDate must follow YYYY-MM-DD format")
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "endDate must follow YYYY-MM-DD format")
		return
	}
	if req.CompanyID == "" || req.Title == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "companyId and title are required")
		return
	}

	job, err := s.repo.Jobs.Create(r.Context(), repository.JobCreateParams{
		CompanyID:   req.CompanyID,
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Province:    req.Province,
		Country:     req.Country,
		Address:     req.Address,
		StartDate:   startDate,
		EndDate:     endDate,
		Weekdays:    domain.Weekdays(req.Weekdays),
	})
	if err != nil {
		s.respondDomainError(w, err, "create job failed")
		return
	}
	s.respondJSON(w, http.StatusCreated, toJobResponse(job))
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.repo.Jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, err, "get job failed")
		return
	}
	s.respondJSON(w, http.StatusOK, toJobResponse(job))
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req jobUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "startDate must follow YYYY-MM-DD format")
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "endDate must follow YYYY-MM-DD format")
		return
	}

	job, err := s.repo.Jobs.Update(r.Context(), domain.Job{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Province:    req.Province,
		Country:     req.Country,
		Address:     req.Address,
		StartDate:   startDate,
		EndDate:     endDate,
		Weekdays:    domain.Weekdays(req.Weekdays),
		IsActive:    req.IsActive,
	})
	if err != nil {
		s.respondDomainError(w, err, "update job failed")
		return
	}
	s.respondJSON(w, http.StatusOK, toJobResponse(job))
}

func (s *Server) handleJobRatingReport(w http.ResponseWriter, r *http.Request) {
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

	total, report, err := s.repo.Jobs.RatingReport(r.Context(), repository.JobListFilters{
		CompanyID: queryStringPtr(query, "companyId"),
		From:      from,
		To:        to,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		s.respondDomainError(w, err, "job rating report failed")
		return
	}

	items := make([]jobRatingRowResponse, 0, len(report))
	for _, row := range report {
		items = append(items, jobRatingRowResponse{
			JobID:       row.JobID,
			JobTitle:    row.JobTitle,
			CompanyID:   row.CompanyID,
			CompanyName: row.CompanyName,
			Rating:      row.Rating,
			StartDate:   row.StartDate.Format(dateLayout),
			EndDate:     row.EndDate.Format(dateLayout),
		})
	}
	s.respondJSON(w, http.StatusOK, pagedResponse{Result: items, TotalRows: total})
}

func (s *Server) handleScheduleJob(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req scheduleRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	picks := make([]schedule.Pick, 0, len(req.Picks))
	for _, pick := range req.Picks {
		picks = append(picks, schedule.Pick{LabourerID: pick.LabourerID, SkillID: pick.SkillID})
	}

	created, err := s.scheduler.ScheduleJob(r.Context(), chi.URLParam(r, "id"), picks)
	if err != nil {
		s.respondDomainError(w, err, "schedule job failed")
		return
	}

	items := make([]assignmentResponse, 0, len(created))
	for _, a := range created {
		items = append(items, toAssignmentResponse(a))
	}
	s.respondJSON(w, http.StatusCreated, pagedResponse{Result: items, TotalRows: int64(len(items))})
}

func toJobResponse(job domain.Job) jobResponse {
	return jobResponse{
		ID:          job.ID,
		CompanyID:   job.CompanyID,
		Title:       job.Title,
		Description: job.Description,
		City:        job.City,
		Province:    job.Province,
		Country:     job.Country,
		Address:     job.Address,
		Rating:      job.Rating,
		StartDate:   job.StartDate.Format(dateLayout),
		EndDate:     job.EndDate.Format(dateLayout),
		Weekdays:    uint8(job.Weekdays),
		IsActive:    job.IsActive,
	}
}
