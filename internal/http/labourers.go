package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shiftcrew/shiftcrew/internal/domain"
	"github.com/shiftcrew/shiftcrew/internal/repository"
)

type labourerCreateRequest struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	PersonalID   string   `json:"personalId"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	City         string   `json:"city"`
	Province     string   `json:"province"`
	Country      string   `json:"country"`
	Address      string   `json:"address"`
	Availability uint8    `json:"availability"`
	SkillIDs     []string `json:"skillIds"`
}

type labourerUpdateRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PersonalID   string `json:"personalId"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Province     string `json:"province"`
	Country      string `json:"country"`
	Address      string `json:"address"`
	Availability uint8  `json:"availability"`
	IsActive     bool   `json:"isActive"`
}

type labourerResponse struct {
	ID            string  `json:"id"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	PersonalID    string  `json:"personalId,omitempty"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	City          string  `json:"city,omitempty"`
	Province      string  `json:"province,omitempty"`
	Country       string  `json:"country,omitempty"`
	Address       string  `json:"address,omitempty"`
	Availability  uint8   `json:"availability"`
	SafetyRating  float32 `json:"safetyRating"`
	QualityRating float32 `json:"qualityRating"`
	IsActive      bool    `json:"isActive"`
}

func (s *Server) handleListLabourers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, pageSize, err := parsePagination(query)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	topRated := strings.EqualFold(query.Get("orderBy"), "topRated")

	total, labourers, err := s.repo.Labourers.List(r.Context(), page, pageSize, topRated)
	if err != nil {
		s.respondDomainError(w, err, "list labourers failed")
		return
	}

	items := make([]labourerResponse, 0, len(labourers))
	for _, labourer := range labourers {
		items = append(items, toLabourerResponse(labourer))
	}
	s.respondJSON(w, http.StatusOK, pagedResponse{Result: items, TotalRows: total})
}

func (s *Server) handleCreateLabourer(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req labourerCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	labourer, err := s.repo.Labourers.Create(r.Context(), repository.LabourerCreateParams{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PersonalID:   req.PersonalID,
		Email:        req.Email,
		Phone:        req.Phone,
		City:         req.City,
		Province:     req.Province,
		Country:      req.Country,
		Address:      req.Address,
		Availability: domain.Weekdays(req.Availability),
		SkillIDs:     req.SkillIDs,
	})
	if err != nil {
		s.respondDomainError(w, err, "create labourer failed")
		return
	}
	s.respondJSON(w, http.StatusCreated, toLabourerResponse(labourer))
}

func (s *Server) handleGetLabourer(w http.ResponseWriter, r *http.Request) {
	labourer, err := s.repo.Labourers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, err, "get labourer failed")
		return
	}
	s.respondJSON(w, http.StatusOK, toLabourerResponse(labourer))
}

func (s *Server) handleUpdateLabourer(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req labourerUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	labourer, err := s.repo.Labourers.Update(r.Context(), domain.Labourer{
		ID:           chi.URLParam(r, "id"),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PersonalID:   req.PersonalID,
		Email:        req.Email,
		Phone:        req.Phone,
		City:         req.City,
		Province:     req.Province,
		Country:      req.Country,
		Address:      req.Address,
		Availability: domain.Weekdays(req.Availability),
		IsActive:     req.IsActive,
	})
	if err != nil {
		s.respondDomainError(w, err, "update labourer failed")
		return
	}
	s.respondJSON(w, http.StatusOK, toLabourerResponse(labourer))
}

func toLabourerResponse(l domain.Labourer) labourerResponse {
	return labourerResponse{
		ID:            l.ID,
		FirstName:     l.FirstName,
		LastName:      l.LastName,
		PersonalID:    l.PersonalID,
		Email:         l.Email,
		Phone:         l.Phone,
		City:          l.City,
		Province:      l.Province,
		Country:       l.Country,
		Address:       l.Address,
		Availability:  uint8(l.Availability),
		SafetyRating:  l.SafetyRating,
		QualityRating: l.QualityRating,
		IsActive:      l.IsActive,
	}
}
