package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftcrew/shiftcrew/internal/domain"
	"github.com/shiftcrew/shiftcrew/internal/repository"
)

type companyRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Address  string `json:"address"`
	IsActive bool   `json:"isActive"`
}

type companyResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone,omitempty"`
	City     string  `json:"city,omitempty"`
	Province string  `json:"province,omitempty"`
	Country  string  `json:"country,omitempty"`
	Address  string  `json:"address,omitempty"`
	Rating   float32 `json:"rating"`
	IsActive bool    `json:"isActive"`
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := parsePagination(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	total, companies, err := s.repo.Companies.List(r.Context(), page, pageSize)
	if err != nil {
		s.respondDomainError(w, err, "list companies failed")
		return
	}

	items := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		items = append(items, toCompanyResponse(company))
	}
	s.respondJSON(w, http.StatusOK, pagedResponse{Result: items, TotalRows: total})
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req companyRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if req.Name == "" || req.Email == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name and email are required")
		return
	}

	company, err := s.repo.Companies.Create(r.Context(), repository.CompanyCreateParams{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		City:     req.City,
		Province: req.Province,
		Country:  req.Country,
		Address:  req.Address,
	})
	if err != nil {
		s.respondDomainError(w, err, "create company failed")
		return
	}
	s.respondJSON(w, http.StatusCreated, toCompanyResponse(company))
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.repo.Companies.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, err, "get company failed")
		return
	}
	s.respondJSON(w, http.StatusOK, toCompanyResponse(company))
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req companyRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	company, err := s.repo.Companies.Update(r.Context(), domain.Company{
		ID:       chi.URLParam(r, "id"),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		City:     req.City,
		Province: req.Province,
		Country:  req.Country,
		Address:  req.Address,
		IsActive: req.IsActive,
	})
	if err != nil {
		s.respondDomainError(w, err, "update company failed")
		return
	}
	s.respondJSON(w, http.StatusOK, toCompanyResponse(company))
}

func toCompanyResponse(c domain.Company) companyResponse {
	return companyResponse{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		City:     c.City,
		Province: c.Province,
		Country:  c.Country,
		Address:  c.Address,
		Rating:   c.Rating,
		IsActive: c.IsActive,
	}
}
