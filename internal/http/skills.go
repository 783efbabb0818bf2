package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftcrew/shiftcrew/internal/domain"
	"github.com/shiftcrew/shiftcrew/internal/repository"
)

type skillRequest struct {
	Name         string `json:"name"`
	PayAmount    int64  `json:"payAmount"`
	ChargeAmount int64  `json:"chargeAmount"`
	IsActive     bool   `json:"isActive"`
}

type skillResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PayAmount    int64  `json:"payAmount"`
	ChargeAmount int64  `json:"chargeAmount"`
	IsActive     bool   `json:"isActive"`
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := parsePagination(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	total, skills, err := s.repo.Skills.List(r.Context(), page, pageSize)
	if err != nil {
		s.respondDomainError(w, err, "list skills failed")
		return
	}

	items := make([]skillResponse, 0, len(skills))
	for _, skill := range skills {
		items = append(items, toSkillResponse(skill))
	}
	s.respondJSON(w, http.StatusOK, pagedResponse{Result: items, TotalRows: total})
}

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req skillRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	skill, err := s.repo.Skills.Create(r.Context(), repository.SkillCreateParams{
		Name:         req.Name,
		PayAmount:    req.PayAmount,
		ChargeAmount: req.ChargeAmount,
	})
	if err != nil {
		s.respondDomainError(w, err, "create skill failed")
		return
	}
	s.respondJSON(w, http.StatusCreated, toSkillResponse(skill))
}

func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	skill, err := s.repo.Skills.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, err, "get skill failed")
		return
	}
	s.respondJSON(w, http.StatusOK, toSkillResponse(skill))
}

func (s *Server) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req skillRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	skill, err := s.repo.Skills.Update(r.Context(), domain.Skill{
		ID:           chi.URLParam(r, "id"),
		Name:         req.Name,
		PayAmount:    req.PayAmount,
		ChargeAmount: req.ChargeAmount,
		IsActive:     req.IsActive,
	})
	if err != nil {
		s.respondDomainError(w, err, "update skill failed")
		return
	}
	s.respondJSON(w, http.StatusOK, toSkillResponse(skill))
}

func toSkillResponse(s domain.Skill) skillResponse {
	return skillResponse{
		ID:           s.ID,
		Name:         s.Name,
		PayAmount:    s.PayAmount,
		ChargeAmount: s.ChargeAmount,
		IsActive:     s.IsActive,
	}
}
