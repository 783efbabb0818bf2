package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shiftcrew/shiftcrew/internal/domain"
)

const maxRequestBody = 1 << 20 // 1 MiB

const dateLayout = "2006-01-02"

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// pagedResponse wraps a page of rows with the size of the full filtered set.
type pagedResponse struct {
	Result    interface{} `json:"result"`
	TotalRows int64       `json:"totalRows"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("failed to encode response", zap.Error(err))
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}

// respondDomainError maps the domain error kinds onto HTTP statuses. Any
// error outside those kinds is an infrastructure failure: logged, answered
// with a generic 500, never leaked to the client.
func (s *Server) respondDomainError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, domain.ErrValidation):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrAlreadyGraded):
		s.respondError(w, http.StatusConflict, "ALREADY_GRADED", "Assignment has already been graded")
	case errors.Is(err, domain.ErrConflict):
		s.respondError(w, http.StatusConflict, "CONFLICT", "Concurrent update conflict, please retry")
	default:
		s.logger.Error(logMsg, zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}

func (s *Server) verifyBearer(header string) bool {
	if header == "" {
		return false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token == s.cfg.AuthToken
}

func parsePagination(query url.Values) (page, pageSize int, err error) {
	page, pageSize = 1, 20
	if val := strings.TrimSpace(query.Get("page")); val != "" {
		page, err = strconv.Atoi(val)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page value")
		}
	}
	if val := strings.TrimSpace(query.Get("pageSize")); val != "" {
		pageSize, err = strconv.Atoi(val)
		if err != nil || pageSize < 1 {
			return 0, 0, fmt.Errorf("invalid pageSize value")
		}
	}
	return page, pageSize, nil
}

func parseDateParam(query url.Values, key string) (*time.Time, error) {
	val := strings.TrimSpace(query.Get(key))
	if val == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, val)
	if err != nil {
		return nil, fmt.Errorf("%s must follow YYYY-MM-DD format", key)
	}
	return &parsed, nil
}

func queryStringPtr(query url.Values, key string) *string {
	if val := strings.TrimSpace(query.Get(key)); val != "" {
		return &val
	}
	return nil
}
