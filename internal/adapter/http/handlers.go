package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/couchcryptid/surf-forecast-service/internal/adapter/store"
	"github.com/couchcryptid/surf-forecast-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

// UserHeader carries the authenticated user id. Authentication itself
// happens upstream of this service.
const UserHeader = "X-User-ID"

// maxBeachBodyBytes caps the POST /beaches request body.
const maxBeachBodyBytes = 4 << 10

var validate = validator.New()

type userKey struct{}

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// createBeachRequest is the body of POST /beaches. Coordinates are pointers
// so that 0 is accepted and a missing value is not.
type createBeachRequest struct {
	Name     string   `json:"name" validate:"required"`
	Position string   `json:"position" validate:"required,oneof=N S E W"`
	Lat      *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng      *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserHeader))
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing "+UserHeader+" header")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey{}, userID)))
	}
}

func userFrom(r *http.Request) string {
	userID, _ := r.Context().Value(userKey{}).(string)
	return userID
}

func (s *Server) handleCreateBeach(w http.ResponseWriter, r *http.Request) {
	var req createBeachRequest
	body := http.MaxBytesReader(w, r.Body, maxBeachBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	beach, err := s.beaches.Create(r.Context(), domain.Beach{
		Name:     req.Name,
		Position: domain.Position(req.Position),
		Lat:      *req.Lat,
		Lng:      *req.Lng,
		UserID:   userFrom(r),
	})
	if err != nil {
		s.internalError(w, "create beach failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, beach)
}

func (s *Server) handleListBeaches(w http.ResponseWriter, r *http.Request) {
	beaches, err := s.beaches.ListByUser(r.Context(), userFrom(r))
	if err != nil {
		s.internalError(w, "list beaches failed", err)
		return
	}
	writeJSON(w, http.StatusOK, beaches)
}

func (s *Server) handleDeleteBeach(w http.ResponseWriter, r *http.Request) {
	err := s.beaches.Delete(r.Context(), userFrom(r), r.PathValue("id"))
	if errors.Is(err, store.ErrBeachNotFound) {
		writeError(w, http.StatusNotFound, "beach not found")
		return
	}
	if err != nil {
		s.internalError(w, "delete beach failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r)
	beaches, err := s.beaches.ListByUser(r.Context(), userID)
	if err != nil {
		s.internalError(w, "list beaches failed", err)
		return
	}

	forecast, err := s.forecasts.ProcessForecastForBeaches(r.Context(), beaches)
	if err != nil {
		s.internalError(w, "forecast failed", err)
		return
	}

	if s.publisher != nil {
		if err := s.publisher.PublishForecast(r.Context(), userID, forecast); err != nil {
			s.logger.Warn("publish forecast failed", "user_id", userID, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, forecast)
}

// internalError logs the cause and answers with a generic 500.
func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "something went wrong")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Error: msg})
}

// validationMessage renders validator errors as "field: rule" pairs.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+": "+fe.Tag())
	}
	return "invalid beach: " + strings.Join(parts, ", ")
}
