package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wanderly/trailhead/internal/models"
	pkghttp "github.com/wanderly/trailhead/pkg/http"
)

// TourServiceInterface defines the interface for tour business logic
type TourServiceInterface interface {
	Get(ctx context.Context, id string) (*models.Tour, error)
	List(ctx context.Context, limit, offset int) ([]*models.Tour, error)
	Create(ctx context.Context, tour *models.Tour) (*models.Tour, error)
	Update(ctx context.Context, id string, tour *models.Tour) (*models.Tour, error)
	Delete(ctx context.Context, id string) error
}

// TourHandler handles tour resource requests
type TourHandler struct {
	service TourServiceInterface
	env     string
}

func NewTourHandler(service TourServiceInterface, env string) *TourHandler {
	return &TourHandler{service: service, env: env}
}

// TourRequest represents the request body for creating or updating a tour
type TourRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=255"`
	Duration     int     `json:"duration" validate:"required,gt=0"`
	MaxGroupSize int     `json:"maxGroupSize" validate:"required,gt=0"`
	Difficulty   string  `json:"difficulty" validate:"required,oneof=easy medium difficult"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Summary      string  `json:"summary" validate:"required"`
	Description  string  `json:"description"`
}

func (h *TourHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	tours, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteUnexpected(w, h.env, err)
		return
	}

	pkghttp.WriteData(w, http.StatusOK, map[string]any{
		"tours":   tours,
		"results": len(tours),
	})
}

func (h *TourHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tour, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "No tour found with that ID")
			return
		}
		pkghttp.WriteUnexpected(w, h.env, err)
		return
	}

	pkghttp.WriteData(w, http.StatusOK, map[string]any{"tour": tour})
}

func (h *TourHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TourRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), tourFromRequest(&req))
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			pkghttp.WriteBadRequest(w, "Duplicate field value: name. Please use another value!")
			return
		}
		pkghttp.WriteUnexpected(w, h.env, err)
		return
	}

	pkghttp.WriteData(w, http.StatusCreated, map[string]any{"tour": created})
}

func (h *TourHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req TourRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), id, tourFromRequest(&req))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "No tour found with that ID")
			return
		}
		pkghttp.WriteUnexpected(w, h.env, err)
		return
	}

	pkghttp.WriteData(w, http.StatusOK, map[string]any{"tour": updated})
}

func (h *TourHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "No tour found with that ID")
			return
		}
		pkghttp.WriteUnexpected(w, h.env, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func tourFromRequest(req *TourRequest) *models.Tour {
	return &models.Tour{
		Name:         req.Name,
		Duration:     req.Duration,
		MaxGroupSize: req.MaxGroupSize,
		Difficulty:   req.Difficulty,
		Price:        req.Price,
		Summary:      req.Summary,
		Description:  req.Description,
	}
}
