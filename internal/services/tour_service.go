package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/wanderly/trailhead/internal/models"
)

// TourRepository defines the persistence operations for tours.
type TourRepository interface {
	GetByID(ctx context.Context, id string) (*models.Tour, error)
	List(ctx context.Context, limit, offset int) ([]*models.Tour, error)
	Create(ctx context.Context, tour *models.Tour) (*models.Tour, error)
	Update(ctx context.Context, id string, tour *models.Tour) (*models.Tour, error)
	Delete(ctx context.Context, id string) error
}

type TourService struct {
	repo   TourRepository
	logger *slog.Logger
}

func NewTourService(repo TourRepository, logger *slog.Logger) *TourService {
	return &TourService{repo: repo, logger: logger}
}

func (s *TourService) Get(ctx context.Context, id string) (*models.Tour, error) {
	tour, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get tour", slog.String("tour_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return tour, nil
}

func (s *TourService) List(ctx context.Context, limit, offset int) ([]*models.Tour, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	tours, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list tours", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return tours, nil
}

func (s *TourService) Create(ctx context.Context, tour *models.Tour) (*models.Tour, error) {
	created, err := s.repo.Create(ctx, tour)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create tour", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("tour created", slog.String("tour_id", created.ID))
	return created, nil
}

func (s *TourService) Update(ctx context.Context, id string, tour *models.Tour) (*models.Tour, error) {
	updated, err := s.repo.Update(ctx, id, tour)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to update tour", slog.String("tour_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return updated, nil
}

func (s *TourService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete tour", slog.String("tour_id", id), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("tour deleted", slog.String("tour_id", id))
	return nil
}
