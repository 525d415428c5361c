package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medicore/hms-api/internal/cache"
	"github.com/medicore/hms-api/internal/model"
	"github.com/medicore/hms-api/internal/repository"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/validator"
)

type Service struct {
	repo  repository.AvailabilityRepository
	cache cache.Cache
}

func NewService(repo repository.AvailabilityRepository, cacheSvc cache.Cache) *Service {
	return &Service{repo: repo, cache: cacheSvc}
}

// Declare records a new availability slot for the doctor. The slot must be
// today or later and its start must precede its end. Re-declaring the same
// (date, start) pair is a conflict.
func (s *Service) Declare(ctx context.Context, doctorID uuid.UUID, req *model.CreateAvailabilityRequest) (*model.AvailabilitySlot, error) {
	past, err := validator.IsPastDate(req.Date, time.Now())
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	if past {
		return nil, apperrors.BadRequest("cannot declare availability for a past date", nil)
	}

	start, err := validator.ParseTime(req.StartTime)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	end, err := validator.ParseTime(req.EndTime)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	if !start.Before(end) {
		return nil, apperrors.BadRequest("start time must be before end time", nil)
	}

	slot := &model.AvailabilitySlot{
		DoctorID:  doctorID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, err
	}

	// A fresh slot widens the open set immediately.
	if s.cache != nil {
		key := fmt.Sprintf("open_slots:%s:%s", doctorID, req.Date)
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Msg("open-slot cache invalidation failed")
		}
	}
	return slot, nil
}

// ListForDoctor returns the doctor's declared slots between from and to,
// inclusive. Defaults to the next seven days when the range is empty.
func (s *Service) ListForDoctor(ctx context.Context, doctorID uuid.UUID, from, to string) ([]*model.AvailabilitySlot, error) {
	now := time.Now()
	if from == "" {
		from = now.Format(model.DateLayout)
	} else if _, err := validator.ParseDate(from); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	if to == "" {
		to = now.AddDate(0, 0, 6).Format(model.DateLayout)
	} else if _, err := validator.ParseDate(to); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	if to < from {
		return nil, apperrors.BadRequest("range end precedes range start", nil)
	}
	return s.repo.ListForDoctor(ctx, doctorID, from, to)
}
