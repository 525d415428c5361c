package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medicore/hms-api/internal/cache"
	"github.com/medicore/hms-api/internal/email"
	"github.com/medicore/hms-api/internal/model"
	"github.com/medicore/hms-api/internal/repository"
	apperrors "github.com/medicore/hms-api/pkg/errors"
	"github.com/medicore/hms-api/pkg/metrics"
	"github.com/medicore/hms-api/pkg/validator"
)

const openSlotsTTL = 30 * time.Second

type Service struct {
	repo             repository.AppointmentRepository
	availabilityRepo repository.AvailabilityRepository
	userRepo         repository.UserRepository
	emailSvc         email.Service
	cache            cache.Cache
	metrics          *metrics.Metrics
}

func NewService(
	repo repository.AppointmentRepository,
	availabilityRepo repository.AvailabilityRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
	cacheSvc cache.Cache,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:             repo,
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
		emailSvc:         emailSvc,
		cache:            cacheSvc,
		metrics:          m,
	}
}

func openSlotsKey(doctorID uuid.UUID, date string) string {
	return fmt.Sprintf("open_slots:%s:%s", doctorID, date)
}

// OpenSlots computes the bookable start times for a doctor on a date:
// declared availability minus times already claimed by a Booked appointment.
// Past dates always yield an empty list.
func (s *Service) OpenSlots(ctx context.Context, doctorID uuid.UUID, date string) (*model.OpenSlots, error) {
	past, err := validator.IsPastDate(date, time.Now())
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	result := &model.OpenSlots{DoctorID: doctorID, Date: date, Slots: []string{}}
	if past {
		return result, nil
	}

	if s.cache != nil {
		var cached []string
		hit, err := s.cache.Get(ctx, openSlotsKey(doctorID, date), &cached)
		if err != nil {
			log.Warn().Err(err).Msg("open-slot cache read failed")
		} else if hit {
			s.countCacheHit()
			result.Slots = cached
			return result, nil
		}
	}
	s.countCacheMiss()

	slots, err := s.computeOpenSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	result.Slots = slots

	if s.cache != nil {
		if err := s.cache.Set(ctx, openSlotsKey(doctorID, date), slots, openSlotsTTL); err != nil {
			log.Warn().Err(err).Msg("open-slot cache write failed")
		}
	}
	return result, nil
}

func (s *Service) computeOpenSlots(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	declared, err := s.availabilityRepo.ListStartTimes(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}

	booked, err := s.repo.ListBookedTimes(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked times: %w", err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	open := []string{}
	for _, t := range declared {
		if _, ok := taken[t]; !ok {
			open = append(open, t)
		}
	}
	return open, nil
}

// Book claims an open slot for the patient. The requested time must be a
// declared, unconsumed availability slot; the unique constraint on
// (doctor, date, time) settles concurrent claims.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	past, err := validator.IsPastDate(req.Date, time.Now())
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	if past {
		s.countConflict("past_date")
		return nil, apperrors.BadRequest("appointments must be booked for today or a future date", nil)
	}
	if _, err := validator.ParseTime(req.Time); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	// Check against live data, not the cache: a stale snapshot must never
	// reject or admit a booking.
	open, err := s.computeOpenSlots(ctx, req.DoctorID, req.Date)
	if err != nil {
		return nil, err
	}
	available := false
	for _, t := range open {
		if t == req.Time {
			available = true
			break
		}
	}
	if !available {
		s.countConflict("no_open_slot")
		return nil, apperrors.Conflict("the doctor is not available at the requested time", nil)
	}

	apt := &model.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    model.AppointmentStatusBooked,
	}
	if err := s.repo.Create(ctx, apt); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			s.countConflict("slot_taken")
		}
		return nil, err
	}

	s.invalidateOpenSlots(ctx, req.DoctorID, req.Date)
	if s.metrics != nil {
		s.metrics.BookingsTotal.Inc()
	}
	s.notifyBooking(ctx, apt)

	return apt, nil
}

// Get returns an appointment, restricted to its participants. Admins can
// read any appointment.
func (s *Service) Get(ctx context.Context, id, actorID uuid.UUID, role string) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != model.RoleAdmin && apt.PatientID != actorID && apt.DoctorID != actorID {
		return nil, apperrors.Forbidden("not a participant of this appointment", nil)
	}
	return apt, nil
}

// Cancel transitions a Booked appointment to Cancelled. Only the patient
// who booked it or the assigned doctor may cancel.
func (s *Service) Cancel(ctx context.Context, id, actorID uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if apt.PatientID != actorID && apt.DoctorID != actorID {
		return apperrors.Forbidden("not a participant of this appointment", nil)
	}
	if apt.Status == model.AppointmentStatusCancelled {
		return apperrors.Conflict("appointment is already cancelled", nil)
	}
	if apt.Status == model.AppointmentStatusCompleted {
		return apperrors.Conflict("cannot cancel a completed appointment", nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, model.AppointmentStatusCancelled); err != nil {
		return err
	}

	s.invalidateOpenSlots(ctx, apt.DoctorID, apt.Date)
	if s.metrics != nil {
		s.metrics.CancellationsTotal.Inc()
	}
	s.notifyCancellation(ctx, apt)

	return nil
}

// Complete marks a Booked appointment Completed. Only the assigned doctor
// may complete it.
func (s *Service) Complete(ctx context.Context, id, doctorID uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if apt.DoctorID != doctorID {
		return apperrors.Forbidden("appointment belongs to another doctor", nil)
	}
	if apt.Status != model.AppointmentStatusBooked {
		return apperrors.Conflict(fmt.Sprintf("cannot complete a %s appointment", apt.Status), nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, model.AppointmentStatusCompleted); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.CompletionsTotal.Inc()
	}
	return nil
}

// PatientDashboard splits the patient's appointments into upcoming Booked
// visits and everything else.
func (s *Service) PatientDashboard(ctx context.Context, patientID uuid.UUID) (*model.PatientDashboard, error) {
	appointments, err := s.repo.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(model.DateLayout)
	dashboard := &model.PatientDashboard{
		Upcoming: []*model.PatientAppointment{},
		History:  []*model.PatientAppointment{},
	}
	for _, apt := range appointments {
		if apt.Status == model.AppointmentStatusBooked && apt.Date >= today {
			dashboard.Upcoming = append(dashboard.Upcoming, apt)
		} else {
			dashboard.History = append(dashboard.History, apt)
		}
	}
	return dashboard, nil
}

func (s *Service) invalidateOpenSlots(ctx context.Context, doctorID uuid.UUID, date string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, openSlotsKey(doctorID, date)); err != nil {
		log.Warn().Err(err).Msg("open-slot cache invalidation failed")
	}
}

func (s *Service) notifyBooking(ctx context.Context, apt *model.Appointment) {
	if s.emailSvc == nil {
		return
	}
	patient, doctor, err := s.participants(ctx, apt)
	if err != nil {
		log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("booking notification skipped")
		return
	}
	if err := s.emailSvc.SendBookingConfirmation(ctx, patient.ContactInfo, doctor.Name, apt.Date, apt.Time); err != nil {
		log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("booking notification failed")
	}
}

func (s *Service) notifyCancellation(ctx context.Context, apt *model.Appointment) {
	if s.emailSvc == nil {
		return
	}
	patient, doctor, err := s.participants(ctx, apt)
	if err != nil {
		log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("cancellation notification skipped")
		return
	}
	if err := s.emailSvc.SendCancellation(ctx, patient.ContactInfo, doctor.Name, apt.Date, apt.Time); err != nil {
		log.Warn().Err(err).Str("appointment_id", apt.ID.String()).Msg("cancellation notification failed")
	}
}

func (s *Service) participants(ctx context.Context, apt *model.Appointment) (*model.User, *model.User, error) {
	patient, err := s.userRepo.Get(ctx, apt.PatientID)
	if err != nil {
		return nil, nil, err
	}
	doctor, err := s.userRepo.Get(ctx, apt.DoctorID)
	if err != nil {
		return nil, nil, err
	}
	return patient, doctor, nil
}

func (s *Service) countConflict(reason string) {
	if s.metrics != nil {
		s.metrics.BookingConflicts.WithLabelValues(reason).Inc()
	}
}

func (s *Service) countCacheHit() {
	if s.metrics != nil {
		s.metrics.OpenSlotCacheHits.Inc()
	}
}

func (s *Service) countCacheMiss() {
	if s.metrics != nil {
		s.metrics.OpenSlotCacheMisses.Inc()
	}
}
