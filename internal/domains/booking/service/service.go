package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"
	"villa/config"
	"villa/infras/otel"
	"villa/internal/domains/booking/model"
	"villa/internal/domains/booking/model/dto"
	"villa/internal/domains/booking/repository"
	promotionService "villa/internal/domains/promotion/service"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/event"
	"villa/shared/failure"
	"villa/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

const (
	errBookingNotFound = "booking not found"
	errBookingOverlap  = "the selected dates overlap a confirmed booking"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	ListMine(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetForUser(ctx context.Context, id string) (dto.BookingResponse, error)
	CancelMine(ctx context.Context, id string) error
	Availability(ctx context.Context, startDate, endDate string) (dto.AvailabilityResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	CreateManual(ctx context.Context, req dto.AdminCreateBookingRequest) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
	SendReminders(ctx context.Context, day time.Time) (int, error)
}

type serviceImpl struct {
	repo       repository.Booking
	promotions promotionService.Promotion
	publisher  event.Publisher
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	promotions promotionService.Promotion,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		promotions: promotions,
		publisher:  publisher,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Create books the villa as the caller. Anonymous callers book as guest.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var userID *string

	actor := constant.ContextGuest

	if id, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && id != constant.Empty {
		userID = &id
		actor = id
	}

	booking, err := s.build(ctx, req, userID, actor)
	if err != nil {
		return res, err
	}

	return s.insert(ctx, booking)
}

func (s *serviceImpl) CreateManual(ctx context.Context, req dto.AdminCreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateManual")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.build(ctx, req.CreateBookingRequest, req.UserID, actor)
	if err != nil {
		return res, err
	}

	if req.Status != constant.Empty {
		booking.Status = req.Status
	}

	if booking.Status == model.StatusConfirmed {
		if err = s.ensureNoOverlap(ctx, booking.StartDate, booking.EndDate, constant.Empty); err != nil {
			return res, err
		}
	}

	return s.insert(ctx, booking)
}

func (s *serviceImpl) build(ctx context.Context, req dto.CreateBookingRequest, userID *string, actor string) (model.Booking, error) {
	start, end, err := dto.ParseRange(req.StartDate, req.EndDate)
	if err != nil {
		return model.Booking{}, failure.BadRequest(err)
	}

	if s.cfg.Villa.MaxGuests > 0 && req.Guests > s.cfg.Villa.MaxGuests {
		return model.Booking{}, failure.BadRequestFromString(fmt.Sprintf("guests must be at most %d", s.cfg.Villa.MaxGuests))
	}

	booking := req.ToModel(userID, actor, start, end)

	if req.PromotionCode != nil && *req.PromotionCode != constant.Empty {
		promotion, err := s.promotions.ValidateForDate(ctx, *req.PromotionCode, start)
		if err != nil {
			return model.Booking{}, err
		}

		booking.PromotionCode = &promotion.Code
	} else {
		booking.PromotionCode = nil
	}

	return booking, nil
}

func (s *serviceImpl) insert(ctx context.Context, booking model.Booking) (res dto.BookingResponse, err error) {
	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	s.publish(ctx, event.KindBookingCreated, booking, constant.Empty)
	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) ListMine(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{model.FilterByUser(userID)},
	}

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	return cache.Remember(ctx, s.cache, shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter), s.cfg.Cache.TTL, func() (page dto.GetBookingsResponse, err error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count bookings")

			return page, fmt.Errorf("failed to count bookings: %w", err)
		}

		bookings, err := s.repo.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get bookings")

			return page, fmt.Errorf("failed to get bookings: %w", err)
		}

		page.FromModels(bookings, total, params.Limit)

		return page, nil
	})
}

// GetForUser returns a booking to its owner or to an admin.
func (s *serviceImpl) GetForUser(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetForUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = cache.Remember(ctx, s.cache, shared.BuildCacheKey(cacheGetBooking, id), s.cfg.Cache.TTL, func() (found dto.BookingResponse, err error) {
		booking, err := s.get(ctx, id)
		if err != nil {
			return found, err
		}

		found.FromModel(booking)

		return found, nil
	})
	if err != nil {
		return res, err
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin && (res.UserID == nil || *res.UserID != userID) {
		return dto.BookingResponse{}, failure.ResourceRestrictedError
	}

	return res, nil
}

// CancelMine lets the owner cancel a pending or confirmed booking.
func (s *serviceImpl) CancelMine(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if !booking.OwnedBy(userID) {
		return failure.ResourceRestrictedError
	}

	return s.transition(ctx, booking, model.StatusCancelled, userID)
}

func (s *serviceImpl) Availability(ctx context.Context, startDate, endDate string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := dto.ParseRange(startDate, endDate)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	params := gDto.QueryParams{SortBy: model.FieldStartDate, SortDir: gDto.SortDirAsc}

	conflicts, err := s.repo.GetAll(ctx, params, model.FilterOverlapping(start, end, constant.Empty), model.FieldStartDate, model.FieldEndDate)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	res.FromModels(conflicts)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	changes, err := req.ToChanges(current)
	if err != nil {
		return failure.BadRequest(err)
	}

	if changes.Guests != nil && s.cfg.Villa.MaxGuests > 0 && *changes.Guests > s.cfg.Villa.MaxGuests {
		return failure.BadRequestFromString(fmt.Sprintf("guests must be at most %d", s.cfg.Villa.MaxGuests))
	}

	if current.Status == model.StatusConfirmed && (changes.StartDate != nil || changes.EndDate != nil) {
		start, end := current.StartDate, current.EndDate
		if changes.StartDate != nil {
			start = *changes.StartDate
		}

		if changes.EndDate != nil {
			end = *changes.EndDate
		}

		if err = s.ensureNoOverlap(ctx, start, end, id); err != nil {
			return err
		}
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, shared.TransformFields(changes, actor), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Status.IsValid() {
		return failure.BadRequestFromString("invalid booking status")
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	return s.transition(ctx, current, req.Status, actor)
}

// transition moves booking to next. Same-state requests are a no-op.
func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, next model.Status, actor string) error {
	if booking.Status == next {
		return nil
	}

	if !booking.Status.CanTransition(next) {
		return failure.Conflict(fmt.Sprintf("cannot change booking from %s to %s", booking.Status, next))
	}

	if next == model.StatusConfirmed {
		if err := s.ensureNoOverlap(ctx, booking.StartDate, booking.EndDate, booking.ID); err != nil {
			return err
		}
	}

	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)

	if err := s.repo.Update(ctx, shared.TransformFields(dto.StatusChange{Status: next}, actor), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	previous := booking.Status
	booking.Status = next

	s.publish(ctx, event.KindBookingStatusChanged, booking, previous)
	s.invalidate(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking existence")

		return fmt.Errorf("failed to check booking existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errBookingNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// SendReminders publishes a reminder for every confirmed booking that starts
// on the calendar day of day, and returns how many were published.
func (s *serviceImpl) SendReminders(ctx context.Context, day time.Time) (sent int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendReminders")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, to := timezone.Day(day)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  append([]any{model.FilterByStatus(model.StatusConfirmed)}, model.FilterStartingBetween(from, to)...),
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings due for reminder")

		return 0, fmt.Errorf("failed to get bookings due for reminder: %w", err)
	}

	for _, booking := range bookings {
		if err := s.publisher.Publish(ctx, event.KindBookingReminder, booking.ID, toPayload(booking, constant.Empty)); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to publish booking reminder")

			continue
		}

		sent++
	}

	return sent, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(errBookingNotFound)
	}

	return booking, nil
}

func (s *serviceImpl) ensureNoOverlap(ctx context.Context, start, end time.Time, excludeID string) error {
	overlap, err := s.repo.Overlaps(ctx, start, end, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking overlap")

		return fmt.Errorf("failed to check booking overlap: %w", err)
	}

	if overlap {
		return failure.Conflict(errBookingOverlap)
	}

	return nil
}

func (s *serviceImpl) publish(ctx context.Context, kind event.Kind, booking model.Booking, previous model.Status) {
	if err := s.publisher.Publish(ctx, kind, booking.ID, toPayload(booking, previous)); err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Str("bookingID", booking.ID).Msg("failed to publish booking event")
	}
}

func toPayload(booking model.Booking, previous model.Status) event.BookingPayload {
	payload := event.BookingPayload{
		BookingID:      booking.ID,
		GuestName:      booking.GuestName,
		GuestEmail:     booking.GuestEmail,
		StartDate:      timezone.FormatISO(booking.StartDate),
		EndDate:        timezone.FormatISO(booking.EndDate),
		Guests:         booking.Guests,
		Status:         booking.Status.String(),
		PreviousStatus: previous.String(),
	}

	if booking.UserID != nil {
		payload.UserID = *booking.UserID
	}

	if booking.GuestPhone != nil {
		payload.GuestPhone = *booking.GuestPhone
	}

	return payload
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()
}
