package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roost/config"
	"roost/infras/kafka"
	"roost/infras/otel"
	"roost/internal/domains/booking/model"
	"roost/internal/domains/booking/model/dto"
	"roost/internal/domains/booking/repository"
	expModel "roost/internal/domains/experience/model"
	expRepo "roost/internal/domains/experience/repository"
	roomModel "roost/internal/domains/room/model"
	roomRepo "roost/internal/domains/room/repository"
	"roost/shared"
	"roost/shared/cache"
	"roost/shared/calendar"
	"roost/shared/clock"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"
	"roost/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking      = "booking:get"
	cacheGetAllBooking   = "booking:gets"
	cacheCountBooking    = "booking:count"
	cacheCalendarBooking = "booking:calendar"
)

type Booking interface {
	CreateRoomBooking(ctx context.Context, roomID string, req dto.CreateRoomBookingRequest) (dto.BookingResponse, error)
	CreateExperienceBooking(ctx context.Context, experienceID string, req dto.CreateExperienceBookingRequest) (dto.BookingResponse, error)
	ListRoomBookings(ctx context.Context, roomID string, year int, month time.Month) (dto.CalendarResponse, error)
	ListExperienceBookings(ctx context.Context, experienceID string, year int, month time.Month) (dto.CalendarResponse, error)
	GetMyBookings(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	expRepo  expRepo.Experience
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	clock    clock.Clock
	producer kafka.Client
}

func New(repo repository.Booking, roomRepo roomRepo.Room, expRepo expRepo.Experience, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock clock.Clock, producer kafka.Client) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		expRepo:  expRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		clock:    clock,
		producer: producer,
	}
}

func (s *serviceImpl) CreateRoomBooking(ctx context.Context, roomID string, req dto.CreateRoomBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRoomBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, err
	}

	if err = s.checkRoomDates(checkIn, checkOut); err != nil {
		return res, err
	}

	booking := model.NewRoomBooking(user, roomID, checkIn, checkOut, req.Guests, s.clock.Now())

	if err = s.repo.CreateRoomBooking(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return res, failure.SlotUnavailable("those dates are already taken") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room booking")

		return res, fmt.Errorf("failed to create room booking: %w", err)
	}

	res.FromModel(booking)

	s.afterCommit(ctx, booking, roomID)

	return res, nil
}

func (s *serviceImpl) CreateExperienceBooking(ctx context.Context, experienceID string, req dto.CreateExperienceBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateExperienceBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	experience, err := s.expRepo.Get(ctx, shared.FilterByID(experienceID, expModel.FieldID, expModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get experience")

		return res, fmt.Errorf("failed to get experience: %w", err)
	}

	if experience.ID == constant.Empty {
		return res, failure.NotFound("experience not found") // nolint:wrapcheck
	}

	instant, err := req.Instant()
	if err != nil {
		return res, err
	}

	if instant.Format(constant.TimeOfDayFormat) != experience.Start {
		return res, failure.ScheduleMismatch(fmt.Sprintf("this experience starts at %s", experience.Start)) // nolint:wrapcheck
	}

	booking := model.NewExperienceBooking(user, experienceID, instant, req.Guests, s.clock.Now())

	if err = s.repo.CreateExperienceBooking(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return res, failure.SlotUnavailable("that time slot is already taken") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create experience booking")

		return res, fmt.Errorf("failed to create experience booking: %w", err)
	}

	res.FromModel(booking)

	s.afterCommit(ctx, booking, experienceID)

	return res, nil
}

// checkRoomDates applies the temporal rules in order: each date must not
// precede today, and the span must cover at least one night.
func (s *serviceImpl) checkRoomDates(checkIn, checkOut time.Time) error {
	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timezone.GetLocation())

	if checkIn.Before(today) {
		return failure.InvalidDateRange("check_in can't be in the past") // nolint:wrapcheck
	}

	if checkOut.Before(today) {
		return failure.InvalidDateRange("check_out can't be in the past") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return failure.InvalidDateRange("check_out should be later than check_in") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) ListRoomBookings(ctx context.Context, roomID string, year int, month time.Month) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListRoomBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	scp := model.ScopeFor(user, room.OwnerID)

	return s.listCalendar(ctx, model.FieldRoomID, roomID, model.KindRoom, model.FieldCheckIn, year, month, scp, user)
}

func (s *serviceImpl) ListExperienceBookings(ctx context.Context, experienceID string, year int, month time.Month) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListExperienceBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	experience, err := s.expRepo.Get(ctx, shared.FilterByID(experienceID, expModel.FieldID, expModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get experience")

		return res, fmt.Errorf("failed to get experience: %w", err)
	}

	if experience.ID == constant.Empty {
		return res, failure.NotFound("experience not found") // nolint:wrapcheck
	}

	scp := model.ScopeFor(user, experience.HostID)

	return s.listCalendar(ctx, model.FieldExperienceID, experienceID, model.KindExperience, model.FieldExperienceTime, year, month, scp, user)
}

// listCalendar returns one month of a resource's bookings. The window is
// half-open and keyed on the slot's start column, so a stay that begins in a
// prior month and runs into the window is not listed. An absent year or month
// falls back to the clock's current value, each independently.
func (s *serviceImpl) listCalendar(ctx context.Context, resourceField, resourceID, kind, slotField string, year int, month time.Month, scp model.Scope, user string) (res dto.CalendarResponse, err error) {
	now := s.clock.Now()

	if year == 0 {
		year = now.Year()
	}

	if month == 0 {
		month = now.Month()
	}

	windowStart, windowEnd := calendar.Window(year, month, now)

	cacheKey := shared.BuildCacheKey(cacheCalendarBooking, resourceID, timezone.Format(windowStart, constant.DateOnlyFormat), scp.String(), user)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking calendar")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Table: model.TableName, Field: model.FieldKind, Operator: gDto.FilterOperatorEq, Value: kind},
			gDto.Filter{Table: model.TableName, Field: resourceField, Operator: gDto.FilterOperatorEq, Value: resourceID},
			gDto.Filter{Table: model.TableName, Field: slotField, ArgName: "window_start", Operator: gDto.FilterOperatorGreaterEq, Value: windowStart},
			gDto.Filter{Table: model.TableName, Field: slotField, ArgName: "window_end", Operator: gDto.FilterOperatorLess, Value: windowEnd},
		},
	}

	if scp == model.ScopeSelf {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldUserID, ArgName: "requester", Operator: gDto.FilterOperatorEq, Value: user,
		})
	}

	params := gDto.QueryParams{
		SortBy:  fmt.Sprintf("%s.%s", model.TableName, slotField),
		SortDir: "ASC",
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking calendar")

		return res, fmt.Errorf("failed to get booking calendar: %w", err)
	}

	res.FromModels(models, windowStart, scp)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking calendar to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMyBookings(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Table: model.TableName, Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user},
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllBooking, user), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.UserID != user {
		return failure.Forbidden("only the booking owner can cancel it") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheCalendarBooking)
	}()

	return nil
}

// afterCommit invalidates read caches and publishes the created event. Both
// run off the request path; a slow broker never delays the response.
func (s *serviceImpl) afterCommit(ctx context.Context, booking model.Booking, resourceID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheCalendarBooking)

		event := dto.BookingCreatedEvent{
			BookingID:  booking.ID,
			Kind:       booking.Kind,
			ResourceID: resourceID,
			UserID:     booking.UserID,
			Guests:     booking.Guests,
			OccurredAt: timezone.Format(booking.CreatedAt, constant.DateFormat),
		}

		if err := s.producer.SendMessages(c, s.cfg.Kafka.Topics.BookingCreated, kafka.Message{Key: booking.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to publish booking created event")
		}
	}()
}
