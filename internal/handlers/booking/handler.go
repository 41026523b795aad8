package booking

import (
	"net/http"
	"strconv"
	"time"

	"roost/infras/otel"
	"roost/internal/domains/booking/model/dto"
	"roost/internal/domains/booking/service"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"
	"roost/shared/validator"
	"roost/transport/http/middleware"
	"roost/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Booking
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Booking, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	// The nested routes stay flat so they can coexist with the /rooms and
	// /experiences subrouters mounted by the other handlers.
	router.With(handler.middleware.Auth).Post("/rooms/{id}/bookings", handler.CreateRoomBooking)
	router.With(handler.middleware.Auth).Get("/rooms/{id}/bookings", handler.GetRoomCalendar)
	router.With(handler.middleware.Auth).Post("/experiences/{id}/bookings", handler.CreateExperienceBooking)
	router.With(handler.middleware.Auth).Get("/experiences/{id}/bookings", handler.GetExperienceCalendar)

	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)
		routerGroup.Get("/me", handler.GetMyBookings)
		routerGroup.Delete("/{id}", handler.CancelBooking)
	})
}

// CreateRoomBooking books a room for a span of nights.
// @Summary Book a room
// @Description Reserve a room from check-in through check-out. The first request to commit wins a contested span; later ones are rejected.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.CreateRoomBookingRequest true "Create Room Booking Request"
// @Success 201 {object} dto.BookingResponse "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms/{id}/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateRoomBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoomBooking")
	defer scope.End()

	roomID := chi.URLParam(request, constant.RequestParamID)

	req := dto.CreateRoomBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateRoomBooking(ctx, roomID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetRoomCalendar lists a room's bookings for one month.
// @Summary Get a room's booking calendar
// @Description List bookings for the given month. The room's owner sees every booking; other users only see their own.
// @Tags Booking
// @Produce json
// @Param id path string true "Room ID"
// @Param year query int false "Calendar year, defaults to the current year"
// @Param month query int false "Calendar month (1-12), defaults to the current month"
// @Success 200 {object} dto.CalendarResponse "Bookings for the month"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetRoomCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomCalendar")
	defer scope.End()

	roomID := chi.URLParam(r, constant.RequestParamID)

	year, month, err := parseCalendarParams(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse calendar params")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ListRoomBookings(ctx, roomID, year, month)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateExperienceBooking books a seat on an experience session.
// @Summary Book an experience
// @Description Reserve a seat at the experience's scheduled start time. The first request to commit wins a contested slot; later ones are rejected.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Experience ID"
// @Param request body dto.CreateExperienceBookingRequest true "Create Experience Booking Request"
// @Success 201 {object} dto.BookingResponse "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/experiences/{id}/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateExperienceBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExperienceBooking")
	defer scope.End()

	experienceID := chi.URLParam(request, constant.RequestParamID)

	req := dto.CreateExperienceBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CreateExperienceBooking(ctx, experienceID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create experience booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetExperienceCalendar lists an experience's bookings for one month.
// @Summary Get an experience's booking calendar
// @Description List bookings for the given month. The experience's host sees every booking; other users only see their own.
// @Tags Booking
// @Produce json
// @Param id path string true "Experience ID"
// @Param year query int false "Calendar year, defaults to the current year"
// @Param month query int false "Calendar month (1-12), defaults to the current month"
// @Success 200 {object} dto.CalendarResponse "Bookings for the month"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/experiences/{id}/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetExperienceCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExperienceCalendar")
	defer scope.End()

	experienceID := chi.URLParam(r, constant.RequestParamID)

	year, month, err := parseCalendarParams(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse calendar params")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.ListExperienceBookings(ctx, experienceID, year, month)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get experience calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyBookings lists the requester's own bookings across all rooms and experiences.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetBookingsResponse "List of bookings"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetMyBookings(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CancelBooking cancels a booking. Only the booking's owner may cancel.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// parseCalendarParams reads the year and month query params. An absent param
// comes back zero; the service fills each one from the clock independently
// and clamps pairs in the past to the current month.
func parseCalendarParams(r *http.Request) (int, time.Month, error) {
	var (
		year  int
		month int
		err   error
	)

	if raw := r.URL.Query().Get(constant.RequestParamYear); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil || year < 0 {
			return 0, 0, failure.BadRequestFromString("year must be a non-negative integer")
		}
	}

	if raw := r.URL.Query().Get(constant.RequestParamMonth); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return 0, 0, failure.BadRequestFromString("month must be an integer between 1 and 12")
		}
	}

	return year, time.Month(month), nil
}
