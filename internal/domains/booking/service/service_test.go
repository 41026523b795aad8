package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roost/config"
	kafkaMocks "roost/infras/kafka/mocks"
	"roost/infras/otel/mocks"
	bookingMocks "roost/internal/domains/booking/mocks"
	"roost/internal/domains/booking/model"
	"roost/internal/domains/booking/model/dto"
	"roost/internal/domains/booking/repository"
	"roost/internal/domains/booking/service"
	expMocks "roost/internal/domains/experience/mocks"
	expModel "roost/internal/domains/experience/model"
	roomMocks "roost/internal/domains/room/mocks"
	roomModel "roost/internal/domains/room/model"
	cacheMocks "roost/shared/cache/mocks"
	"roost/shared/clock"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"
	"roost/shared/timezone"
)

type fixture struct {
	svc      service.Booking
	repo     *bookingMocks.MockBooking
	roomRepo *roomMocks.MockRoom
	expRepo  *expMocks.MockExperience
	cache    *cacheMocks.MockRedisCache
}

// All tests run against a clock frozen at 2024-06-15 noon.
func newBookingService(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockExpRepo := expMocks.NewMockExperience(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockProducer := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingCreated = "booking.created"

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockProducer.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, timezone.GetLocation())

	svc := service.New(mockRepo, mockRoomRepo, mockExpRepo, cfg, mockCache, mockOtel, clock.Fixed(now), mockProducer)

	return fixture{svc: svc, repo: mockRepo, roomRepo: mockRoomRepo, expRepo: mockExpRepo, cache: mockCache}
}

func guestContext(user string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, user)
}

func TestBookingService_CreateRoomBooking(t *testing.T) {
	room := roomModel.Room{ID: "room-id", OwnerID: "owner-id"}

	t.Run("successful booking", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		f.repo.EXPECT().
			CreateRoomBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, model.KindRoom, booking.Kind)
				assert.Equal(t, "guest-id", booking.UserID)
				assert.True(t, booking.RoomID.Valid)
				assert.False(t, booking.ExperienceTime.Valid)
				return nil
			})

		res, err := f.svc.CreateRoomBooking(guestContext("guest-id"), "room-id", dto.CreateRoomBookingRequest{
			CheckIn:  "2024-07-01",
			CheckOut: "2024-07-05",
			Guests:   2,
		})
		assert.NoError(t, err)
		assert.Equal(t, model.KindRoom, res.Kind)
		assert.Equal(t, "2024-07-01", res.CheckIn)
	})

	t.Run("room not found", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := f.svc.CreateRoomBooking(guestContext("guest-id"), "missing-id", dto.CreateRoomBookingRequest{
			CheckIn:  "2024-07-01",
			CheckOut: "2024-07-05",
			Guests:   2,
		})
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		_, err := f.svc.CreateRoomBooking(guestContext("guest-id"), "room-id", dto.CreateRoomBookingRequest{
			CheckIn:  "July 1st",
			CheckOut: "2024-07-05",
			Guests:   2,
		})
		assert.Error(t, err)
		assert.Equal(t, failure.KindMalformedInput, failure.GetKind(err))
	})

	t.Run("check out before check in", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		_, err := f.svc.CreateRoomBooking(guestContext("guest-id"), "room-id", dto.CreateRoomBookingRequest{
			CheckIn:  "2024-07-05",
			CheckOut: "2024-07-01",
			Guests:   2,
		})
		assert.Error(t, err)
		assert.Equal(t, failure.KindInvalidDateRange, failure.GetKind(err))
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("dates in the past", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		_, err := f.svc.CreateRoomBooking(guestContext("guest-id"), "room-id", dto.CreateRoomBookingRequest{
			CheckIn:  "2024-06-01",
			CheckOut: "2024-06-20",
			Guests:   2,
		})
		assert.Error(t, err)
		assert.Equal(t, failure.KindInvalidDateRange, failure.GetKind(err))
	})

	t.Run("slot taken maps to conflict", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		f.repo.EXPECT().
			CreateRoomBooking(gomock.Any(), gomock.Any()).
			Return(repository.ErrSlotTaken)

		_, err := f.svc.CreateRoomBooking(guestContext("guest-id"), "room-id", dto.CreateRoomBookingRequest{
			CheckIn:  "2024-07-01",
			CheckOut: "2024-07-05",
			Guests:   2,
		})
		assert.Error(t, err)
		assert.Equal(t, failure.KindSlotUnavailable, failure.GetKind(err))
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_CreateExperienceBooking(t *testing.T) {
	experience := expModel.Experience{ID: "exp-id", HostID: "host-id", Start: "14:00", End: "16:00"}

	t.Run("successful booking", func(t *testing.T) {
		f := newBookingService(t)

		f.expRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(experience, nil)

		f.repo.EXPECT().
			CreateExperienceBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, model.KindExperience, booking.Kind)
				assert.True(t, booking.ExperienceTime.Valid)
				assert.False(t, booking.CheckIn.Valid)
				return nil
			})

		res, err := f.svc.CreateExperienceBooking(guestContext("guest-id"), "exp-id", dto.CreateExperienceBookingRequest{
			ExperienceTime: "2024-07-10T14:00",
			Guests:         3,
		})
		assert.NoError(t, err)
		assert.Equal(t, model.KindExperience, res.Kind)
	})

	t.Run("time of day mismatch", func(t *testing.T) {
		f := newBookingService(t)

		f.expRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(experience, nil)

		_, err := f.svc.CreateExperienceBooking(guestContext("guest-id"), "exp-id", dto.CreateExperienceBookingRequest{
			ExperienceTime: "2024-07-10T15:00",
			Guests:         3,
		})
		assert.Error(t, err)
		assert.Equal(t, failure.KindScheduleMismatch, failure.GetKind(err))
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("past instant with matching time of day is accepted", func(t *testing.T) {
		f := newBookingService(t)

		f.expRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(experience, nil)

		f.repo.EXPECT().
			CreateExperienceBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.True(t, booking.ExperienceTime.Valid)
				return nil
			})

		// Only the time of day is checked against the schedule; the clock
		// (frozen at 2024-06-15) plays no part.
		res, err := f.svc.CreateExperienceBooking(guestContext("guest-id"), "exp-id", dto.CreateExperienceBookingRequest{
			ExperienceTime: "2024-06-01T14:00",
			Guests:         3,
		})
		assert.NoError(t, err)
		assert.Equal(t, model.KindExperience, res.Kind)
	})

	t.Run("duplicate instant maps to conflict", func(t *testing.T) {
		f := newBookingService(t)

		f.expRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(experience, nil)

		f.repo.EXPECT().
			CreateExperienceBooking(gomock.Any(), gomock.Any()).
			Return(repository.ErrSlotTaken)

		_, err := f.svc.CreateExperienceBooking(guestContext("guest-id"), "exp-id", dto.CreateExperienceBookingRequest{
			ExperienceTime: "2024-07-10T14:00",
			Guests:         3,
		})
		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("experience not found", func(t *testing.T) {
		f := newBookingService(t)

		f.expRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(expModel.Experience{}, nil)

		_, err := f.svc.CreateExperienceBooking(guestContext("guest-id"), "missing-id", dto.CreateExperienceBookingRequest{
			ExperienceTime: "2024-07-10T14:00",
			Guests:         3,
		})
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_ListRoomBookings(t *testing.T) {
	room := roomModel.Room{ID: "room-id", OwnerID: "owner-id"}

	listFilters := func(filter gDto.FilterGroup) []gDto.Filter {
		out := make([]gDto.Filter, 0, len(filter.Filters))
		for _, f := range filter.Filters {
			if flt, ok := f.(gDto.Filter); ok {
				out = append(out, flt)
			}
		}
		return out
	}

	t.Run("owner sees every booking", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				for _, flt := range listFilters(filter) {
					assert.NotEqual(t, model.FieldUserID, flt.Field)
				}
				assert.Equal(t, "ASC", params.SortDir)
				return []model.Booking{}, nil
			})

		res, err := f.svc.ListRoomBookings(guestContext("owner-id"), "room-id", 2024, time.July)
		assert.NoError(t, err)
		assert.Equal(t, "owner", res.Scope)
		assert.Equal(t, 2024, res.Year)
		assert.Equal(t, 7, res.Month)
	})

	t.Run("guest sees only own bookings", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				found := false
				for _, flt := range listFilters(filter) {
					if flt.Field == model.FieldUserID {
						found = true
						assert.Equal(t, "guest-id", flt.Value)
					}
				}
				assert.True(t, found, "guest listing must filter on the requester")
				return []model.Booking{}, nil
			})

		res, err := f.svc.ListRoomBookings(guestContext("guest-id"), "room-id", 2024, time.July)
		assert.NoError(t, err)
		assert.Equal(t, "self", res.Scope)
	})

	t.Run("past month clamps to current month", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{}, nil)

		res, err := f.svc.ListRoomBookings(guestContext("owner-id"), "room-id", 2023, time.January)
		assert.NoError(t, err)
		assert.Equal(t, 2024, res.Year)
		assert.Equal(t, 6, res.Month)
	})

	t.Run("absent month defaults to the current month", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{}, nil)

		// Year given, month absent: the month falls back to the clock's
		// (June), not to January.
		res, err := f.svc.ListRoomBookings(guestContext("owner-id"), "room-id", 2025, 0)
		assert.NoError(t, err)
		assert.Equal(t, 2025, res.Year)
		assert.Equal(t, 6, res.Month)
	})

	t.Run("absent year and month default to the current month", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{}, nil)

		res, err := f.svc.ListRoomBookings(guestContext("owner-id"), "room-id", 0, 0)
		assert.NoError(t, err)
		assert.Equal(t, 2024, res.Year)
		assert.Equal(t, 6, res.Month)
	})

	t.Run("room not found", func(t *testing.T) {
		f := newBookingService(t)

		f.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := f.svc.ListRoomBookings(guestContext("guest-id"), "missing-id", 2024, time.July)
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_ListExperienceBookings(t *testing.T) {
	experience := expModel.Experience{ID: "exp-id", HostID: "host-id", Start: "14:00", End: "16:00"}

	t.Run("host sees every booking", func(t *testing.T) {
		f := newBookingService(t)

		f.expRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(experience, nil)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{}, nil)

		res, err := f.svc.ListExperienceBookings(guestContext("host-id"), "exp-id", 2024, time.December)
		assert.NoError(t, err)
		assert.Equal(t, "owner", res.Scope)
		assert.Equal(t, 12, res.Month)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	booking := model.Booking{ID: "booking-id", Kind: model.KindRoom, UserID: "guest-id"}

	t.Run("only the booking owner can cancel", func(t *testing.T) {
		f := newBookingService(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		err := f.svc.Cancel(guestContext("someone-else"), "booking-id")
		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("owner cancels", func(t *testing.T) {
		f := newBookingService(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		f.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.Cancel(guestContext("guest-id"), "booking-id")
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newBookingService(t)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		err := f.svc.Cancel(guestContext("guest-id"), "missing-id")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
