package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roost/config"
	"roost/infras/otel/mocks"
	expMocks "roost/internal/domains/experience/mocks"
	"roost/internal/domains/experience/model"
	"roost/internal/domains/experience/model/dto"
	"roost/internal/domains/experience/service"
	cacheMocks "roost/shared/cache/mocks"
	"roost/shared/constant"
	"roost/shared/failure"
)

func newExperienceService(t *testing.T) (service.Experience, *expMocks.MockExperience, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := expMocks.NewMockExperience(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mockOtel), mockRepo, mockCache
}

func hostContext(user string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, user)
}

func TestExperienceService_Create(t *testing.T) {
	svc, mockRepo, _ := newExperienceService(t)

	req := dto.CreateExperienceRequest{
		Name:    "Fado Night",
		Country: "Portugal",
		City:    "Lisbon",
		Address: "Alfama district",
		Price:   45,
		Start:   "19:00",
		End:     "22:00",
		Perks:   []string{"perk-1"},
	}

	t.Run("successful creation with perks", func(t *testing.T) {
		mockRepo.EXPECT().
			CreateWithTags(gomock.Any(), gomock.Any(), req.Perks).
			Return(nil)

		res, err := svc.Create(hostContext("host-id"), req)
		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "host-id", res.HostID)
		assert.Equal(t, "19:00", res.Start)
	})

	t.Run("end before start", func(t *testing.T) {
		bad := req
		bad.Start = "22:00"
		bad.End = "19:00"

		_, err := svc.Create(hostContext("host-id"), bad)
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("malformed start time", func(t *testing.T) {
		bad := req
		bad.Start = "7pm"

		_, err := svc.Create(hostContext("host-id"), bad)
		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("missing perk aborts creation", func(t *testing.T) {
		mockRepo.EXPECT().
			CreateWithTags(gomock.Any(), gomock.Any(), req.Perks).
			Return(failure.ReferenceNotFound("perk-1"))

		_, err := svc.Create(hostContext("host-id"), req)
		assert.Error(t, err)
		assert.Equal(t, failure.KindReferenceNotFound, failure.GetKind(err))
	})
}

func TestExperienceService_Get(t *testing.T) {
	svc, mockRepo, mockCache := newExperienceService(t)

	t.Run("found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Experience{ID: "exp-id", HostID: "host-id", Start: "19:00", End: "22:00"}, nil)

		res, err := svc.Get(context.Background(), "exp-id")
		assert.NoError(t, err)
		assert.Equal(t, "exp-id", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Experience{}, nil)

		_, err := svc.Get(context.Background(), "missing-id")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestExperienceService_Update(t *testing.T) {
	svc, mockRepo, _ := newExperienceService(t)

	req := dto.UpdateExperienceRequest{Name: "Fado Evening"}

	t.Run("only host can update", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Experience{ID: "exp-id", HostID: "host-id"}, nil)

		err := svc.Update(hostContext("someone-else"), req, "exp-id")
		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("host updates", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Experience{ID: "exp-id", HostID: "host-id"}, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Update(hostContext("host-id"), req, "exp-id")
		assert.NoError(t, err)
	})
}

func TestExperienceService_Delete(t *testing.T) {
	svc, mockRepo, _ := newExperienceService(t)

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Experience{}, nil)

		err := svc.Delete(hostContext("host-id"), "missing-id")
		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("host deletes", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Experience{ID: "exp-id", HostID: "host-id"}, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := svc.Delete(hostContext("host-id"), "exp-id")
		assert.NoError(t, err)
	})
}
