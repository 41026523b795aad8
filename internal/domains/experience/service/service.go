package service

import (
	"context"
	"fmt"
	"roost/config"
	"roost/infras/otel"
	"roost/internal/domains/experience/model"
	"roost/internal/domains/experience/model/dto"
	"roost/internal/domains/experience/repository"
	tagDto "roost/internal/domains/tag/model/dto"
	"roost/shared"
	"roost/shared/cache"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetExperience     = "experience:get"
	cacheGetAllExperience  = "experience:gets"
	cacheCountExperience   = "experience:count"
	cacheGetExperienceTags = "experience:tags"
)

type Experience interface {
	Create(ctx context.Context, req dto.CreateExperienceRequest) (dto.ExperienceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetExperiencesResponse, error)
	Get(ctx context.Context, id string) (dto.ExperienceResponse, error)
	GetTags(ctx context.Context, id string) ([]tagDto.TagResponse, error)
	Update(ctx context.Context, req dto.UpdateExperienceRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Experience
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Experience, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Experience {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateExperienceRequest) (res dto.ExperienceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	experience, err := req.ToModel(user)
	if err != nil {
		return res, err
	}

	if err = s.repo.CreateWithTags(ctx, experience, req.Perks); err != nil {
		if failure.GetKind(err) == failure.KindReferenceNotFound {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create experience")

		return res, fmt.Errorf("failed to create experience: %w", err)
	}

	res.FromModel(experience)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllExperience)
		shared.InvalidateCaches(c, s.cache, cacheCountExperience)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetExperiencesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllExperience, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for experiences")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count experiences")

		return res, fmt.Errorf("failed to count experiences: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get experiences")

		return res, fmt.Errorf("failed to get experiences: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save experiences to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ExperienceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetExperience, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for experience")

		return res, nil
	}

	experience, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get experience")

		return res, fmt.Errorf("failed to get experience: %w", err)
	}

	if experience.ID == constant.Empty {
		return res, failure.NotFound("experience not found") // nolint:wrapcheck
	}

	res.FromModel(experience)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save experience to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetTags(ctx context.Context, id string) (res []tagDto.TagResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTags")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if experience exists")

		return nil, fmt.Errorf("failed to check if experience exists: %w", err)
	}

	if !exist {
		return nil, failure.NotFound("experience not found") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetExperienceTags, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for experience tags")

		return res, nil
	}

	tags, err := s.repo.GetTags(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get experience tags")

		return nil, fmt.Errorf("failed to get experience tags: %w", err)
	}

	res = make([]tagDto.TagResponse, len(tags))
	for i, tag := range tags {
		res[i].FromModel(tag)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save experience tags to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateExperienceRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateExperienceRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	experience, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get experience")

		return fmt.Errorf("failed to get experience: %w", err)
	}

	if experience.ID == constant.Empty {
		log.Error().Msg("experience not found")

		return failure.NotFound("experience not found") // nolint:wrapcheck
	}

	if experience.HostID != user {
		return failure.Forbidden("only the host can modify this experience") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update experience")

		return fmt.Errorf("failed to update experience: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetExperience, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete experience from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllExperience)
		shared.InvalidateCaches(c, s.cache, cacheCountExperience)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	experience, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get experience")

		return fmt.Errorf("failed to get experience: %w", err)
	}

	if experience.ID == constant.Empty {
		log.Error().Msg("experience not found")

		return failure.NotFound("experience not found") // nolint:wrapcheck
	}

	if experience.HostID != user {
		return failure.Forbidden("only the host can delete this experience") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete experience")

		return fmt.Errorf("failed to delete experience: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetExperience, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete experience from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllExperience)
		shared.InvalidateCaches(c, s.cache, cacheCountExperience)
		shared.InvalidateCaches(c, s.cache, cacheGetExperienceTags)
	}()

	return nil
}
