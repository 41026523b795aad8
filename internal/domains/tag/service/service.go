package service

import (
	"context"
	"fmt"
	"roost/config"
	"roost/infras/otel"
	"roost/internal/domains/tag/model"
	"roost/internal/domains/tag/model/dto"
	"roost/internal/domains/tag/repository"
	"roost/shared"
	"roost/shared/cache"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTag    = "tag:get"
	cacheGetAllTag = "tag:gets"
	cacheCountTag  = "tag:count"
)

type Tag interface {
	Create(ctx context.Context, req dto.CreateTagRequest) (dto.TagResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTagsResponse, error)
	Get(ctx context.Context, id string) (dto.TagResponse, error)
	Update(ctx context.Context, req dto.UpdateTagRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Tag
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Tag, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Tag {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTagRequest) (res dto.TagResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	tag := req.ToModel(user)
	if err = s.repo.Insert(ctx, tag); err != nil {
		log.Error().Err(err).Msg("failed to create tag")

		return res, fmt.Errorf("failed to create tag: %w", err)
	}

	res.FromModel(tag)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTag)
		shared.InvalidateCaches(c, s.cache, cacheCountTag)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTagsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTag, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tags")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tags")

		return res, fmt.Errorf("failed to count tags: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tags")

		return res, fmt.Errorf("failed to get tags: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tags to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TagResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetTag, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tag")

		return res, nil
	}

	tag, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tag")

		return res, fmt.Errorf("failed to get tag: %w", err)
	}

	if tag.ID == constant.Empty {
		return res, failure.NotFound("tag not found") // nolint:wrapcheck
	}

	res.FromModel(tag)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tag to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTagRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateTagRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if tag exists")

		return fmt.Errorf("failed to check if tag exists: %w", err)
	}

	if !exist {
		log.Error().Msg("tag not found")

		return failure.NotFound("tag not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update tag")

		return fmt.Errorf("failed to update tag: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTag, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete tag from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTag)
		shared.InvalidateCaches(c, s.cache, cacheCountTag)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if tag exists")

		return fmt.Errorf("failed to check if tag exists: %w", err)
	}

	if !exist {
		log.Error().Msg("tag not found")

		return failure.NotFound("tag not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete tag")

		return fmt.Errorf("failed to delete tag: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTag, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete tag from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTag)
		shared.InvalidateCaches(c, s.cache, cacheCountTag)
	}()

	return nil
}
