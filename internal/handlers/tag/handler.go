package tag

import (
	"net/http"
	"roost/infras/otel"
	"roost/internal/domains/tag/model"
	"roost/internal/domains/tag/model/dto"
	"roost/internal/domains/tag/service"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/validator"
	"roost/transport/http/middleware"
	"roost/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Tag
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Tag, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tags", func(routerGroup chi.Router) {
		routerGroup.With(handler.middleware.Auth).Post("/", handler.CreateTag)
		routerGroup.Get("/", handler.GetTags)
		routerGroup.Get("/{id}", handler.GetTagByID)
		routerGroup.With(handler.middleware.Auth).Patch("/{id}", handler.UpdateTag)
		routerGroup.With(handler.middleware.Auth).Delete("/{id}", handler.DeleteTag)
	})
}

// CreateTag registers a new amenity or perk.
// @Summary Create a new tag
// @Description Create an amenity or perk usable by rooms and experiences.
// @Tags Tag
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "Create Tag Request"
// @Success 201 {object} dto.TagResponse "Tag created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tags [post]
// @Security BearerAuth
func (handler *Handler) CreateTag(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTag")
	defer scope.End()

	req := dto.CreateTagRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tag")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Tag created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetTags lists tags, optionally filtered by kind.
// @Summary Get all tags
// @Description Retrieve tags with optional kind filtering and pagination.
// @Tags Tag
// @Accept json
// @Produce json
// @Param kind query string false "Filter by kind (amenity or perk)"
// @Success 200 {object} dto.GetTagsResponse "List of tags"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tags [get]
func (handler *Handler) GetTags(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTags")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if kind := r.URL.Query().Get(model.FieldKind); kind != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldKind,
			Operator: gDto.FilterOperatorEq,
			Value:    kind,
			Table:    model.TableName,
		})
	}

	tags, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tags")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tags)
}

// GetTagByID retrieves a tag by its ID.
// @Summary Get a tag by ID
// @Tags Tag
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} dto.TagResponse "Tag details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tags/{id} [get]
func (handler *Handler) GetTagByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTagByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	tag, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tag")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tag)
}

// UpdateTag updates a tag's name or details.
// @Summary Update a tag
// @Tags Tag
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param request body dto.UpdateTagRequest true "Update Tag Request"
// @Success 200 {object} response.Message "Tag updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/tags/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTag")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTagRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tag")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Tag updated successfully")
}

// DeleteTag removes a tag.
// @Summary Delete a tag
// @Tags Tag
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} response.Message "Tag deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/tags/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTag")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete tag")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Tag deleted successfully")
}
