package experience

import (
	"net/http"
	"roost/infras/otel"
	"roost/internal/domains/experience/model"
	"roost/internal/domains/experience/model/dto"
	"roost/internal/domains/experience/service"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/validator"
	"roost/transport/http/middleware"
	"roost/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Experience
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Experience, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/experiences", func(routerGroup chi.Router) {
		routerGroup.With(handler.middleware.Auth).Post("/", handler.CreateExperience)
		routerGroup.Get("/", handler.GetExperiences)
		routerGroup.Get("/{id}", handler.GetExperienceByID)
		routerGroup.Get("/{id}/perks", handler.GetExperiencePerks)
		routerGroup.With(handler.middleware.Auth).Patch("/{id}", handler.UpdateExperience)
		routerGroup.With(handler.middleware.Auth).Delete("/{id}", handler.DeleteExperience)
	})
}

// CreateExperience registers a new hosted experience with its perks.
// @Summary Create a new experience
// @Description Create an experience hosted by the requester. Perk ids are resolved atomically; an unknown id fails the whole request.
// @Tags Experience
// @Accept json
// @Produce json
// @Param request body dto.CreateExperienceRequest true "Create Experience Request"
// @Success 201 {object} dto.ExperienceResponse "Experience created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/experiences [post]
// @Security BearerAuth
func (handler *Handler) CreateExperience(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExperience")
	defer scope.End()

	req := dto.CreateExperienceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create experience")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Experience created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetExperiences lists experiences.
// @Summary Get all experiences
// @Description Retrieve experiences with optional filtering and pagination.
// @Tags Experience
// @Produce json
// @Param city query string false "Filter by city"
// @Param country query string false "Filter by country"
// @Success 200 {object} dto.GetExperiencesResponse "List of experiences"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/experiences [get]
func (handler *Handler) GetExperiences(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExperiences")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if city := r.URL.Query().Get(model.FieldCity); city != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorLike,
			Value:    city,
			Table:    model.TableName,
		})
	}

	if country := r.URL.Query().Get(model.FieldCountry); country != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCountry,
			Operator: gDto.FilterOperatorLike,
			Value:    country,
			Table:    model.TableName,
		})
	}

	experiences, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get experiences")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, experiences)
}

// GetExperienceByID retrieves an experience by its ID.
// @Summary Get an experience by ID
// @Tags Experience
// @Produce json
// @Param id path string true "Experience ID"
// @Success 200 {object} dto.ExperienceResponse "Experience details"
// @Failure 404 {object} response.Error
// @Router /v1/experiences/{id} [get]
func (handler *Handler) GetExperienceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExperienceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	experience, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get experience")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, experience)
}

// GetExperiencePerks lists the perks attached to an experience.
// @Summary Get an experience's perks
// @Tags Experience
// @Produce json
// @Param id path string true "Experience ID"
// @Success 200 {array} tagDto.TagResponse "Experience perks"
// @Failure 404 {object} response.Error
// @Router /v1/experiences/{id}/perks [get]
func (handler *Handler) GetExperiencePerks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExperiencePerks")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	tags, err := handler.service.GetTags(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get experience perks")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tags)
}

// UpdateExperience updates an experience's details. Only the host may update.
// @Summary Update an experience
// @Tags Experience
// @Accept json
// @Produce json
// @Param id path string true "Experience ID"
// @Param request body dto.UpdateExperienceRequest true "Update Experience Request"
// @Success 200 {object} response.Message "Experience updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/experiences/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExperience")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateExperienceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update experience")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Experience updated successfully")
}

// DeleteExperience removes an experience. Only the host may delete.
// @Summary Delete an experience
// @Tags Experience
// @Produce json
// @Param id path string true "Experience ID"
// @Success 200 {object} response.Message "Experience deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/experiences/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExperience")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete experience")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Experience deleted successfully")
}
