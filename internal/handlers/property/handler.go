package property

import (
	"net/http"
	"strconv"

	"estate/infras/otel"
	"estate/internal/domains/property/model/dto"
	"estate/internal/domains/property/service"
	"estate/shared/constant"
	gDto "estate/shared/dto"
	"estate/shared/validator"
	"estate/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Property
	otel    otel.Otel
}

func New(service service.Property, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/properties", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.Search)
		routerGroup.Post("/", handler.Create)
		routerGroup.Get("/my-properties", handler.MyProperties)
		routerGroup.Get("/favorites", handler.Favorites)
		routerGroup.Get("/trends/{zip}", handler.Trends)
		routerGroup.Get("/{id}", handler.Get)
		routerGroup.Put("/{id}", handler.Update)
		routerGroup.Delete("/{id}", handler.Delete)
		routerGroup.Patch("/{id}/status", handler.SetStatus)
		routerGroup.Post("/{id}/favorite", handler.ToggleFavorite)
	})
}

// Search lists approved, available listings matching the query filters.
// @Summary Search properties
// @Description List approved and available properties; textual filters match case-insensitive substrings, price bounds are inclusive.
// @Tags Property
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param zip query string false "Zip or area code"
// @Param city query string false "City"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param bedrooms query int false "Minimum bedrooms"
// @Param type query string false "Property type"
// @Param furnishing query string false "Furnishing"
// @Success 200 {object} response.Data[dto.GetPropertiesResponse] "Matching properties"
// @Failure 500 {object} response.Error
// @Router /properties [get]
func (handler *Handler) Search(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Search")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()

	req := dto.SearchPropertiesRequest{
		Zip:        query.Get("zip"),
		City:       query.Get("city"),
		Type:       query.Get("type"),
		Furnishing: query.Get("furnishing"),
	}

	if raw := query.Get("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			req.MinPrice = &v
		}
	}

	if raw := query.Get("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			req.MaxPrice = &v
		}
	}

	if raw := query.Get("bedrooms"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			req.Bedrooms = &v
		}
	}

	res, err := handler.service.Search(ctx, queryParams, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search properties")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Create submits a new listing for admin review.
// @Summary Submit a property
// @Description Create a listing in pending approval state.
// @Tags Property
// @Accept json
// @Produce json
// @Param request body dto.CreatePropertyRequest true "Create Property Request"
// @Success 201 {object} response.Data[dto.PropertyResponse] "Property submitted"
// @Failure 400 {object} response.Error
// @Router /properties [post]
// @Security BearerAuth
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Create")
	defer scope.End()

	req := dto.CreatePropertyRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create property")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// MyProperties lists the authenticated landlord's own listings.
// @Summary My properties
// @Tags Property
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPropertiesResponse] "Own properties"
// @Failure 500 {object} response.Error
// @Router /properties/my-properties [get]
// @Security BearerAuth
func (handler *Handler) MyProperties(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MyProperties")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.MyProperties(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own properties")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Favorites lists properties the authenticated user has favorited.
// @Summary Favorite properties
// @Tags Property
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPropertiesResponse] "Favorited properties"
// @Failure 500 {object} response.Error
// @Router /properties/favorites [get]
// @Security BearerAuth
func (handler *Handler) Favorites(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Favorites")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.Favorites(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favorites")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Trends returns the synthesized weekly price series for an area code.
// @Summary Price trend for an area
// @Tags Property
// @Produce json
// @Param zip path string true "Zip or area code prefix"
// @Success 200 {object} response.Data[dto.TrendResponse] "Price trend"
// @Failure 500 {object} response.Error
// @Router /properties/trends/{zip} [get]
func (handler *Handler) Trends(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Trends")
	defer scope.End()

	zip := chi.URLParam(request, "zip")

	res, err := handler.service.EstimateTrend(ctx, zip)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to estimate price trend")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Get returns a single listing and counts the view.
// @Summary Get a property
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Data[dto.PropertyResponse] "Property"
// @Failure 404 {object} response.Error
// @Router /properties/{id} [get]
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Get")
	defer scope.End()

	id := chi.URLParam(request, "id")

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get property")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Update edits a listing; only the owner or an admin may edit.
// @Summary Update a property
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body dto.UpdatePropertyRequest true "Update Property Request"
// @Success 200 {object} response.Message "Property updated"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /properties/{id} [put]
// @Security BearerAuth
func (handler *Handler) Update(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Update")
	defer scope.End()

	id := chi.URLParam(request, "id")
	req := dto.UpdatePropertyRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update property")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Property updated successfully")
}

// Delete removes a listing; only the owner or an admin may delete.
// @Summary Delete a property
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Message "Property deleted"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /properties/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Delete")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete property")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Property deleted successfully")
}

// SetStatus lets the owner park a listing in maintenance or unlisted, or
// bring it back to available.
// @Summary Set property availability
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body dto.SetStatusRequest true "Set Status Request"
// @Success 200 {object} response.Message "Status updated"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /properties/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetStatus")
	defer scope.End()

	id := chi.URLParam(request, "id")
	req := dto.SetStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.SetStatus(ctx, id, req.Status); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set property status")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Property status updated")
}

// ToggleFavorite flips the favorite mark for the authenticated user.
// @Summary Toggle favorite
// @Description Idempotent toggle; calling it twice restores the original state.
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Data[map[string]bool] "New favorite state"
// @Failure 404 {object} response.Error
// @Router /properties/{id}/favorite [post]
// @Security BearerAuth
func (handler *Handler) ToggleFavorite(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleFavorite")
	defer scope.End()

	id := chi.URLParam(request, "id")

	favorited, err := handler.service.ToggleFavorite(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle favorite")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, map[string]bool{"favorited": favorited})
}
