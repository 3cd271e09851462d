package admin

import (
	"net/http"

	"estate/infras/otel"
	"estate/internal/domains/admin/model/dto"
	"estate/internal/domains/admin/service"
	propertyService "estate/internal/domains/property/service"
	"estate/shared/constant"
	gDto "estate/shared/dto"
	"estate/shared/validator"
	"estate/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Admin
	properties propertyService.Property
	otel       otel.Otel
}

func New(service service.Admin, properties propertyService.Property, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		properties: properties,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Get("/stats", handler.Stats)

		routerGroup.Get("/users", handler.Users)
		routerGroup.Get("/users/pending", handler.PendingVerifications)
		routerGroup.Put("/users/{id}/verify", handler.VerifyUser)
		routerGroup.Put("/users/{id}/reject", handler.RejectVerification)
		routerGroup.Put("/users/{id}/block", handler.BlockUser)
		routerGroup.Put("/users/{id}/unblock", handler.UnblockUser)
		routerGroup.Delete("/users/{id}", handler.DeleteUser)

		routerGroup.Get("/properties", handler.Properties)
		routerGroup.Get("/properties/pending", handler.PendingProperties)
		routerGroup.Put("/properties/{id}/approve", handler.ApproveProperty)
		routerGroup.Put("/properties/{id}/reject", handler.RejectProperty)
		routerGroup.Delete("/properties/{id}", handler.DeleteProperty)
	})
}

// Stats returns marketplace-wide counters for the admin dashboard.
// @Summary Admin statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.StatsResponse] "Statistics"
// @Failure 500 {object} response.Error
// @Router /admin/stats [get]
// @Security BearerAuth
func (handler *Handler) Stats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Stats")
	defer scope.End()

	res, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admin stats")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Users lists every account.
// @Summary List users
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[userDto.GetUsersResponse] "Users"
// @Failure 500 {object} response.Error
// @Router /admin/users [get]
// @Security BearerAuth
func (handler *Handler) Users(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Users")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.Users(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list users")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// PendingVerifications lists accounts awaiting document review.
// @Summary List pending verifications
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[userDto.GetUsersResponse] "Pending verifications"
// @Failure 500 {object} response.Error
// @Router /admin/users/pending [get]
// @Security BearerAuth
func (handler *Handler) PendingVerifications(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PendingVerifications")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.PendingVerifications(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list pending verifications")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// VerifyUser approves an account's identity document.
// @Summary Approve verification
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message "User verified"
// @Failure 404 {object} response.Error
// @Router /admin/users/{id}/verify [put]
// @Security BearerAuth
func (handler *Handler) VerifyUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyUser")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.service.VerifyUser(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify user")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "User verified successfully")
}

// RejectVerification rejects an account's identity document.
// @Summary Reject verification
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.RejectVerificationRequest true "Reject Verification Request"
// @Success 200 {object} response.Message "Verification rejected"
// @Failure 404 {object} response.Error
// @Router /admin/users/{id}/reject [put]
// @Security BearerAuth
func (handler *Handler) RejectVerification(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectVerification")
	defer scope.End()

	id := chi.URLParam(request, "id")
	req := dto.RejectVerificationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.RejectVerification(ctx, id, req.Reason); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject verification")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Verification rejected")
}

// BlockUser blocks and deactivates an account.
// @Summary Block user
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.BlockUserRequest true "Block User Request"
// @Success 200 {object} response.Message "User blocked"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /admin/users/{id}/block [put]
// @Security BearerAuth
func (handler *Handler) BlockUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BlockUser")
	defer scope.End()

	id := chi.URLParam(request, "id")
	req := dto.BlockUserRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.BlockUser(ctx, id, req.Reason); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to block user")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "User blocked")
}

// UnblockUser reinstates a blocked account.
// @Summary Unblock user
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message "User unblocked"
// @Failure 404 {object} response.Error
// @Router /admin/users/{id}/unblock [put]
// @Security BearerAuth
func (handler *Handler) UnblockUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UnblockUser")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.service.UnblockUser(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to unblock user")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "User unblocked")
}

// DeleteUser removes an account and everything it owns.
// @Summary Delete user
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message "User deleted"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /admin/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.service.DeleteUser(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete user")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "User deleted")
}

// Properties lists every listing regardless of approval state.
// @Summary List properties
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[propertyDto.GetPropertiesResponse] "Properties"
// @Failure 500 {object} response.Error
// @Router /admin/properties [get]
// @Security BearerAuth
func (handler *Handler) Properties(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Properties")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.Properties(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list properties")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// PendingProperties lists listings awaiting review.
// @Summary List pending properties
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[propertyDto.GetPropertiesResponse] "Pending properties"
// @Failure 500 {object} response.Error
// @Router /admin/properties/pending [get]
// @Security BearerAuth
func (handler *Handler) PendingProperties(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PendingProperties")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.PendingProperties(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list pending properties")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ApproveProperty marks a listing as approved and bookable.
// @Summary Approve property
// @Tags Admin
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Message "Property approved"
// @Failure 404 {object} response.Error
// @Router /admin/properties/{id}/approve [put]
// @Security BearerAuth
func (handler *Handler) ApproveProperty(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveProperty")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.service.ApproveProperty(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve property")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Property approved")
}

// RejectProperty rejects a listing; it can be reviewed again later.
// @Summary Reject property
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body dto.RejectPropertyRequest true "Reject Property Request"
// @Success 200 {object} response.Message "Property rejected"
// @Failure 404 {object} response.Error
// @Router /admin/properties/{id}/reject [put]
// @Security BearerAuth
func (handler *Handler) RejectProperty(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectProperty")
	defer scope.End()

	id := chi.URLParam(request, "id")
	req := dto.RejectPropertyRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.RejectProperty(ctx, id, req.Reason); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject property")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Property rejected")
}

// DeleteProperty removes a listing on behalf of an admin.
// @Summary Delete property
// @Tags Admin
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Message "Property deleted"
// @Failure 404 {object} response.Error
// @Router /admin/properties/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProperty(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProperty")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := handler.properties.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete property")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Property deleted")
}
