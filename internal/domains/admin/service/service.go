package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"estate/infras/otel"
	"estate/internal/domains/admin/model/dto"
	bookingModel "estate/internal/domains/booking/model"
	bookingRepo "estate/internal/domains/booking/repository"
	propertyModel "estate/internal/domains/property/model"
	propertyDto "estate/internal/domains/property/model/dto"
	propertyRepo "estate/internal/domains/property/repository"
	userModel "estate/internal/domains/user/model"
	userDto "estate/internal/domains/user/model/dto"
	userRepo "estate/internal/domains/user/repository"
	"estate/shared"
	"estate/shared/constant"
	gDto "estate/shared/dto"
	"estate/shared/failure"
	"estate/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	defaultVerificationRejection = "Invalid or unclear ID proof"
	defaultPropertyRejection     = "Listing did not pass review"
)

type Admin interface {
	Stats(ctx context.Context) (dto.StatsResponse, error)
	Users(ctx context.Context, params gDto.QueryParams) (userDto.GetUsersResponse, error)
	PendingVerifications(ctx context.Context, params gDto.QueryParams) (userDto.GetUsersResponse, error)
	VerifyUser(ctx context.Context, userID string) error
	RejectVerification(ctx context.Context, userID, reason string) error
	BlockUser(ctx context.Context, userID, reason string) error
	UnblockUser(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, userID string) error
	Properties(ctx context.Context, params gDto.QueryParams) (propertyDto.GetPropertiesResponse, error)
	PendingProperties(ctx context.Context, params gDto.QueryParams) (propertyDto.GetPropertiesResponse, error)
	ApproveProperty(ctx context.Context, propertyID string) error
	RejectProperty(ctx context.Context, propertyID, reason string) error
}

type serviceImpl struct {
	users      userRepo.User
	properties propertyRepo.Property
	favorites  propertyRepo.Favorite
	bookings   bookingRepo.Booking
	otel       otel.Otel
}

func New(users userRepo.User, properties propertyRepo.Property, favorites propertyRepo.Favorite, bookings bookingRepo.Booking, otel otel.Otel) Admin {
	return &serviceImpl{
		users:      users,
		properties: properties,
		favorites:  favorites,
		bookings:   bookings,
		otel:       otel,
	}
}

func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	counts := []struct {
		dest  *int
		count func(context.Context, gDto.FilterGroup) (int, error)
		group gDto.FilterGroup
	}{
		{&res.TotalUsers, s.users.Count, all()},
		{&res.TotalRenters, s.users.Count, eq(userModel.FieldRole, constant.RoleRenter, userModel.TableName)},
		{&res.TotalLandlords, s.users.Count, eq(userModel.FieldRole, constant.RoleLandlord, userModel.TableName)},
		{&res.PendingVerifications, s.users.Count, pendingVerificationFilter()},
		{&res.BlockedUsers, s.users.Count, eq(userModel.FieldIsBlocked, true, userModel.TableName)},
		{&res.TotalProperties, s.properties.Count, all()},
		{&res.PendingProperties, s.properties.Count, eq(propertyModel.FieldApprovalStatus, propertyModel.ApprovalStatusPending, propertyModel.TableName)},
		{&res.ApprovedProperties, s.properties.Count, eq(propertyModel.FieldIsApproved, true, propertyModel.TableName)},
		{&res.TotalBookings, s.bookings.Count, all()},
		{&res.ActiveBookings, s.bookings.Count, eq(bookingModel.FieldBookingStatus, bookingModel.StatusConfirmed, bookingModel.TableName)},
	}

	for _, c := range counts {
		*c.dest, err = c.count(ctx, c.group)
		if err != nil {
			log.Error().Err(err).Msg("failed to count for admin stats")

			return res, fmt.Errorf("failed to count for admin stats: %w", err)
		}
	}

	return res, nil
}

func (s *serviceImpl) Users(ctx context.Context, params gDto.QueryParams) (res userDto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Users")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.listUsers(ctx, params, all())
}

func (s *serviceImpl) PendingVerifications(ctx context.Context, params gDto.QueryParams) (res userDto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PendingVerifications")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.listUsers(ctx, params, pendingVerificationFilter())
}

func (s *serviceImpl) VerifyUser(ctx context.Context, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	now := timezone.Now()

	if err = s.users.Update(ctx, map[string]any{
		userModel.FieldIsVerified:         true,
		userModel.FieldVerificationStatus: userModel.VerificationStatusApproved,
		userModel.FieldVerifiedAt:         now,
		userModel.FieldVerifiedBy:         admin,
		userModel.FieldRejectionReason:    nil,
		constant.FieldModifiedAt:          now,
		constant.FieldModifiedBy:          admin,
	}, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to verify user")

		return fmt.Errorf("failed to verify user: %w", err)
	}

	return nil
}

func (s *serviceImpl) RejectVerification(ctx context.Context, userID, reason string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RejectVerification")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if reason == constant.Empty {
		reason = defaultVerificationRejection
	}

	now := timezone.Now()

	if err = s.users.Update(ctx, map[string]any{
		userModel.FieldIsVerified:         false,
		userModel.FieldVerificationStatus: userModel.VerificationStatusRejected,
		userModel.FieldVerifiedAt:         nil,
		userModel.FieldVerifiedBy:         admin,
		userModel.FieldRejectionReason:    reason,
		constant.FieldModifiedAt:          now,
		constant.FieldModifiedBy:          admin,
	}, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to reject verification")

		return fmt.Errorf("failed to reject verification: %w", err)
	}

	return nil
}

// BlockUser pairs the two flags: a blocked account is also deactivated.
func (s *serviceImpl) BlockUser(ctx context.Context, userID, reason string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BlockUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == constant.RoleAdmin {
		return failure.Forbidden("admin accounts cannot be blocked") // nolint:wrapcheck
	}

	if err = s.users.Update(ctx, map[string]any{
		userModel.FieldIsBlocked:   true,
		userModel.FieldIsActive:    false,
		userModel.FieldBlockReason: reason,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   admin,
	}, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to block user")

		return fmt.Errorf("failed to block user: %w", err)
	}

	return nil
}

func (s *serviceImpl) UnblockUser(ctx context.Context, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UnblockUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if err = s.users.Update(ctx, map[string]any{
		userModel.FieldIsBlocked:   false,
		userModel.FieldIsActive:    true,
		userModel.FieldBlockReason: nil,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   admin,
	}, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to unblock user")

		return fmt.Errorf("failed to unblock user: %w", err)
	}

	return nil
}

// DeleteUser removes the account together with everything it owns: its
// favorite rows, its listings and the favorite rows pointing at those
// listings. Booking records stay as history.
func (s *serviceImpl) DeleteUser(ctx context.Context, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == constant.RoleAdmin {
		return failure.Forbidden("admin accounts cannot be deleted") // nolint:wrapcheck
	}

	owned, err := s.properties.GetAll(ctx, gDto.QueryParams{}, eq(propertyModel.FieldOwnerID, userID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list owned properties")

		return fmt.Errorf("failed to list owned properties: %w", err)
	}

	for _, prop := range owned {
		if err = s.favorites.Delete(ctx, eq(propertyModel.FavoriteFieldPropertyID, prop.ID, propertyModel.FavoriteTableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete property favorites")

			return fmt.Errorf("failed to delete property favorites: %w", err)
		}

		if err = s.properties.Delete(ctx, shared.FilterByID(prop.ID, propertyModel.FieldID, propertyModel.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete owned property")

			return fmt.Errorf("failed to delete owned property: %w", err)
		}
	}

	if err = s.favorites.Delete(ctx, eq(propertyModel.FavoriteFieldUserID, userID, propertyModel.FavoriteTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete user favorites")

		return fmt.Errorf("failed to delete user favorites: %w", err)
	}

	if err = s.users.Delete(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (s *serviceImpl) Properties(ctx context.Context, params gDto.QueryParams) (res propertyDto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Properties")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.listProperties(ctx, params, all())
}

func (s *serviceImpl) PendingProperties(ctx context.Context, params gDto.QueryParams) (res propertyDto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PendingProperties")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.listProperties(ctx, params, eq(propertyModel.FieldApprovalStatus, propertyModel.ApprovalStatusPending, propertyModel.TableName))
}

func (s *serviceImpl) ApproveProperty(ctx context.Context, propertyID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApproveProperty")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	prop, err := s.getProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	now := timezone.Now()

	if err = s.properties.Update(ctx, map[string]any{
		propertyModel.FieldIsApproved:      true,
		propertyModel.FieldApprovalStatus:  propertyModel.ApprovalStatusApproved,
		propertyModel.FieldApprovedBy:      admin,
		propertyModel.FieldApprovedAt:      now,
		propertyModel.FieldRejectionReason: nil,
		constant.FieldModifiedAt:           now,
		constant.FieldModifiedBy:           admin,
	}, shared.FilterByID(prop.ID, propertyModel.FieldID, propertyModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to approve property")

		return fmt.Errorf("failed to approve property: %w", err)
	}

	return nil
}

// RejectProperty is not terminal: the listing can be resubmitted and
// approved later.
func (s *serviceImpl) RejectProperty(ctx context.Context, propertyID, reason string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RejectProperty")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)

	prop, err := s.getProperty(ctx, propertyID)
	if err != nil {
		return err
	}

	if reason == constant.Empty {
		reason = defaultPropertyRejection
	}

	now := timezone.Now()

	if err = s.properties.Update(ctx, map[string]any{
		propertyModel.FieldIsApproved:      false,
		propertyModel.FieldApprovalStatus:  propertyModel.ApprovalStatusRejected,
		propertyModel.FieldApprovedBy:      admin,
		propertyModel.FieldApprovedAt:      nil,
		propertyModel.FieldRejectionReason: reason,
		constant.FieldModifiedAt:           now,
		constant.FieldModifiedBy:           admin,
	}, shared.FilterByID(prop.ID, propertyModel.FieldID, propertyModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to reject property")

		return fmt.Errorf("failed to reject property: %w", err)
	}

	return nil
}

func (s *serviceImpl) listUsers(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res userDto.GetUsersResponse, err error) {
	total, err := s.users.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.users.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) listProperties(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res propertyDto.GetPropertiesResponse, err error) {
	total, err := s.properties.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	models, err := s.properties.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties")

		return res, fmt.Errorf("failed to get properties: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) getUser(ctx context.Context, userID string) (userModel.User, error) {
	user, err := s.users.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}

func (s *serviceImpl) getProperty(ctx context.Context, propertyID string) (propertyModel.Property, error) {
	prop, err := s.properties.Get(ctx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return prop, fmt.Errorf("failed to get property: %w", err)
	}

	if prop.ID == constant.Empty {
		return prop, failure.NotFound("property not found") // nolint:wrapcheck
	}

	return prop, nil
}

func all() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Operator: gDto.FilterPlainQuery, Value: "1=1"},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func eq(field string, value any, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: table},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func pendingVerificationFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: userModel.FieldVerificationStatus, Value: userModel.VerificationStatusPending, Operator: gDto.FilterOperatorEq, Table: userModel.TableName},
			gDto.Filter{Field: userModel.FieldDocumentBase64, Operator: gDto.FilterIsNotNull, Table: userModel.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}
