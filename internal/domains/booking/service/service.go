package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"estate/config"
	"estate/infras/kafka"
	"estate/infras/otel"
	"estate/internal/domains/booking/model"
	"estate/internal/domains/booking/model/dto"
	"estate/internal/domains/booking/repository"
	"estate/internal/domains/invoice"
	propertyModel "estate/internal/domains/property/model"
	propertyRepo "estate/internal/domains/property/repository"
	userModel "estate/internal/domains/user/model"
	userRepo "estate/internal/domains/user/repository"
	"estate/shared"
	"estate/shared/constant"
	gDto "estate/shared/dto"
	"estate/shared/failure"
	"estate/shared/timezone"

	"github.com/rs/zerolog/log"
)

const referenceCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	MyBookings(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	LandlordBookings(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	PropertyBookings(ctx context.Context, propertyID string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Confirm(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (dto.BookingResponse, error)
	RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) (dto.BookingResponse, error)
	Invoice(ctx context.Context, id string) ([]byte, string, error)
}

type serviceImpl struct {
	repo       repository.Booking
	properties propertyRepo.Property
	users      userRepo.User
	renderer   invoice.Renderer
	kafka      kafka.Client
	cfg        *config.Config
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	properties propertyRepo.Property,
	users userRepo.User,
	renderer invoice.Renderer,
	kafkaClient kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		properties: properties,
		users:      users,
		renderer:   renderer,
		kafka:      kafkaClient,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	renter, _ := ctx.Value(constant.ContextKeyUserID).(string)

	property, err := s.properties.Get(ctx, shared.FilterByID(req.PropertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound("property not found") // nolint:wrapcheck
	}

	if property.Status != propertyModel.StatusAvailable {
		return res, failure.Forbidden("property is not available for booking") // nolint:wrapcheck
	}

	if !property.IsApproved {
		return res, failure.Forbidden("property has not been approved") // nolint:wrapcheck
	}

	reference, err := s.allocateReference(ctx)
	if err != nil {
		return res, err
	}

	booking, err := req.ToModel(renter, property.OwnerID, reference, property.Price, s.cfg.Booking.DepositMonths)
	if err != nil {
		log.Error().Err(err).Msg("invalid check-in date")

		return res, failure.BadRequestFromString("check_in_date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		return res, err
	}

	s.publish(ctx, dto.EventBookingCreated, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getAuthorized(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) MyBookings(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.list(ctx, params, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldRenterID, Value: user, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	})
}

func (s *serviceImpl) LandlordBookings(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LandlordBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.list(ctx, params, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldLandlordID, Value: user, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	})
}

func (s *serviceImpl) PropertyBookings(ctx context.Context, propertyID string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PropertyBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	property, err := s.properties.Get(ctx, shared.FilterByID(propertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound("property not found") // nolint:wrapcheck
	}

	if property.OwnerID != user && role != constant.RoleAdmin {
		return res, failure.Forbidden("not the property owner") // nolint:wrapcheck
	}

	return s.list(ctx, params, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldPropertyID, Value: propertyID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	})
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.LandlordID != user {
		return res, failure.Forbidden("only the landlord can confirm a booking") // nolint:wrapcheck
	}

	if booking.BookingStatus != model.StatusPending {
		return res, failure.BadRequestFromString("only pending bookings can be confirmed") // nolint:wrapcheck
	}

	won, err := s.repo.ConfirmPending(ctx, booking.ID, user, booking.PropertyID)
	if err != nil {
		log.Error().Err(err).Msg("failed to confirm booking")

		return res, fmt.Errorf("failed to confirm booking: %w", err)
	}

	if !won {
		return res, failure.BadRequestFromString("booking was already transitioned") // nolint:wrapcheck
	}

	booking, err = s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	s.publish(ctx, dto.EventBookingConfirmed, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.RenterID != user && booking.LandlordID != user {
		return res, failure.Forbidden("only the renter or the landlord can cancel a booking") // nolint:wrapcheck
	}

	if booking.Terminal() {
		return res, failure.BadRequestFromString(fmt.Sprintf("booking is already %s", booking.BookingStatus)) // nolint:wrapcheck
	}

	won, err := s.repo.CancelActive(ctx, booking.ID, user, req.Reason, booking.PropertyID)
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	if !won {
		return res, failure.BadRequestFromString("booking was already transitioned") // nolint:wrapcheck
	}

	booking, err = s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	s.publish(ctx, dto.EventBookingCancelled, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.RenterID != user {
		return res, failure.Forbidden("only the renter can record a payment") // nolint:wrapcheck
	}

	if !booking.AcceptsPayment() {
		return res, failure.BadRequestFromString(fmt.Sprintf("booking is %s and no longer accepts payments", booking.BookingStatus)) // nolint:wrapcheck
	}

	transactionID := req.TransactionID
	if transactionID == constant.Empty {
		transactionID = fmt.Sprintf("TXN%d%d", timezone.Now().UnixMilli(), rand.IntN(1000))
	}

	won, err := s.repo.ApplyPayment(ctx, booking.ID, user, req.Amount, req.Method, transactionID, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to record payment")

		return res, fmt.Errorf("failed to record payment: %w", err)
	}

	if !won {
		return res, failure.BadRequestFromString("booking no longer accepts payments") // nolint:wrapcheck
	}

	booking, err = s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	s.publish(ctx, dto.EventBookingPayment, booking)

	res.FromModel(booking)

	return res, nil
}

// Invoice renders the booking's invoice and returns the bytes with the
// reference used for the download filename.
func (s *serviceImpl) Invoice(ctx context.Context, id string) (document []byte, reference string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getAuthorized(ctx, id)
	if err != nil {
		return nil, constant.Empty, err
	}

	property, err := s.properties.Get(ctx, shared.FilterByID(booking.PropertyID, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return nil, constant.Empty, fmt.Errorf("failed to get property: %w", err)
	}

	renter, err := s.users.Get(ctx, shared.FilterByID(booking.RenterID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get renter")

		return nil, constant.Empty, fmt.Errorf("failed to get renter: %w", err)
	}

	landlord, err := s.users.Get(ctx, shared.FilterByID(booking.LandlordID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get landlord")

		return nil, constant.Empty, fmt.Errorf("failed to get landlord: %w", err)
	}

	data := invoice.Data{
		BookingID:       booking.ID,
		Reference:       booking.Reference,
		BookingStatus:   booking.BookingStatus,
		PaymentStatus:   booking.PaymentStatus,
		CheckInDate:     booking.CheckInDate,
		CheckOutDate:    booking.CheckOutDate,
		DurationMonths:  booking.DurationMonths,
		Occupants:       booking.Occupants,
		MonthlyRent:     booking.MonthlyRent,
		SecurityDeposit: booking.SecurityDeposit,
		DepositMonths:   s.cfg.Booking.DepositMonths,
		TotalAmount:     booking.TotalAmount,
		PaidAmount:      booking.PaidAmount,

		PropertyName:     property.Name,
		PropertyLocation: property.Location,
		PropertyType:     property.Type,

		RenterName:  renter.Name,
		RenterEmail: renter.Email,
		RenterPhone: renter.Phone,

		LandlordName:  landlord.Name,
		LandlordEmail: landlord.Email,

		IssuedAt: timezone.Now(),
	}

	if booking.SpecialRequests != nil {
		data.SpecialRequests = *booking.SpecialRequests
	}

	if property.Address != nil {
		data.PropertyAddress = *property.Address
	}

	document, err = s.renderer.Render(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to render invoice")

		return nil, constant.Empty, fmt.Errorf("failed to render invoice: %w", err)
	}

	return document, data.Number(), nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) getAuthorized(ctx context.Context, id string) (model.Booking, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return booking, err
	}

	if booking.RenterID != user && booking.LandlordID != user && role != constant.RoleAdmin {
		return booking, failure.Forbidden("not a party to this booking") // nolint:wrapcheck
	}

	return booking, nil
}

// allocateReference draws wall-clock based references until one is free.
// Collisions are rare but possible, so each candidate is checked before use.
func (s *serviceImpl) allocateReference(ctx context.Context) (string, error) {
	attempts := s.cfg.Booking.ReferenceMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for range attempts {
		reference := generateReference()

		exist, err := s.repo.Exist(ctx, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{Field: model.FieldReference, Value: reference, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
			Operator: gDto.FilterGroupOperatorAnd,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to check booking reference")

			return constant.Empty, fmt.Errorf("failed to check booking reference: %w", err)
		}

		if !exist {
			return reference, nil
		}
	}

	return constant.Empty, failure.Conflict("could not allocate a unique booking reference") // nolint:wrapcheck
}

func generateReference() string {
	timestamp := strings.ToUpper(strconv.FormatInt(timezone.Now().UnixMilli(), 36))

	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = referenceCharset[rand.IntN(len(referenceCharset))]
	}

	return fmt.Sprintf("BK-%s-%s", timestamp, suffix)
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	event := dto.NewBookingEvent(eventType, booking, timezone.Now())

	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.BookingTopic, kafka.Message{
			Key:   booking.ID,
			Value: event,
		})
		if err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish booking event")
		}
	}()
}
