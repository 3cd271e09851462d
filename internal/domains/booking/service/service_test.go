package service_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"estate/config"
	"estate/infras/kafka"
	"estate/infras/otel/mocks"
	bookingMocks "estate/internal/domains/booking/mocks"
	"estate/internal/domains/booking/model"
	"estate/internal/domains/booking/model/dto"
	"estate/internal/domains/booking/service"
	invoiceMocks "estate/internal/domains/invoice/mocks"
	propertyMocks "estate/internal/domains/property/mocks"
	propertyModel "estate/internal/domains/property/model"
	userMocks "estate/internal/domains/user/mocks"
	"estate/shared/constant"
	"estate/shared/failure"
	gModel "estate/shared/model"
	"estate/shared/timezone"
)

// kafkaStub swallows events; the publisher runs on its own goroutine so a
// gomock expectation could fire after the controller is finished.
type kafkaStub struct{}

func (kafkaStub) SendMessages(context.Context, string, ...kafka.Message) error { return nil }
func (kafkaStub) Consume(context.Context, string, string, func(kafkaGo.Message)) {
}
func (kafkaStub) Reader(string, string) *kafkaGo.Reader { return nil }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Booking.DepositMonths = 2
	cfg.Booking.ReferenceMaxAttempts = 5
	cfg.Kafka.BookingTopic = "estate.booking.events"

	return cfg
}

func userContext(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockProperties := propertyMocks.NewMockProperty(ctrl)
	mockUsers := userMocks.NewMockUser(ctrl)
	mockRenderer := invoiceMocks.NewMockRenderer(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockProperties, mockUsers, mockRenderer, kafkaStub{}, testConfig(), mockOtel)

	availableProperty := propertyModel.Property{
		ID:         "property-1",
		Name:       "Skyline Residency",
		Price:      25000,
		OwnerID:    "landlord-1",
		Status:     propertyModel.StatusAvailable,
		IsApproved: true,
	}

	referencePattern := regexp.MustCompile(`^BK-[0-9A-Z]+-[0-9A-Z]{4}$`)

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		check     func(t *testing.T, res dto.BookingResponse)
		wantErr   bool
	}{
		{
			name: "successful booking derives deposit and total from the rent",
			req: dto.CreateBookingRequest{
				PropertyID:     "property-1",
				CheckInDate:    "2026-10-01",
				DurationMonths: 12,
				Occupants:      2,
			},
			setupMock: func() {
				mockProperties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableProperty, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				t.Helper()

				assert.Equal(t, float64(50000), res.SecurityDeposit)
				assert.Equal(t, float64(350000), res.TotalAmount)
				assert.Equal(t, model.StatusPending, res.BookingStatus)
				assert.Equal(t, model.PaymentStatusPending, res.PaymentStatus)
				assert.Equal(t, "2027-10-01", res.CheckOutDate)
				assert.Regexp(t, referencePattern, res.Reference)
				assert.Equal(t, "landlord-1", res.LandlordID)
			},
			wantErr: false,
		},
		{
			name: "property not found",
			req: dto.CreateBookingRequest{
				PropertyID:     "missing",
				CheckInDate:    "2026-10-01",
				DurationMonths: 6,
			},
			setupMock: func() {
				mockProperties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(propertyModel.Property{}, nil)
			},
			wantErr: true,
		},
		{
			name: "rented property is rejected before any insert",
			req: dto.CreateBookingRequest{
				PropertyID:     "property-1",
				CheckInDate:    "2026-10-01",
				DurationMonths: 6,
			},
			setupMock: func() {
				rented := availableProperty
				rented.Status = propertyModel.StatusRented

				mockProperties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rented, nil)
			},
			wantErr: true,
		},
		{
			name: "unapproved property is rejected",
			req: dto.CreateBookingRequest{
				PropertyID:     "property-1",
				CheckInDate:    "2026-10-01",
				DurationMonths: 6,
			},
			setupMock: func() {
				unapproved := availableProperty
				unapproved.IsApproved = false

				mockProperties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(unapproved, nil)
			},
			wantErr: true,
		},
		{
			name: "malformed check-in date",
			req: dto.CreateBookingRequest{
				PropertyID:     "property-1",
				CheckInDate:    "01/10/2026",
				DurationMonths: 6,
			},
			setupMock: func() {
				mockProperties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableProperty, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "reference allocation gives up after max attempts",
			req: dto.CreateBookingRequest{
				PropertyID:     "property-1",
				CheckInDate:    "2026-10-01",
				DurationMonths: 6,
			},
			setupMock: func() {
				mockProperties.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableProperty, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil).
					Times(5)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(userContext("renter-1", constant.RoleRenter), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestBookingService_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockProperties := propertyMocks.NewMockProperty(ctrl)
	mockUsers := userMocks.NewMockUser(ctrl)
	mockRenderer := invoiceMocks.NewMockRenderer(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockProperties, mockUsers, mockRenderer, kafkaStub{}, testConfig(), mockOtel)

	pendingBooking := model.Booking{
		ID:            "booking-1",
		Reference:     "BK-TEST-0001",
		PropertyID:    "property-1",
		RenterID:      "renter-1",
		LandlordID:    "landlord-1",
		BookingStatus: model.StatusPending,
		PaymentStatus: model.PaymentStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "landlord confirms a pending booking",
			ctx:  userContext("landlord-1", constant.RoleLandlord),
			setupMock: func() {
				confirmed := pendingBooking
				confirmed.BookingStatus = model.StatusConfirmed

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)

				mockRepo.EXPECT().
					ConfirmPending(gomock.Any(), "booking-1", "landlord-1", "property-1").
					Return(true, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)
			},
			wantErr: false,
		},
		{
			name: "renter cannot confirm",
			ctx:  userContext("renter-1", constant.RoleRenter),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "already confirmed booking is an invalid transition",
			ctx:  userContext("landlord-1", constant.RoleLandlord),
			setupMock: func() {
				confirmed := pendingBooking
				confirmed.BookingStatus = model.StatusConfirmed

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "losing the conditional update is an invalid transition",
			ctx:  userContext("landlord-1", constant.RoleLandlord),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking, nil)

				mockRepo.EXPECT().
					ConfirmPending(gomock.Any(), "booking-1", "landlord-1", "property-1").
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Confirm(tt.ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockProperties := propertyMocks.NewMockProperty(ctrl)
	mockUsers := userMocks.NewMockUser(ctrl)
	mockRenderer := invoiceMocks.NewMockRenderer(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockProperties, mockUsers, mockRenderer, kafkaStub{}, testConfig(), mockOtel)

	confirmedBooking := model.Booking{
		ID:            "booking-1",
		PropertyID:    "property-1",
		RenterID:      "renter-1",
		LandlordID:    "landlord-1",
		BookingStatus: model.StatusConfirmed,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "renter cancels a confirmed booking",
			ctx:  userContext("renter-1", constant.RoleRenter),
			setupMock: func() {
				cancelled := confirmedBooking
				cancelled.BookingStatus = model.StatusCancelled

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking, nil)

				mockRepo.EXPECT().
					CancelActive(gomock.Any(), "booking-1", "renter-1", "plans changed", "property-1").
					Return(true, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
			wantErr: false,
		},
		{
			name: "outsider cannot cancel",
			ctx:  userContext("someone-else", constant.RoleRenter),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "rejected booking is terminal",
			ctx:  userContext("renter-1", constant.RoleRenter),
			setupMock: func() {
				rejected := confirmedBooking
				rejected.BookingStatus = model.StatusRejected

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rejected, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "completed booking is terminal",
			ctx:  userContext("landlord-1", constant.RoleLandlord),
			setupMock: func() {
				completed := confirmedBooking
				completed.BookingStatus = model.StatusCompleted

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completed, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Cancel(tt.ctx, "booking-1", dto.CancelBookingRequest{Reason: "plans changed"})

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestBookingService_RecordPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockProperties := propertyMocks.NewMockProperty(ctrl)
	mockUsers := userMocks.NewMockUser(ctrl)
	mockRenderer := invoiceMocks.NewMockRenderer(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockProperties, mockUsers, mockRenderer, kafkaStub{}, testConfig(), mockOtel)

	confirmedBooking := model.Booking{
		ID:            "booking-1",
		PropertyID:    "property-1",
		RenterID:      "renter-1",
		LandlordID:    "landlord-1",
		TotalAmount:   10000,
		PaidAmount:    3000,
		BookingStatus: model.StatusConfirmed,
		PaymentStatus: model.PaymentStatusPartial,
	}

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.RecordPaymentRequest
		setupMock func()
		check     func(t *testing.T, res dto.BookingResponse)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "payments accumulate and the status follows the total",
			ctx:  userContext("renter-1", constant.RoleRenter),
			req:  dto.RecordPaymentRequest{Amount: 4000, Method: "upi"},
			setupMock: func() {
				paid := confirmedBooking
				paid.PaidAmount = 7000

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking, nil)

				mockRepo.EXPECT().
					ApplyPayment(gomock.Any(), "booking-1", "renter-1", float64(4000), "upi", gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(paid, nil)
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				t.Helper()

				assert.Equal(t, float64(7000), res.PaidAmount)
				assert.Equal(t, model.PaymentStatusPartial, res.PaymentStatus)
			},
			wantErr: false,
		},
		{
			name: "landlord cannot record a payment",
			ctx:  userContext("landlord-1", constant.RoleLandlord),
			req:  dto.RecordPaymentRequest{Amount: 4000, Method: "upi"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "cancelled booking no longer accepts payments",
			ctx:  userContext("renter-1", constant.RoleRenter),
			req:  dto.RecordPaymentRequest{Amount: 4000, Method: "upi"},
			setupMock: func() {
				cancelled := confirmedBooking
				cancelled.BookingStatus = model.StatusCancelled

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "losing the conditional update is an invalid transition",
			ctx:  userContext("renter-1", constant.RoleRenter),
			req:  dto.RecordPaymentRequest{Amount: 4000, Method: "upi", TransactionID: "TXN123"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmedBooking, nil)

				mockRepo.EXPECT().
					ApplyPayment(gomock.Any(), "booking-1", "renter-1", float64(4000), "upi", "TXN123", gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.RecordPayment(tt.ctx, "booking-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestBookingService_Get_Authorization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockProperties := propertyMocks.NewMockProperty(ctrl)
	mockUsers := userMocks.NewMockUser(ctrl)
	mockRenderer := invoiceMocks.NewMockRenderer(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockProperties, mockUsers, mockRenderer, kafkaStub{}, testConfig(), mockOtel)

	booking := model.Booking{
		ID:            "booking-1",
		RenterID:      "renter-1",
		LandlordID:    "landlord-1",
		BookingStatus: model.StatusPending,
	}

	tests := []struct {
		name    string
		ctx     context.Context
		ret     model.Booking
		retErr  error
		wantErr bool
	}{
		{name: "renter can read", ctx: userContext("renter-1", constant.RoleRenter), ret: booking},
		{name: "landlord can read", ctx: userContext("landlord-1", constant.RoleLandlord), ret: booking},
		{name: "admin can read", ctx: userContext("admin-1", constant.RoleAdmin), ret: booking},
		{name: "stranger is forbidden", ctx: userContext("stranger", constant.RoleRenter), ret: booking, wantErr: true},
		{name: "missing booking", ctx: userContext("renter-1", constant.RoleRenter), ret: model.Booking{}, wantErr: true},
		{name: "repository failure", ctx: userContext("renter-1", constant.RoleRenter), retErr: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.ret, tt.retErr)

			_, err := svc.Get(tt.ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}
