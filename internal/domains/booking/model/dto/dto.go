package dto

import (
	"time"

	"estate/internal/domains/booking/model"
	"estate/shared"
	"estate/shared/currency"
	gDto "estate/shared/dto"
	gModel "estate/shared/model"
	"estate/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PropertyID      string  `json:"property_id"      validate:"required"`
	CheckInDate     string  `json:"check_in_date"    validate:"required"`
	DurationMonths  int     `json:"duration_months"  validate:"required,min=1"`
	Occupants       int     `json:"occupants"        validate:"omitempty,min=1"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=2000"`
}

// ToModel snapshots the property price and derives every money field from
// it. The total is always recomputed from rent, duration and deposit.
func (c *CreateBookingRequest) ToModel(renterID, landlordID, reference string, monthlyRent float64, depositMonths int) (model.Booking, error) {
	checkIn, err := time.Parse("2006-01-02", c.CheckInDate)
	if err != nil {
		return model.Booking{}, err
	}

	occupants := c.Occupants
	if occupants == 0 {
		occupants = 1
	}

	deposit := monthlyRent * float64(depositMonths)

	return model.Booking{
		ID:              uuid.NewString(),
		Reference:       reference,
		PropertyID:      c.PropertyID,
		RenterID:        renterID,
		LandlordID:      landlordID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkIn.AddDate(0, c.DurationMonths, 0),
		DurationMonths:  c.DurationMonths,
		Occupants:       occupants,
		SpecialRequests: c.SpecialRequests,
		MonthlyRent:     monthlyRent,
		SecurityDeposit: deposit,
		TotalAmount:     monthlyRent*float64(c.DurationMonths) + deposit,
		PaymentStatus:   model.PaymentStatusPending,
		BookingStatus:   model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  renterID,
			ModifiedBy: renterID,
		},
	}, nil
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type RecordPaymentRequest struct {
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	Method        string  `json:"method"         validate:"required,max=50"`
	TransactionID string  `json:"transaction_id" validate:"omitempty,max=100"`
}

type BookingResponse struct {
	ID        string `json:"id"`
	Reference string `json:"booking_reference"`

	PropertyID string `json:"property_id"`
	RenterID   string `json:"renter_id"`
	LandlordID string `json:"landlord_id"`

	CheckInDate     string  `json:"check_in_date"`
	CheckOutDate    string  `json:"check_out_date"`
	DurationMonths  int     `json:"duration_months"`
	Occupants       int     `json:"occupants"`
	SpecialRequests *string `json:"special_requests,omitempty"`

	MonthlyRent            float64 `json:"monthly_rent"`
	SecurityDeposit        float64 `json:"security_deposit"`
	TotalAmount            float64 `json:"total_amount"`
	TotalAmountDisplay     string  `json:"total_amount_display"`
	PaidAmount             float64 `json:"paid_amount"`
	PaymentStatus          string  `json:"payment_status"`
	PaymentMethod          *string `json:"payment_method,omitempty"`
	TransactionID          *string `json:"transaction_id,omitempty"`
	PaymentDate            string  `json:"payment_date,omitempty"`
	BookingStatus          string  `json:"booking_status"`
	ConfirmedAt            string  `json:"confirmed_at,omitempty"`
	ConfirmedBy            *string `json:"confirmed_by,omitempty"`
	CancelledAt            string  `json:"cancelled_at,omitempty"`
	CancelledBy            *string `json:"cancelled_by,omitempty"`
	CancellationReason     *string `json:"cancellation_reason,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.Reference = mod.Reference
	r.PropertyID = mod.PropertyID
	r.RenterID = mod.RenterID
	r.LandlordID = mod.LandlordID
	r.CheckInDate = mod.CheckInDate.Format("2006-01-02")
	r.CheckOutDate = mod.CheckOutDate.Format("2006-01-02")
	r.DurationMonths = mod.DurationMonths
	r.Occupants = mod.Occupants
	r.SpecialRequests = mod.SpecialRequests
	r.MonthlyRent = mod.MonthlyRent
	r.SecurityDeposit = mod.SecurityDeposit
	r.TotalAmount = mod.TotalAmount
	r.TotalAmountDisplay = currency.Format(mod.TotalAmount)
	r.PaidAmount = mod.PaidAmount
	r.PaymentStatus = mod.PaymentStatus
	r.PaymentMethod = mod.PaymentMethod
	r.TransactionID = mod.TransactionID
	r.BookingStatus = mod.BookingStatus
	r.ConfirmedBy = mod.ConfirmedBy
	r.CancelledBy = mod.CancelledBy
	r.CancellationReason = mod.CancellationReason

	if mod.PaymentDate != nil {
		r.PaymentDate = timezone.Format(*mod.PaymentDate, time.RFC3339)
	}

	if mod.ConfirmedAt != nil {
		r.ConfirmedAt = timezone.Format(*mod.ConfirmedAt, time.RFC3339)
	}

	if mod.CancelledAt != nil {
		r.CancelledAt = timezone.Format(*mod.CancelledAt, time.RFC3339)
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
