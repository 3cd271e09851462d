package model

import (
	"time"

	"estate/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldReference          = "booking_reference"
	FieldPropertyID         = "property_id"
	FieldRenterID           = "renter_id"
	FieldLandlordID         = "landlord_id"
	FieldCheckInDate        = "check_in_date"
	FieldCheckOutDate       = "check_out_date"
	FieldDurationMonths     = "duration_months"
	FieldOccupants          = "occupants"
	FieldSpecialRequests    = "special_requests"
	FieldMonthlyRent        = "monthly_rent"
	FieldSecurityDeposit    = "security_deposit"
	FieldTotalAmount        = "total_amount"
	FieldPaymentStatus      = "payment_status"
	FieldPaymentMethod      = "payment_method"
	FieldTransactionID      = "transaction_id"
	FieldPaidAmount         = "paid_amount"
	FieldPaymentDate        = "payment_date"
	FieldBookingStatus      = "booking_status"
	FieldConfirmedAt        = "confirmed_at"
	FieldConfirmedBy        = "confirmed_by"
	FieldCancelledAt        = "cancelled_at"
	FieldCancelledBy        = "cancelled_by"
	FieldCancellationReason = "cancellation_reason"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusPartial   = "partial"
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusFailed    = "failed"
)

type Booking struct {
	ID        string `db:"id"`
	Reference string `db:"booking_reference"`

	PropertyID string `db:"property_id"`
	RenterID   string `db:"renter_id"`
	LandlordID string `db:"landlord_id"`

	CheckInDate     time.Time `db:"check_in_date"`
	CheckOutDate    time.Time `db:"check_out_date"`
	DurationMonths  int       `db:"duration_months"`
	Occupants       int       `db:"occupants"`
	SpecialRequests *string   `db:"special_requests"`

	// Rent is a snapshot of the property price at creation, never live-linked.
	MonthlyRent     float64 `db:"monthly_rent"`
	SecurityDeposit float64 `db:"security_deposit"`
	TotalAmount     float64 `db:"total_amount"`

	PaymentStatus string     `db:"payment_status"`
	PaymentMethod *string    `db:"payment_method"`
	TransactionID *string    `db:"transaction_id"`
	PaidAmount    float64    `db:"paid_amount"`
	PaymentDate   *time.Time `db:"payment_date"`

	BookingStatus      string     `db:"booking_status"`
	ConfirmedAt        *time.Time `db:"confirmed_at"`
	ConfirmedBy        *string    `db:"confirmed_by"`
	CancelledAt        *time.Time `db:"cancelled_at"`
	CancelledBy        *string    `db:"cancelled_by"`
	CancellationReason *string    `db:"cancellation_reason"`
	model.Metadata
}

// Terminal reports whether the booking can take no further status transition.
func (b *Booking) Terminal() bool {
	switch b.BookingStatus {
	case StatusCancelled, StatusCompleted, StatusRejected:
		return true
	}

	return false
}

// AcceptsPayment reports whether payment events may still accrue.
func (b *Booking) AcceptsPayment() bool {
	return b.BookingStatus == StatusPending || b.BookingStatus == StatusConfirmed
}
