package dto

import (
	"time"

	"estate/internal/domains/booking/model"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingPayment   = "booking.payment"
)

// BookingEvent is the payload published to the booking lifecycle topic.
// Consumers replay these to reconcile property availability with booking
// state after a partial failure.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	Reference     string    `json:"booking_reference"`
	PropertyID    string    `json:"property_id"`
	RenterID      string    `json:"renter_id"`
	LandlordID    string    `json:"landlord_id"`
	BookingStatus string    `json:"booking_status"`
	PaymentStatus string    `json:"payment_status"`
	PaidAmount    float64   `json:"paid_amount"`
	TotalAmount   float64   `json:"total_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, mod model.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     mod.ID,
		Reference:     mod.Reference,
		PropertyID:    mod.PropertyID,
		RenterID:      mod.RenterID,
		LandlordID:    mod.LandlordID,
		BookingStatus: mod.BookingStatus,
		PaymentStatus: mod.PaymentStatus,
		PaidAmount:    mod.PaidAmount,
		TotalAmount:   mod.TotalAmount,
		OccurredAt:    occurredAt,
	}
}
