package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estate/internal/domains/booking/model"
	"estate/internal/domains/booking/model/dto"
)

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		PropertyID:     "property-1",
		CheckInDate:    "2026-10-01",
		DurationMonths: 12,
		Occupants:      3,
	}

	booking, err := req.ToModel("renter-1", "landlord-1", "BK-LZX4T2-AB12", 25000, 2)

	assert.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "BK-LZX4T2-AB12", booking.Reference)
	assert.Equal(t, "renter-1", booking.RenterID)
	assert.Equal(t, "landlord-1", booking.LandlordID)
	assert.Equal(t, 3, booking.Occupants)

	// Deposit is rent times the deposit multiplier, and the total is always
	// rent*duration plus deposit.
	assert.Equal(t, float64(50000), booking.SecurityDeposit)
	assert.Equal(t, float64(350000), booking.TotalAmount)

	assert.Equal(t, "2027-10-01", booking.CheckOutDate.Format("2006-01-02"))
	assert.Equal(t, model.StatusPending, booking.BookingStatus)
	assert.Equal(t, model.PaymentStatusPending, booking.PaymentStatus)
}

func TestCreateBookingRequest_ToModel_DefaultOccupants(t *testing.T) {
	req := dto.CreateBookingRequest{
		PropertyID:     "property-1",
		CheckInDate:    "2026-10-01",
		DurationMonths: 6,
	}

	booking, err := req.ToModel("renter-1", "landlord-1", "BK-LZX4T2-AB12", 18000, 2)

	assert.NoError(t, err)
	assert.Equal(t, 1, booking.Occupants)
}

func TestCreateBookingRequest_ToModel_MonthEndRollover(t *testing.T) {
	req := dto.CreateBookingRequest{
		PropertyID:     "property-1",
		CheckInDate:    "2026-08-31",
		DurationMonths: 1,
	}

	booking, err := req.ToModel("renter-1", "landlord-1", "BK-LZX4T2-AB12", 18000, 2)

	assert.NoError(t, err)

	// AddDate normalizes Aug 31 + 1 month to Oct 1.
	assert.Equal(t, "2026-10-01", booking.CheckOutDate.Format("2006-01-02"))
}

func TestCreateBookingRequest_ToModel_BadDate(t *testing.T) {
	req := dto.CreateBookingRequest{
		PropertyID:     "property-1",
		CheckInDate:    "01/10/2026",
		DurationMonths: 12,
	}

	_, err := req.ToModel("renter-1", "landlord-1", "BK-LZX4T2-AB12", 25000, 2)

	assert.Error(t, err)
}

func TestBooking_Terminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{model.StatusPending, false},
		{model.StatusConfirmed, false},
		{model.StatusCancelled, true},
		{model.StatusCompleted, true},
		{model.StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			booking := model.Booking{BookingStatus: tt.status}

			assert.Equal(t, tt.want, booking.Terminal())
		})
	}
}

func TestBooking_AcceptsPayment(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{model.StatusPending, true},
		{model.StatusConfirmed, true},
		{model.StatusCancelled, false},
		{model.StatusCompleted, false},
		{model.StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			booking := model.Booking{BookingStatus: tt.status}

			assert.Equal(t, tt.want, booking.AcceptsPayment())
		})
	}
}
