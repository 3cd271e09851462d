package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmPendingQuery(t *testing.T) {
	query := confirmPendingQuery()

	// Only a pending booking matches, so exactly one of two concurrent
	// confirms can affect the row.
	assert.Contains(t, query, "UPDATE bookings SET booking_status = :status")
	assert.Contains(t, query, "WHERE id = :id AND booking_status = :expected")
}

func TestCancelActiveQuery(t *testing.T) {
	query := cancelActiveQuery()

	assert.Contains(t, query, "UPDATE bookings SET booking_status = :status")
	assert.Contains(t, query, "cancellation_reason = :reason")

	// Terminal bookings never match the guard.
	assert.Contains(t, query, "WHERE id = :id AND booking_status IN (:pending, :confirmed)")
}

func TestApplyPaymentQuery(t *testing.T) {
	query := applyPaymentQuery()

	// The increment is additive, so concurrent payments accumulate instead
	// of overwriting each other.
	assert.Contains(t, query, "paid_amount = paid_amount + :amount")
	assert.NotContains(t, query, "paid_amount = :amount")

	// Payment status recomputes from the accumulated amount. Once the total
	// is covered the first branch keeps winning, so a completed status never
	// steps back to partial.
	assert.Contains(t, query, "WHEN paid_amount + :amount >= total_amount THEN :completed")
	assert.Contains(t, query, "WHEN paid_amount + :amount > 0 THEN :partial")
	assert.Contains(t, query, "ELSE payment_status")

	// Cancelled, completed and rejected bookings are frozen.
	assert.Contains(t, query, "WHERE id = :id AND booking_status IN (:pending, :confirmed)")
}
