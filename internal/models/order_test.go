// internal/models/order_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusApproved, true},
		{OrderStatusPending, OrderStatusRejected, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusApproved, OrderStatusDelivered, true},
		{OrderStatusApproved, OrderStatusRejected, false},
		{OrderStatusApproved, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusApproved, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusRejected, OrderStatusApproved, false},
		{OrderStatusRejected, OrderStatusDelivered, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusApproved.Terminal())
	assert.True(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusRejected.Terminal())
}

func TestCouponUsable(t *testing.T) {
	now := time.Now()

	fresh := Coupon{Discount: 10, ExpiresAt: now.Add(time.Hour), MaxUses: 2, UsedCount: 1}
	assert.True(t, fresh.Usable(now))

	expired := Coupon{Discount: 10, ExpiresAt: now.Add(-time.Hour)}
	assert.False(t, expired.Usable(now))

	exhausted := Coupon{Discount: 10, ExpiresAt: now.Add(time.Hour), MaxUses: 2, UsedCount: 2}
	assert.False(t, exhausted.Usable(now))

	// Zero max uses means unlimited; zero expiry means no expiry.
	unlimited := Coupon{Discount: 10, UsedCount: 1000}
	assert.True(t, unlimited.Usable(now))
}

func TestCouponApply(t *testing.T) {
	half := Coupon{Discount: 50}
	assert.Equal(t, int64(20), half.Apply(40))

	full := Coupon{Discount: 100}
	assert.Equal(t, int64(0), full.Apply(40))

	none := Coupon{Discount: 0}
	assert.Equal(t, int64(40), none.Apply(40))

	rounded := Coupon{Discount: 33}
	assert.Equal(t, int64(67), rounded.Apply(100))
}
