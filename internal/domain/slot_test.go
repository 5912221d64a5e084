package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlot_Overlaps(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 3, 1, h, m, 0, 0, time.UTC) }
	s := &Slot{StartAt: at(9, 0), EndAt: at(10, 0)}

	assert.True(t, s.Overlaps(at(9, 30), at(10, 30)))
	assert.True(t, s.Overlaps(at(8, 0), at(11, 0)))
	assert.False(t, s.Overlaps(at(10, 0), at(11, 0)), "adjacent slots do not overlap")
	assert.False(t, s.Overlaps(at(8, 0), at(9, 0)), "adjacent slots do not overlap")
	assert.True(t, s.SameRange(at(9, 0), at(10, 0)))
	assert.Equal(t, 60, s.DurationMinutes())
}

func TestStatuses_Closed(t *testing.T) {
	assert.True(t, RequestStatusPending.IsValid())
	assert.False(t, RequestStatus("accepted").IsValid())
	assert.True(t, InterventionStatusInProgress.IsValid())
	assert.False(t, InterventionStatus("in progress").IsValid())
	assert.True(t, RoleResponsable.IsValid())
	assert.False(t, Role("admin").IsValid())
}

func TestStockMovement_Consistency(t *testing.T) {
	m := NewStockMovement(1, MovementOut, -2, 3, "intervention #42")

	assert.Equal(t, 5, m.StockBefore)
	assert.True(t, m.IsConsistent())

	m.StockAfter = -1
	assert.False(t, m.IsConsistent())
}

func TestBookingRequest_CanBeCancelledBy(t *testing.T) {
	r := &BookingRequest{ClientID: 3, Status: RequestStatusPending}

	assert.True(t, r.CanBeCancelledBy(3))
	assert.False(t, r.CanBeCancelledBy(4))

	r.Status = RequestStatusConfirmed
	assert.False(t, r.CanBeCancelledBy(3))
}
