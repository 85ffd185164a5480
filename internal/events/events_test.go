package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "hms.appointment.approved.abc", Subject(AppointmentApproved, "abc"))
	assert.Equal(t, "hms.payment.rejected.*", Wildcard(PaymentRejected))
}

func TestIDFromSubject(t *testing.T) {
	id, ok := IDFromSubject("hms.payment.approved.65a1")
	assert.True(t, ok)
	assert.Equal(t, "65a1", id)

	_, ok = IDFromSubject("hms.payment.approved.")
	assert.False(t, ok)
	_, ok = IDFromSubject("nodots")
	assert.False(t, ok)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), PaymentApproved, "x"))
}
