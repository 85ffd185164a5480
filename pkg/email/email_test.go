package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPasswordResetEmail(t *testing.T) {
	m := BuildPasswordResetEmail(PasswordResetData{
		Name:       "Ada",
		Email:      "ada@example.com",
		Code:       "123456",
		BaseURL:    "https://hms.example.com/",
		TTLMinutes: 15,
	})

	assert.Equal(t, []string{"ada@example.com"}, m.To)
	assert.Contains(t, m.Subject, fallbackAppName)
	assert.Contains(t, m.TextBody, "123456")
	assert.Contains(t, m.TextBody, "https://hms.example.com/reset-password?code=123456&email=ada%40example.com")
	assert.Contains(t, m.HTMLBody, "Hello Ada")
}

func TestBuildAppointmentStatusEmail_IncludesReason(t *testing.T) {
	m := BuildAppointmentStatusEmail(AppointmentStatusData{
		Email:      "p@example.com",
		DoctorName: "Dr. House",
		Date:       "2024-01-15",
		Time:       "10:00 AM",
		Status:     "Cancelled",
		Reason:     "doctor unavailable",
	})

	assert.Equal(t, "Appointment cancelled", m.Subject)
	assert.Contains(t, m.TextBody, "Reason: doctor unavailable")
}

func TestBuildMessage_Validation(t *testing.T) {
	_, err := buildMessage("", Message{To: []string{"a@b.c"}, Subject: "s", TextBody: "x"})
	assert.ErrorAs(t, err, &ErrInvalidMessage{})

	_, err = buildMessage("from@b.c", Message{To: []string{" "}, Subject: "s", TextBody: "x"})
	assert.ErrorAs(t, err, &ErrInvalidMessage{})

	_, err = buildMessage("from@b.c", Message{To: []string{"a@b.c"}, Subject: "s"})
	assert.ErrorAs(t, err, &ErrInvalidMessage{})

	msg, err := buildMessage("from@b.c", Message{To: []string{"a@b.c"}, Subject: "s", HTMLBody: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.c"}, msg.GetHeader("To"))
}

func TestClient_SendDisabled(t *testing.T) {
	err := New(Config{Enabled: false}).Send(context.Background(), Message{})
	assert.True(t, errors.As(err, &ErrDisabled{}))
}
