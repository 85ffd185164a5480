package email

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

const fallbackAppName = "Hospital Management System"

func appName(n string) string {
	if strings.TrimSpace(n) == "" {
		return fallbackAppName
	}
	return n
}

func greeting(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Hello"
	}
	return "Hello " + name
}

// PasswordResetData feeds BuildPasswordResetEmail.
type PasswordResetData struct {
	Name       string
	Email      string
	Code       string
	BaseURL    string
	AppName    string
	TTLMinutes int
}

// ResetURL points the frontend reset page at the account and code.
func (d PasswordResetData) ResetURL() string {
	q := url.Values{}
	q.Set("email", d.Email)
	q.Set("code", d.Code)
	return strings.TrimRight(d.BaseURL, "/") + "/reset-password?" + q.Encode()
}

func BuildPasswordResetEmail(d PasswordResetData) Message {
	app := appName(d.AppName)
	link := d.ResetURL()

	text := fmt.Sprintf(`%s,

We received a request to reset your %s password.

Your reset code is: %s
It expires in %d minutes.

You can also open this link:
%s

If you did not request this, you can ignore this email.`,
		greeting(d.Name), app, d.Code, d.TTLMinutes, link)

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #0f766e;">%s,</h2>
    <p>We received a request to reset your %s password.</p>
    <p style="background-color: #f3f4f6; padding: 10px 15px; border-radius: 4px; font-family: monospace; font-size: 20px; letter-spacing: 4px;">%s</p>
    <p>The code expires in %d minutes.</p>
    <p style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #0f766e; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Reset password</a>
    </p>
    <p style="color: #6b7280; font-size: 14px;">If you did not request this, you can ignore this email.</p>
</body>
</html>`,
		html.EscapeString(greeting(d.Name)), html.EscapeString(app), html.EscapeString(d.Code), d.TTLMinutes, html.EscapeString(link))

	return Message{
		To:       []string{d.Email},
		Subject:  fmt.Sprintf("Reset your %s password", app),
		TextBody: text,
		HTMLBody: body,
	}
}

// AppointmentStatusData feeds BuildAppointmentStatusEmail.
type AppointmentStatusData struct {
	Name       string
	Email      string
	DoctorName string
	Date       string
	Time       string
	Status     string
	Reason     string
	AppName    string
}

func BuildAppointmentStatusEmail(d AppointmentStatusData) Message {
	app := appName(d.AppName)
	status := strings.ToLower(d.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "%s,\n\nYour appointment with %s on %s at %s has been %s.\n",
		greeting(d.Name), d.DoctorName, d.Date, d.Time, status)
	if d.Reason != "" {
		fmt.Fprintf(&b, "\nReason: %s\n", d.Reason)
	}
	fmt.Fprintf(&b, "\nThe %s team", app)

	return Message{
		To:       []string{d.Email},
		Subject:  fmt.Sprintf("Appointment %s", status),
		TextBody: b.String(),
	}
}

// PaymentStatusData feeds BuildPaymentStatusEmail.
type PaymentStatusData struct {
	Email      string
	DoctorName string
	TotalFee   float64
	Status     string
	AppName    string
}

func BuildPaymentStatusEmail(d PaymentStatusData) Message {
	app := appName(d.AppName)
	status := strings.ToLower(d.Status)

	text := fmt.Sprintf(`Hello,

Your payment of %.2f for the consultation with %s has been %s.

The %s team`, d.TotalFee, d.DoctorName, status, app)

	return Message{
		To:       []string{d.Email},
		Subject:  fmt.Sprintf("Payment %s", status),
		TextBody: text,
	}
}
