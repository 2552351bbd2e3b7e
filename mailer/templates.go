package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/modernclinic/booking-api/models"
)

// PaymentSuccessEmail builds the confirmation sent after a verified online
// payment.
func PaymentSuccessEmail(name string, plans []models.SelectedPlan, amount float64, currency string) (subject, body string) {
	details := make([]string, 0, len(plans))
	for _, plan := range plans {
		details = append(details, fmt.Sprintf("%s (%s)", plan.Title, plan.DurationCode))
	}

	subject = "Payment Successful - Modern Clinic"
	body = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #333;">Payment Successful!</h2>
			<p>Dear %s,</p>
			<p>Your order has been successfully completed.</p>
			<p><strong>Plan(s) Purchased:</strong> %s</p>
			<p><strong>Total Amount:</strong> %s %.2f</p>
			<p>Thank you for choosing Modern Clinic. Your plan is now active.</p>
			<p>If you have any questions, please contact our support team.</p>
			<br>
			<p>Best regards,<br>Modern Clinic Team</p>
		</div>
	`, name, strings.Join(details, ", "), currency, amount)
	return subject, body
}

// ExpiryReminderEmail builds the reminder sent when a plan expires within
// the reminder window.
func ExpiryReminderEmail(name, planTitle string, expiryDate time.Time) (subject, body string) {
	subject = "Plan Expiry Reminder - Modern Clinic"
	body = fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #333;">Plan Expiry Reminder</h2>
			<p>Dear %s,</p>
			<p>This is a reminder that your plan <strong>%s</strong> is expiring soon.</p>
			<p><strong>Expiry Date:</strong> %s</p>
			<p>Please renew your plan to continue enjoying our services.</p>
			<p>If you have any questions, please contact our support team.</p>
			<br>
			<p>Best regards,<br>Modern Clinic Team</p>
		</div>
	`, name, planTitle, expiryDate.Format("Mon Jan 2 2006"))
	return subject, body
}
