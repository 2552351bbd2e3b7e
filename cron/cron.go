package cron

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/modernclinic/booking-api/db"
	"github.com/modernclinic/booking-api/mailer"
	"github.com/modernclinic/booking-api/models"
)

// reminderWindow is how far ahead of expiry the reminder goes out.
const reminderWindow = 7 * 24 * time.Hour

var sweepRunning int32

// StartCronJobs schedules the daily plan-expiry sweep at 9 AM.
func StartCronJobs(m mailer.Mailer) {
	c := cron.New()
	_, err := c.AddFunc("0 9 * * *", func() {
		log.Println("Running daily expiry check...")
		CheckExpiringPlans(m, time.Now())
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for plan expiry reminders")
}

// CheckExpiringPlans emails a reminder for every paid plan expiring within
// the window. Plans already reminded are skipped, so repeated runs inside
// the same window do not duplicate sends. Overlapping runs are refused.
func CheckExpiringPlans(m mailer.Mailer, now time.Time) {
	if !atomic.CompareAndSwapInt32(&sweepRunning, 0, 1) {
		log.Println("Expiry sweep already running, skipping this tick")
		return
	}
	defer atomic.StoreInt32(&sweepRunning, 0)

	windowEnd := now.Add(reminderWindow)

	var bookings []models.Booking
	err := db.DB.Preload("Plans").
		Where("payment_status = ?", models.PaymentCompleted).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}
	for i := range bookings {
		remindExpiringPlans(m, bookings[i].Name, bookings[i].Email, bookings[i].Plans, now, windowEnd)
	}

	var appointments []models.Appointment
	err = db.DB.Preload("Plans").
		Where("payment_status = ?", models.PaymentCompleted).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}
	for i := range appointments {
		remindExpiringPlans(m, appointments[i].Name, appointments[i].Email, appointments[i].Plans, now, windowEnd)
	}

	log.Println("Expiry check completed")
}

func remindExpiringPlans(m mailer.Mailer, name, email string, plans []models.SelectedPlan, now, windowEnd time.Time) {
	for i := range plans {
		plan := &plans[i]
		if plan.ExpiryDate == nil || plan.ReminderSentAt != nil {
			continue
		}
		if plan.ExpiryDate.Before(now) || plan.ExpiryDate.After(windowEnd) {
			continue
		}

		subject, body := mailer.ExpiryReminderEmail(name, plan.Title, *plan.ExpiryDate)
		if err := m.Send(email, subject, body); err != nil {
			// No stamp on failure; the next run retries.
			log.Printf("Failed to send expiry reminder to %s for %q: %v", email, plan.Title, err)
			continue
		}

		sentAt := now
		plan.ReminderSentAt = &sentAt
		if err := db.DB.Save(plan).Error; err != nil {
			log.Printf("Failed to stamp reminder for plan %d: %v", plan.ID, err)
		}
	}
}
