package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// PaymentSweeper runs one re-evaluation pass over stale payments
type PaymentSweeper interface {
	SweepStalePayments(ctx context.Context, now time.Time) error
}

var paymentSweeper PaymentSweeper

// SetPaymentSweeper installs the sweeper implementation
func SetPaymentSweeper(sweeper PaymentSweeper) {
	paymentSweeper = sweeper
}

// InitCronJobs registers the scheduled jobs and starts the scheduler
func InitCronJobs(c *cron.Cron) error {
	// Payment expiry sweep, every minute. Idempotent: rows resolved by
	// a concurrent run fail the transition check and are skipped.
	_, err := c.AddFunc("* * * * *", func() {
		if paymentSweeper == nil {
			log.Printf("payment sweeper not configured, skipping sweep")
			return
		}
		if err := paymentSweeper.SweepStalePayments(context.Background(), time.Now()); err != nil {
			log.Printf("payment sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
