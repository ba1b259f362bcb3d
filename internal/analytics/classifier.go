package analytics

import (
	"strings"
	"time"

	"github.com/andresuchdata/sales-dashboard/backend-go/internal/clock"
	"github.com/andresuchdata/sales-dashboard/backend-go/internal/domain"
)

// Classify maps a raw ERP status to a status category. The rules are checked
// in order and the first match wins:
//
//  1. a delivery date before today on a status mentioning "deliver" is Overdue
//  2. "complete", "delivered" or "finished" is Completed
//  3. "deliver" and "bill" together is To Deliver and Bill
//  4. "deliver" is To Deliver
//  5. "bill" is To Bill
//
// Anything else, including an empty status, falls back to To Deliver and Bill.
// Dates are compared as calendar days.
func Classify(rawStatus string, dueDate *time.Time, today time.Time) domain.StatusCategory {
	status := strings.ToLower(rawStatus)
	mentionsDeliver := strings.Contains(status, "deliver")

	if dueDate != nil && mentionsDeliver && clock.DateOf(*dueDate).Before(clock.DateOf(today)) {
		return domain.StatusOverdue
	}

	switch {
	case strings.Contains(status, "complete"),
		strings.Contains(status, "delivered"),
		strings.Contains(status, "finished"):
		return domain.StatusCompleted
	case mentionsDeliver && strings.Contains(status, "bill"):
		return domain.StatusToDeliverAndBill
	case mentionsDeliver:
		return domain.StatusToDeliver
	case strings.Contains(status, "bill"):
		return domain.StatusToBill
	}

	return domain.StatusToDeliverAndBill
}

// IsPaid reports whether an invoice status counts as settled.
func IsPaid(rawStatus string) bool {
	status := strings.ToLower(rawStatus)
	return strings.Contains(status, "paid") || strings.Contains(status, "complete")
}
