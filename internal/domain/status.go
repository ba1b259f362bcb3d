package domain

import "strings"

// StatusCategory is the normalized lifecycle bucket of an order or invoice.
type StatusCategory string

const (
	StatusOverdue          StatusCategory = "Overdue"
	StatusToDeliverAndBill StatusCategory = "To Deliver and Bill"
	StatusToDeliver        StatusCategory = "To Deliver"
	StatusToBill           StatusCategory = "To Bill"
	StatusCompleted        StatusCategory = "Completed"
)

// StatusCategories lists every category in display priority order.
var StatusCategories = []StatusCategory{
	StatusOverdue,
	StatusToDeliverAndBill,
	StatusToDeliver,
	StatusToBill,
	StatusCompleted,
}

// ParseStatusCategory returns the category for a label (case-insensitive).
func ParseStatusCategory(label string) (StatusCategory, bool) {
	trimmed := strings.TrimSpace(label)
	for _, category := range StatusCategories {
		if strings.EqualFold(string(category), trimmed) {
			return category, true
		}
	}

	return "", false
}
