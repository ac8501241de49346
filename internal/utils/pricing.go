package utils

import (
	"fmt"
	"time"

	"kerramientas-backend/internal/domain"
)

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a time.Time.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, fmt.Sprintf("expected yyyy-mm-dd, got %q", value))
	}
	return t, nil
}

// BillableDays returns the number of days charged for a rental period:
// the whole-day difference between the dates, floored at 1 so a
// same-day rental still costs one day. A range whose end precedes its
// start is rejected rather than silently flipped.
func BillableDays(startDate, endDate string) (int, error) {
	start, err := ParseDate("start_date", startDate)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate("end_date", endDate)
	if err != nil {
		return 0, err
	}

	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		return 0, domain.NewValidationError("end_date", "must not be before start_date")
	}
	if days < 1 {
		days = 1
	}
	return days, nil
}

// ComputeRentalCost calculates the total price for renting a tool at
// dailyPrice over the given period. Pure: no clock, no side effects.
func ComputeRentalCost(dailyPrice float64, startDate, endDate string) (float64, error) {
	if dailyPrice < 0 {
		return 0, domain.NewValidationError("daily_price", "must not be negative")
	}
	days, err := BillableDays(startDate, endDate)
	if err != nil {
		return 0, err
	}
	return dailyPrice * float64(days), nil
}
