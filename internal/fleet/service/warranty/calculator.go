package warranty

import (
	"regexp"
	"strconv"
	"time"

	"github.com/fleetworks/fleet-maintenance/internal/fleet/model"
)

// A warranty is "expiring soon" within this many days of its expiry date,
// boundary inclusive.
const expiringSoonDays = 30

// Matches an integer immediately followed by "month"/"months" anywhere in
// the free-text period, e.g. "12 months", "6-month parts warranty".
var periodPattern = regexp.MustCompile(`(?i)(\d+)\s*[- ]?\s*months?\b`)

// Calculator derives warranty expiry and status from replacement events.
// All methods are pure; "today" comes from the injected clock.
type Calculator struct {
	now func() time.Time
}

func NewCalculator() *Calculator {
	return &Calculator{now: time.Now}
}

// NewCalculatorWithClock pins the clock; used by tests and previews.
func NewCalculatorWithClock(now func() time.Time) *Calculator {
	return &Calculator{now: now}
}

// ExpiryDate computes when the warranty started at start lapses. A period
// that does not state a positive number of months yields nil: malformed
// input means "no warranty", never an error.
func (c *Calculator) ExpiryDate(start time.Time, period string) *time.Time {
	if start.IsZero() {
		return nil
	}

	m := periodPattern.FindStringSubmatch(period)
	if m == nil {
		return nil
	}

	months, err := strconv.Atoi(m[1])
	if err != nil || months <= 0 {
		return nil
	}

	expiry := addMonths(dateOnly(start), months)
	return &expiry
}

// Status classifies an expiry date against the calculator's clock.
func (c *Calculator) Status(expiry *time.Time) model.WarrantyInfo {
	if expiry == nil {
		return model.WarrantyInfo{Status: model.WarrantyNotApplicable}
	}

	today := dateOnly(c.now())
	days := int(dateOnly(*expiry).Sub(today).Hours() / 24)

	info := model.WarrantyInfo{
		ExpiryDate:    expiry,
		DaysRemaining: &days,
	}

	switch {
	case days < 0:
		info.Status = model.WarrantyExpired
	case days <= expiringSoonDays:
		info.Status = model.WarrantyExpiringSoon
	default:
		info.Status = model.WarrantyActive
	}

	return info
}

// TaskWarranty folds all warranted parts of a task into one badge. The
// latest expiry wins: the task counts as covered while at least one
// part's warranty survives.
func (c *Calculator) TaskWarranty(groups []model.ServiceGroup, completedAt time.Time) model.WarrantyInfo {
	if completedAt.IsZero() {
		return model.WarrantyInfo{Status: model.WarrantyNotApplicable}
	}

	var latest *time.Time
	for _, g := range groups {
		for _, p := range g.Parts {
			expiry := c.ExpiryDate(completedAt, p.WarrantyPeriod)
			if expiry == nil {
				continue
			}
			if latest == nil || expiry.After(*latest) {
				latest = expiry
			}
		}
	}

	return c.Status(latest)
}

// addMonths implements calendar month addition with day clamping:
// Jan 31 + 1 month is the last day of February, not March 2/3.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	total := int(month) - 1 + months
	year += total / 12
	month = time.Month(total%12 + 1)

	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
