package planner

import (
	"errors"
	"fmt"
	"time"
)

// MaxScanDays bounds the splitter's forward scan. Without it a calendar
// whose every future day is fully booked would loop forever.
const MaxScanDays = 365

// ErrCannotSchedule is returned when no free capacity was found within
// MaxScanDays of the target date.
var ErrCannotSchedule = errors.New("cannot schedule within scan window")

// PartAllocation is one day's slice of a split plan. PartNumber 1 maps onto
// the main order row; higher numbers become secondary part rows.
type PartAllocation struct {
	Date       time.Time
	Minutes    int
	PartNumber int
}

// Split distributes totalMinutes across consecutive calendar days starting
// at targetDate, greedy first-fit. committed reports the minutes already
// taken on a date by other orders (the caller must exclude any stale
// allocation of the order being split). Fully booked days are skipped
// without consuming minutes or a part number.
//
// The returned allocations always sum to exactly totalMinutes.
func Split(totalMinutes int, targetDate time.Time, capacityMin int, committed func(date time.Time) (int, error)) ([]PartAllocation, error) {
	if totalMinutes <= 0 {
		return nil, fmt.Errorf("total minutes must be positive, got %d", totalMinutes)
	}
	if capacityMin <= 0 {
		return nil, fmt.Errorf("daily capacity must be positive, got %d", capacityMin)
	}

	var parts []PartAllocation
	remaining := totalMinutes
	date := targetDate
	partNumber := 1

	for scanned := 0; remaining > 0; scanned++ {
		if scanned >= MaxScanDays {
			return nil, fmt.Errorf("%w: %d unplaced minutes after %d days", ErrCannotSchedule, remaining, MaxScanDays)
		}

		existing, err := committed(date)
		if err != nil {
			return nil, fmt.Errorf("loading committed minutes for %s: %w", date.Format("2006-01-02"), err)
		}

		available := capacityMin - existing
		if available <= 0 {
			date = date.AddDate(0, 0, 1)
			continue
		}

		allocated := remaining
		if allocated > available {
			allocated = available
		}
		parts = append(parts, PartAllocation{Date: date, Minutes: allocated, PartNumber: partNumber})

		remaining -= allocated
		date = date.AddDate(0, 0, 1)
		partNumber++
	}

	return parts, nil
}
