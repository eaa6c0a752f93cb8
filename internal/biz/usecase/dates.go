package usecase

import (
	"fmt"
	"regexp"
	"time"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
)

const dateLayout = "2006-01-02"

var dateLiteralPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AllocateDates turns a start date and a day count into the ordered
// list of consecutive calendar days, computed in UTC to avoid timezone
// drift. This is the single source of truth for dates: no other
// component may introduce, rename, or drop a date bucket.
func AllocateDates(startDate string, dayCount int) ([]domain.AllocatedDate, error) {
	if startDate == "" {
		return nil, &domain.DateConfigurationError{Reason: "startDate is required"}
	}
	if dayCount < 1 {
		return nil, &domain.DateConfigurationError{Reason: fmt.Sprintf("numberOfDates must be >= 1 (got %d)", dayCount)}
	}
	if !dateLiteralPattern.MatchString(startDate) {
		return nil, &domain.DateConfigurationError{Reason: fmt.Sprintf("invalid startDate format %q (expected YYYY-MM-DD)", startDate)}
	}

	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return nil, &domain.DateConfigurationError{Reason: fmt.Sprintf("invalid startDate %q: %v", startDate, err)}
	}

	dates := make([]domain.AllocatedDate, 0, dayCount)
	seen := make(map[string]struct{}, dayCount)
	for i := 0; i < dayCount; i++ {
		day := start.Add(time.Duration(i) * 24 * time.Hour)
		dates = append(dates, domain.AllocatedDate{
			DateStr:  day.Format(dateLayout),
			DayStart: day.Unix(),
		})
		seen[dates[i].DateStr] = struct{}{}
	}

	// Post-condition: exactly dayCount distinct date strings
	if len(dates) != dayCount {
		return nil, &domain.DateIntegrityError{Reason: fmt.Sprintf("produced %d dates, expected %d", len(dates), dayCount)}
	}
	if len(seen) != dayCount {
		return nil, &domain.DateIntegrityError{Reason: fmt.Sprintf("produced %d unique dates, expected %d", len(seen), dayCount)}
	}
	return dates, nil
}
