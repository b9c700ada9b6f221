package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Juanchoszs/StarWash/internal/finance"
)

const dateLayout = "2006-01-02"

func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseWindowQuery turns optional startDate/endDate params into a time
// window: day bounds are inclusive, a missing pair means lifetime.
func parseWindowQuery(r *http.Request) (finance.Window, error) {
	start, err := parseDateQuery(r, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := parseDateQuery(r, "endDate")
	if err != nil {
		return nil, err
	}
	if start == nil && end == nil {
		return nil, nil
	}
	lo := time.Time{}
	hi := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
	if start != nil {
		lo = *start
	}
	if end != nil {
		hi = end.Add(24*time.Hour - time.Nanosecond)
	}
	return finance.Between(lo, hi), nil
}

func parseLimitQuery(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
