// Package pagination implements the tolerant page/per_page policy shared by
// every collection endpoint: bad input never fails a request, it is replaced
// by a default or clamped to the nearest valid value.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPerPage        = 10
	DefaultGalleryPerPage = 12
	MaxPerPage            = 50
)

// Window is a resolved page: what to fetch and what to report.
type Window struct {
	Count       int64
	PerPage     int
	TotalPages  int
	CurrentPage int
	Offset      int
	Limit       int
}

// ParsePage returns the requested page number, or 1 when raw is absent or not
// an integer. Range clamping happens in NewWindow, once the count is known.
func ParsePage(raw string) int {
	n, ok := parseInt(raw)
	if !ok {
		return 1
	}
	return n
}

// ParsePerPage returns the page size for raw, falling back to def when raw is
// absent, not an integer or below 1, and capping it at ceiling.
func ParsePerPage(raw string, def, ceiling int) int {
	n, ok := parseInt(raw)
	if !ok || n < 1 {
		n = def
	}
	return Clamp(n, 1, ceiling)
}

// parseInt saturates integers that overflow int instead of rejecting them.
func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(raw, "-") {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return n, err == nil
}

// NewWindow resolves page against count. TotalPages is never below 1, so an
// empty collection still has one (empty) page 1.
func NewWindow(count int64, page, perPage int) Window {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}

	totalPages := int((count + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}

	current := Clamp(page, 1, totalPages)
	offset := (current - 1) * perPage

	limit := perPage
	if remaining := count - int64(offset); remaining < int64(limit) {
		limit = int(max(remaining, 0))
	}

	return Window{
		Count:       count,
		PerPage:     perPage,
		TotalPages:  totalPages,
		CurrentPage: current,
		Offset:      offset,
		Limit:       limit,
	}
}

// Clamp bounds n to [lo, hi]. hi wins when lo > hi.
func Clamp(n, lo, hi int) int {
	if n < lo {
		n = lo
	}
	if n > hi {
		n = hi
	}
	return n
}
