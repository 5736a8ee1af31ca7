// Package pagination owns the page/page-size/jump-to-page state under the
// dashboard table. Parsing and clamping of the jump text happens here; the
// view only renders what this service exposes.
package pagination

import (
	"strconv"
	"strings"
)

// Ellipsis is the marker PageNumbers uses in place of a compressed run of
// pages. It renders as a non-interactive "…".
const Ellipsis = -1

// windowRadius pages are shown on each side of the current page before
// runs collapse into an ellipsis.
const windowRadius = 1

// Service holds pagination state for one listing.
type Service struct {
	page         int
	pageSize     int
	totalPages   int
	totalRecords int
	jumpText     string
}

// NewService creates pagination state starting at page 1.
func NewService(pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Service{
		page:     1,
		pageSize: pageSize,
	}
}

// SetTotals records the totals the server reported for the current query.
// The current page is clamped into the new range.
func (s *Service) SetTotals(totalRecords, totalPages int) {
	if totalRecords < 0 {
		totalRecords = 0
	}
	if totalPages < 1 {
		totalPages = 1
	}
	s.totalRecords = totalRecords
	s.totalPages = totalPages
	if s.page > totalPages {
		s.page = totalPages
	}
	if s.page < 1 {
		s.page = 1
	}
}

// SetPage moves to page n, clamped into [1, totalPages].
func (s *Service) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if s.totalPages > 0 && n > s.totalPages {
		n = s.totalPages
	}
	s.page = n
}

// NextPage advances one page; no-op on the last page.
func (s *Service) NextPage() {
	if !s.IsLastPage() {
		s.page++
	}
}

// PrevPage goes back one page; no-op on the first page.
func (s *Service) PrevPage() {
	if !s.IsFirstPage() {
		s.page--
	}
}

// SetPageSize changes the page size and resets to the first page.
func (s *Service) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	s.pageSize = size
	s.page = 1
}

// SetJumpText stores the raw jump-to-page text, unvalidated.
func (s *Service) SetJumpText(text string) {
	s.jumpText = text
}

// JumpText returns the stored jump text.
func (s *Service) JumpText() string {
	return s.jumpText
}

// CanJump reports whether the jump control is enabled: exactly when the
// text field is non-empty.
func (s *Service) CanJump() bool {
	return s.jumpText != ""
}

// Jump parses the stored jump text and moves there, clamped into range.
// The text is cleared on success. Returns false when the text is empty or
// not a number.
func (s *Service) Jump() bool {
	text := strings.TrimSpace(s.jumpText)
	if text == "" {
		return false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return false
	}
	s.SetPage(n)
	s.jumpText = ""
	return true
}

// Page returns the current page (1-based).
func (s *Service) Page() int { return s.page }

// PageSize returns the current page size.
func (s *Service) PageSize() int { return s.pageSize }

// TotalPages returns the last reported page count.
func (s *Service) TotalPages() int { return s.totalPages }

// TotalRecords returns the last reported record count.
func (s *Service) TotalRecords() int { return s.totalRecords }

// IsFirstPage reports whether the previous-page control is disabled.
func (s *Service) IsFirstPage() bool {
	return s.page <= 1
}

// IsLastPage reports whether the next-page control is disabled.
func (s *Service) IsLastPage() bool {
	return s.totalPages <= 1 || s.page >= s.totalPages
}

// PageNumbers returns the ordered page entries to render: concrete page
// numbers with Ellipsis where runs are compressed. The first and last
// pages are always present; a window around the current page stays
// expanded.
func (s *Service) PageNumbers() []int {
	total := s.totalPages
	if total < 1 {
		total = 1
	}

	// Small enough to show everything.
	if total <= 2*windowRadius+5 {
		pages := make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	show := func(n int) bool {
		if n == 1 || n == total {
			return true
		}
		if n >= s.page-windowRadius && n <= s.page+windowRadius {
			return true
		}
		return false
	}

	var pages []int
	inGap := false
	for n := 1; n <= total; n++ {
		if show(n) {
			pages = append(pages, n)
			inGap = false
			continue
		}
		if !inGap {
			pages = append(pages, Ellipsis)
			inGap = true
		}
	}
	return pages
}
