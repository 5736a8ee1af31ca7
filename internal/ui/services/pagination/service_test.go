package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServiceStartsAtPageOne(t *testing.T) {
	s := NewService(20)
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 20, s.PageSize())
	assert.True(t, s.IsFirstPage())
	assert.True(t, s.IsLastPage())
}

func TestNewServiceDefaultsBadPageSize(t *testing.T) {
	s := NewService(0)
	assert.Equal(t, 20, s.PageSize())
}

func TestSetTotalsClampsCurrentPage(t *testing.T) {
	s := NewService(20)
	s.SetTotals(100, 5)
	s.SetPage(5)
	assert.Equal(t, 5, s.Page())

	// Shrinking totals pulls the page back into range.
	s.SetTotals(40, 2)
	assert.Equal(t, 2, s.Page())
}

func TestNextPrevStopAtBounds(t *testing.T) {
	s := NewService(20)
	s.SetTotals(60, 3)

	s.PrevPage()
	assert.Equal(t, 1, s.Page(), "prev on first page is a no-op")

	s.NextPage()
	s.NextPage()
	assert.Equal(t, 3, s.Page())
	assert.True(t, s.IsLastPage())

	s.NextPage()
	assert.Equal(t, 3, s.Page(), "next on last page is a no-op")
}

func TestSetPageSizeResetsToFirstPage(t *testing.T) {
	s := NewService(20)
	s.SetTotals(100, 5)
	s.SetPage(4)

	s.SetPageSize(50)

	assert.Equal(t, 50, s.PageSize())
	assert.Equal(t, 1, s.Page())
}

func TestCanJumpOnlyWithText(t *testing.T) {
	s := NewService(20)
	assert.False(t, s.CanJump())
	s.SetJumpText("3")
	assert.True(t, s.CanJump())
	s.SetJumpText("")
	assert.False(t, s.CanJump())
}

func TestJumpParsesAndClamps(t *testing.T) {
	s := NewService(20)
	s.SetTotals(100, 5)

	s.SetJumpText(" 3 ")
	assert.True(t, s.Jump())
	assert.Equal(t, 3, s.Page())
	assert.Empty(t, s.JumpText(), "text clears after a successful jump")

	s.SetJumpText("99")
	assert.True(t, s.Jump())
	assert.Equal(t, 5, s.Page(), "out-of-range jumps clamp to the last page")

	s.SetJumpText("0")
	assert.True(t, s.Jump())
	assert.Equal(t, 1, s.Page())
}

func TestJumpRejectsNonNumbers(t *testing.T) {
	s := NewService(20)
	s.SetTotals(100, 5)
	s.SetPage(2)

	s.SetJumpText("abc")
	assert.False(t, s.Jump())
	assert.Equal(t, 2, s.Page(), "page unchanged on a bad jump")
	assert.Equal(t, "abc", s.JumpText(), "text kept so the user can fix it")

	s.SetJumpText("")
	assert.False(t, s.Jump())
}

func TestPageNumbersShowsAllWhenFew(t *testing.T) {
	s := NewService(20)
	s.SetTotals(120, 6)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, s.PageNumbers())
}

func TestPageNumbersCompressesRuns(t *testing.T) {
	s := NewService(20)
	s.SetTotals(400, 20)
	s.SetPage(10)

	assert.Equal(t, []int{1, Ellipsis, 9, 10, 11, Ellipsis, 20}, s.PageNumbers())
}

func TestPageNumbersNearEdges(t *testing.T) {
	s := NewService(20)
	s.SetTotals(400, 20)

	s.SetPage(1)
	assert.Equal(t, []int{1, 2, Ellipsis, 20}, s.PageNumbers())

	s.SetPage(20)
	assert.Equal(t, []int{1, Ellipsis, 19, 20}, s.PageNumbers())
}

func TestPageNumbersEmptyListing(t *testing.T) {
	s := NewService(20)
	s.SetTotals(0, 0)
	assert.Equal(t, []int{1}, s.PageNumbers())
}
