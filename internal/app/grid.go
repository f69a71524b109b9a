package app

import "time"

// Grid describes the fixed day grid for one year. All derived values
// (cells, hover index, upcoming events, countdown) are computed from
// current state on every request, never cached.
type Grid struct {
	Start   time.Time
	Days    int
	Columns int
}

// NewGrid returns the grid starting on January 1st of the given year.
func NewGrid(year, columns int) Grid {
	return Grid{
		Start:   time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		Days:    TotalDays,
		Columns: columns,
	}
}

// End returns the countdown target, the year boundary after Start.
func (g Grid) End() time.Time {
	return g.Start.AddDate(1, 0, 0)
}

// CellIndex maps a pointer position inside the grid's bounding box to a
// cell index. Cells are square, so the cell height equals the grid width
// divided by the column count. Returns false when the position falls
// outside the grid or past the last day.
func (g Grid) CellIndex(x, y, width float64) (int, bool) {
	if width <= 0 || x < 0 || y < 0 || x >= width {
		return 0, false
	}
	cell := width / float64(g.Columns)
	row := int(y / cell)
	col := int(x / cell)
	index := row*g.Columns + col
	if index >= g.Days {
		return 0, false
	}
	return index, true
}

// DateFor returns the calendar day for a cell index.
func (g Grid) DateFor(index int) time.Time {
	return g.Start.AddDate(0, 0, index)
}

// Info returns the hover description for a cell index.
func (g Grid) Info(index int) DateInfo {
	d := g.DateFor(index)
	return DateInfo{
		Date:      d.Format(DateLayout),
		DayOfWeek: d.Weekday().String(),
		DayOfYear: index + 1,
	}
}

// Emphasized reports whether a cell renders at full emphasis. Cells up to
// and including the highlighted one are emphasized; everything else is
// dimmed. A highlighted index below zero means no cell is hovered and
// every cell is dimmed.
func Emphasized(index, highlighted int) bool {
	return highlighted >= 0 && index <= highlighted
}

// Cells derives the per-day cells with event markers.
func (g Grid) Cells(events []Event) []DayCell {
	cells := make([]DayCell, g.Days)
	for i := range cells {
		date := g.DateFor(i).Format(DateLayout)
		hasEvent := false
		for _, e := range events {
			if e.Date == date {
				hasEvent = true
				break
			}
		}
		cells[i] = DayCell{Index: i, Date: date, HasEvent: hasEvent}
	}
	return cells
}

// UpcomingEvents returns the n soonest events dated on or after now,
// ascending by date. Events with unparseable dates are skipped.
func UpcomingEvents(events []Event, now time.Time, n int) []Event {
	upcoming := []Event{}
	for _, e := range events {
		d, err := time.Parse(DateLayout, e.Date)
		if err != nil {
			continue
		}
		if !d.Before(now) {
			upcoming = append(upcoming, e)
		}
	}
	SortEventsByDate(upcoming)
	if len(upcoming) > n {
		upcoming = upcoming[:n]
	}
	return upcoming
}

// DaysLeft returns the whole days remaining until target, counting a
// started day as a full one, floored at zero.
func DaysLeft(target, now time.Time) int {
	d := target.Sub(now)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// FormatNow renders the current date/time string shown in the footer.
// The value is fixed at render time, it does not tick.
func FormatNow(now time.Time) string {
	return now.Format(NowLayout)
}
