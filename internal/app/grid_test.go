package app

import (
	"testing"
	"time"
)

func TestCellIndex(t *testing.T) {
	grid := NewGrid(2025, 20)
	const width = 400.0 // cell size 20x20

	tests := []struct {
		name      string
		x, y      float64
		wantIndex int
		wantOK    bool
	}{
		{"Top left corner", 0, 0, 0, true},
		{"Second cell", 30, 5, 1, true},
		{"Last cell of first row", 399.9, 10, 19, true},
		{"First cell of second row", 10, 30, 20, true},
		{"Last day (index 364)", 85, 365, 364, true},
		{"One past the last day", 105, 365, 0, false},
		{"Row below the grid", 10, 400, 0, false},
		{"Negative x", -5, 10, 0, false},
		{"Negative y", 10, -1, 0, false},
		{"Right of the grid", 400, 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := grid.CellIndex(tt.x, tt.y, width)
			if ok != tt.wantOK {
				t.Fatalf("CellIndex(%v, %v) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if ok && index != tt.wantIndex {
				t.Errorf("CellIndex(%v, %v) = %d, want %d", tt.x, tt.y, index, tt.wantIndex)
			}
		})
	}
}

func TestCellIndexZeroWidth(t *testing.T) {
	grid := NewGrid(2025, 20)
	if _, ok := grid.CellIndex(0, 0, 0); ok {
		t.Error("CellIndex with zero width should not resolve a cell")
	}
}

func TestEmphasized(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		highlighted int
		want        bool
	}{
		{"Below highlighted", 5, 10, true},
		{"Equal to highlighted", 10, 10, true},
		{"Above highlighted", 11, 10, false},
		{"First cell, first highlighted", 0, 0, true},
		{"No highlight dims everything", 0, -1, false},
		{"No highlight dims last cell", 364, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Emphasized(tt.index, tt.highlighted); got != tt.want {
				t.Errorf("Emphasized(%d, %d) = %v, want %v", tt.index, tt.highlighted, got, tt.want)
			}
		})
	}
}

func TestDateForAndInfo(t *testing.T) {
	grid := NewGrid(2025, 20)

	info := grid.Info(0)
	if info.Date != "2025-01-01" {
		t.Errorf("Info(0).Date = %s, want 2025-01-01", info.Date)
	}
	if info.DayOfWeek != "Wednesday" {
		t.Errorf("Info(0).DayOfWeek = %s, want Wednesday", info.DayOfWeek)
	}
	if info.DayOfYear != 1 {
		t.Errorf("Info(0).DayOfYear = %d, want 1", info.DayOfYear)
	}

	if got := grid.DateFor(364).Format(DateLayout); got != "2025-12-31" {
		t.Errorf("DateFor(364) = %s, want 2025-12-31", got)
	}
}

func TestCellsHasEvent(t *testing.T) {
	grid := NewGrid(2025, 20)
	events := []Event{
		{ID: "a", Date: "2025-03-10", Title: "Launch"},
	}

	cells := grid.Cells(events)
	if len(cells) != 365 {
		t.Fatalf("Cells() returned %d cells, want 365", len(cells))
	}

	// 2025-03-10 is day-of-year 69, index 68
	for _, cell := range cells {
		want := cell.Index == 68
		if cell.HasEvent != want {
			t.Errorf("cell %d (%s) HasEvent = %v, want %v", cell.Index, cell.Date, cell.HasEvent, want)
		}
	}
	if cells[68].Date != "2025-03-10" {
		t.Errorf("cell 68 date = %s, want 2025-03-10", cells[68].Date)
	}
}

func TestUpcomingEvents(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Past events excluded", func(t *testing.T) {
		events := []Event{
			{ID: "past", Date: "2025-01-01", Title: "New year"},
			{ID: "future", Date: "2099-01-01", Title: "Far out"},
		}

		got := UpcomingEvents(events, now, 3)
		if len(got) != 1 || got[0].ID != "future" {
			t.Fatalf("UpcomingEvents() = %v, want only the 2099 event", got)
		}
	})

	t.Run("Sorted ascending, capped at three", func(t *testing.T) {
		events := []Event{
			{ID: "d", Date: "2025-12-01"},
			{ID: "b", Date: "2025-07-01"},
			{ID: "a", Date: "2025-06-15"},
			{ID: "c", Date: "2025-09-01"},
		}

		got := UpcomingEvents(events, now, 3)
		if len(got) != 3 {
			t.Fatalf("UpcomingEvents() returned %d events, want 3", len(got))
		}
		for i, want := range []string{"a", "b", "c"} {
			if got[i].ID != want {
				t.Errorf("upcoming[%d] = %s, want %s", i, got[i].ID, want)
			}
		}
	})

	t.Run("Unparseable date skipped", func(t *testing.T) {
		events := []Event{
			{ID: "bad", Date: "not-a-date"},
			{ID: "good", Date: "2025-08-01"},
		}
		got := UpcomingEvents(events, now, 3)
		if len(got) != 1 || got[0].ID != "good" {
			t.Fatalf("UpcomingEvents() = %v, want only the parseable event", got)
		}
	})
}

func TestDaysLeft(t *testing.T) {
	target := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"Exact five days", target.AddDate(0, 0, -5), 5},
		{"Partial day rounds up", target.Add(-36 * time.Hour), 2},
		{"One hour left counts as a day", target.Add(-time.Hour), 1},
		{"At the boundary", target, 0},
		{"Past the boundary floors at zero", target.Add(time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysLeft(target, tt.now); got != tt.want {
				t.Errorf("DaysLeft() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGridEnd(t *testing.T) {
	grid := NewGrid(2025, 20)
	if got := grid.End(); !got.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("End() = %v, want 2026-01-01", got)
	}
}

func TestFormatNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 4, 0, 0, time.UTC)
	if got := FormatNow(now); got != "Sunday, Jun 1 15:04" {
		t.Errorf("FormatNow() = %q, want %q", got, "Sunday, Jun 1 15:04")
	}
}
