package app

// Event is a single countdown event pinned to a calendar day.
// Dates are plain calendar days in YYYY-MM-DD form, no time component.
type Event struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DayCell is one grid position, derived per request and never persisted.
type DayCell struct {
	Index    int    `json:"index"`
	Date     string `json:"date"`
	HasEvent bool   `json:"hasEvent"`
}

// DateInfo describes the day under the cursor.
type DateInfo struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"dayOfWeek"`
	DayOfYear int    `json:"dayOfYear"`
}

// GridView is the view model served to the browser grid.
type GridView struct {
	Year         int       `json:"year"`
	Columns      int       `json:"columns"`
	TotalDays    int       `json:"totalDays"`
	StartDate    string    `json:"startDate"`
	DaysLeft     int       `json:"daysLeft"`
	Now          string    `json:"now"`
	Cells        []DayCell `json:"cells"`
	Upcoming     []Event   `json:"upcoming"`
	ClientSecret string    `json:"clientSecret,omitempty"`
}
