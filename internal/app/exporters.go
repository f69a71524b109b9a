package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// writeICSEvent writes one event as an all-day VEVENT. The UID is the
// event id, which is stable across feed refreshes.
func writeICSEvent(w io.Writer, event Event) {
	eventDate, err := time.Parse(DateLayout, event.Date)
	if err != nil {
		return
	}

	fmt.Fprintln(w, "BEGIN:VEVENT")
	fmt.Fprintf(w, "UID:%s@year-countdown.wb-services\n", event.ID)
	fmt.Fprintf(w, "DTSTAMP:%s\n", time.Now().UTC().Format("20060102T150405Z"))
	fmt.Fprintf(w, "DTSTART;VALUE=DATE:%s\n", eventDate.Format("20060102"))
	fmt.Fprintf(w, "DTEND;VALUE=DATE:%s\n", eventDate.AddDate(0, 0, 1).Format("20060102"))
	fmt.Fprintf(w, "SUMMARY:%s\n", event.Title)
	if event.Description != "" {
		fmt.Fprintf(w, "DESCRIPTION:%s\n", event.Description)
	}
	fmt.Fprintln(w, "END:VEVENT")
}

// GenerateICS generates an iCalendar (ICS) file for download
func (s *Server) GenerateICS(w http.ResponseWriter, events []Event) {
	year := s.grid.Start.Year()

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=year_countdown_%d.ics", year))

	// ICS header
	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintf(w, "X-WR-CALNAME:Year Countdown %d\n", year)
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", ICSTimezone)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")

	for _, event := range events {
		writeICSEvent(w, event)
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}

// GenerateSubscriptionICS generates an iCalendar (ICS) subscription feed.
// Unlike GenerateICS, this is designed for calendar subscriptions:
// - No Content-Disposition attachment header (inline content)
// - Includes METHOD:PUBLISH and refresh interval headers
func (s *Server) GenerateSubscriptionICS(w http.ResponseWriter, events []Event) {
	year := s.grid.Start.Year()

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	// No Content-Disposition header - calendar apps need inline content for subscriptions

	fmt.Fprintln(w, "BEGIN:VCALENDAR")
	fmt.Fprintln(w, "VERSION:2.0")
	fmt.Fprintf(w, "PRODID:%s\n", ICSProductID)
	fmt.Fprintln(w, "METHOD:PUBLISH") // Required for subscriptions
	fmt.Fprintf(w, "X-WR-CALNAME:Year Countdown %d\n", year)
	fmt.Fprintf(w, "X-WR-TIMEZONE:%s\n", ICSTimezone)
	fmt.Fprintln(w, "CALSCALE:GREGORIAN")
	fmt.Fprintln(w, "X-PUBLISHED-TTL:PT1H") // Suggest refresh every 1 hour

	for _, event := range events {
		writeICSEvent(w, event)
	}

	fmt.Fprintln(w, "END:VCALENDAR")
}

// GenerateCSV generates a CSV file with all events
func (s *Server) GenerateCSV(w http.ResponseWriter, events []Event) {
	year := s.grid.Start.Year()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=year_countdown_%d.csv", year))

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Title", "Description"}); err != nil {
		log.Printf("Error writing CSV header: %v", err)
		return
	}
	for _, event := range events {
		if err := cw.Write([]string{event.Date, event.Title, event.Description}); err != nil {
			log.Printf("Error writing CSV row: %v", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("Error flushing CSV: %v", err)
	}
}

// GenerateJSON generates a JSON file with all events
func (s *Server) GenerateJSON(w http.ResponseWriter, events []Event) {
	year := s.grid.Start.Year()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=year_countdown_%d.json", year))

	data := map[string]interface{}{
		"year":   year,
		"events": events,
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON export: %v", err)
		http.Error(w, ErrInternalServer, http.StatusInternalServerError)
	}
}
