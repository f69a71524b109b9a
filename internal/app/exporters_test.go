package app

import (
	"encoding/csv"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func exportServer() *Server {
	return newTestServer(&memStore{}, nil)
}

func TestGenerateSubscriptionICS(t *testing.T) {
	srv := exportServer()
	events := []Event{
		{ID: "11111111-1111-1111-1111-111111111111", Date: "2025-01-15", Title: "Launch", Description: "Big day"},
		{ID: "22222222-2222-2222-2222-222222222222", Date: "2025-01-20", Title: "Retro"},
	}

	w := httptest.NewRecorder()
	srv.GenerateSubscriptionICS(w, events)

	resp := w.Result()
	body := w.Body.String()

	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/calendar") {
		t.Errorf("Expected Content-Type text/calendar, got %s", contentType)
	}

	// Subscriptions must be inline content, not attachments
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		t.Errorf("Subscription should not have Content-Disposition header, got: %s", cd)
	}

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + ICSProductID,
		"METHOD:PUBLISH",
		"X-PUBLISHED-TTL:PT1H",
		"BEGIN:VEVENT",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(body, field) {
			t.Errorf("ICS subscription output missing required field: %s", field)
		}
	}

	// All-day event format
	if !strings.Contains(body, "DTSTART;VALUE=DATE:20250115") {
		t.Error("Event should be all-day (DTSTART;VALUE=DATE)")
	}
	if !strings.Contains(body, "DTEND;VALUE=DATE:20250116") {
		t.Error("All-day event should end on next day")
	}

	if !strings.Contains(body, "SUMMARY:Launch") {
		t.Error("Missing event summary for Launch")
	}
	if !strings.Contains(body, "DESCRIPTION:Big day") {
		t.Error("Missing event description")
	}

	// UID must be stable across refreshes (the event id)
	if !strings.Contains(body, "UID:11111111-1111-1111-1111-111111111111@year-countdown.wb-services") {
		t.Error("Missing or incorrect UID format")
	}
}

func TestGenerateSubscriptionICS_EmptyEvents(t *testing.T) {
	srv := exportServer()

	w := httptest.NewRecorder()
	srv.GenerateSubscriptionICS(w, []Event{})

	body := w.Body.String()

	if !strings.Contains(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "END:VCALENDAR") {
		t.Error("Empty feed should still be a valid calendar")
	}
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 0 {
		t.Errorf("Expected 0 events, got %d", n)
	}
}

func TestGenerateSubscriptionICS_SkipsBadDates(t *testing.T) {
	srv := exportServer()
	events := []Event{
		{ID: "bad", Date: "not-a-date", Title: "Broken"},
		{ID: "ok", Date: "2025-03-01", Title: "Fine"},
	}

	w := httptest.NewRecorder()
	srv.GenerateSubscriptionICS(w, events)

	body := w.Body.String()
	if n := strings.Count(body, "BEGIN:VEVENT"); n != 1 {
		t.Errorf("Expected 1 event, got %d", n)
	}
	if strings.Contains(body, "SUMMARY:Broken") {
		t.Error("Event with an unparseable date should be skipped")
	}
}

func TestGenerateICSDownload(t *testing.T) {
	srv := exportServer()
	events := []Event{
		{ID: "11111111-1111-1111-1111-111111111111", Date: "2025-01-15", Title: "Launch"},
	}

	w := httptest.NewRecorder()
	srv.GenerateICS(w, events)

	resp := w.Result()
	body := w.Body.String()

	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, "year_countdown_2025.ics") {
		t.Errorf("Download should be an attachment with a year filename, got: %s", cd)
	}

	// Downloads are not subscriptions
	if strings.Contains(body, "METHOD:PUBLISH") {
		t.Error("Download should not contain METHOD:PUBLISH")
	}
	if !strings.Contains(body, "SUMMARY:Launch") {
		t.Error("Missing event summary")
	}
}

func TestGenerateCSV(t *testing.T) {
	srv := exportServer()
	events := []Event{
		{ID: "a", Date: "2025-01-15", Title: "Launch, phase 1", Description: "Big day"},
		{ID: "b", Date: "2025-01-20", Title: "Retro"},
	}

	w := httptest.NewRecorder()
	srv.GenerateCSV(w, events)

	resp := w.Result()
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Errorf("Expected Content-Type text/csv, got %s", ct)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("CSV has %d rows, want header plus 2", len(records))
	}
	if records[0][0] != "Date" || records[0][1] != "Title" {
		t.Errorf("unexpected header row: %v", records[0])
	}
	// Titles with commas must survive the round trip
	if records[1][1] != "Launch, phase 1" {
		t.Errorf("title = %q, want %q", records[1][1], "Launch, phase 1")
	}
}

func TestGenerateJSON(t *testing.T) {
	srv := exportServer()
	events := []Event{
		{ID: "a", Date: "2025-01-15", Title: "Launch"},
	}

	w := httptest.NewRecorder()
	srv.GenerateJSON(w, events)

	var payload struct {
		Year   int     `json:"year"`
		Events []Event `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if payload.Year != 2025 {
		t.Errorf("year = %d, want 2025", payload.Year)
	}
	if len(payload.Events) != 1 || payload.Events[0].Title != "Launch" {
		t.Errorf("events = %v, want the Launch event", payload.Events)
	}
}

func TestHandleDownloadInvalidFormat(t *testing.T) {
	srv := exportServer()
	if w := doRequest(srv, "GET", "/api/download?format=xml", "", nil); w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
