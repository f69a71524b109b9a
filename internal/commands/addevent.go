package commands

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/klabast/wb-services/year-countdown/internal/app"
)

// AddEvent handles the add subcommand: a terminal client that drives the
// same dialog state machine the browser uses, against a running server.
// Note the date shift: the stored event lands one day after -date.
func AddEvent(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	server := fs.String("server", "http://localhost:8080", "Base URL of the running server")
	date := fs.String("date", "", "Selected day (YYYY-MM-DD)")
	title := fs.String("title", "", "Event title")
	desc := fs.String("desc", "", "Event description (optional)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: year-countdown add -date YYYY-MM-DD -title TITLE [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Adds an event through a running server. Prompts for the shared secret.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	selected, err := time.Parse(app.DateLayout, *date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -date: %v\n", err)
		os.Exit(1)
	}
	if *title == "" {
		fmt.Fprintf(os.Stderr, "-title is required\n")
		os.Exit(1)
	}

	var composer app.Composer
	composer.Select(selected)
	composer.Title = *title
	composer.Description = *desc
	composer.Secret = readSecretWithMask("Enter event secret: ")

	submit := func(event app.Event) error {
		body, err := json.Marshal(event)
		if err != nil {
			return err
		}
		req, err := http.NewRequest(http.MethodPost, *server+"/api/events/add", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(app.SecretHeader, composer.Secret)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusCreated:
			return nil
		case http.StatusUnauthorized:
			return app.ErrSecretRejected
		default:
			return fmt.Errorf("server returned %s", resp.Status)
		}
	}

	// The secret check is server-side, so no local gate is passed.
	event, ok := composer.Submit(nil, submit)
	if !ok {
		if composer.Err != "" {
			fmt.Fprintln(os.Stderr, composer.Err)
		} else {
			fmt.Fprintln(os.Stderr, "Event was not added")
		}
		os.Exit(1)
	}

	fmt.Printf("✅ Event %q added on %s\n", event.Title, event.Date)
}
