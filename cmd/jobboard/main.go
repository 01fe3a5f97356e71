package main

import (
	"flag"
	"log"
	"os"

	"job-board/internal/client"
	"job-board/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	defaultURL := os.Getenv("JOBBOARD_API_URL")
	if defaultURL == "" {
		defaultURL = client.DefaultBaseURL
	}
	apiURL := flag.String("api", defaultURL, "base URL of the job board API")
	sessionPath := flag.String("session", "", "session file (defaults to the user config dir)")
	logout := flag.Bool("logout", false, "forget the saved session and exit")
	flag.Parse()

	logger := log.New(os.Stderr, "", 0)

	path := *sessionPath
	if path == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			logger.Fatalf("session path: %v", err)
		}
		path = p
	}
	store := client.NewSessionStore(path)

	if *logout {
		if err := store.Clear(); err != nil {
			logger.Fatalf("logout: %v", err)
		}
		logger.Printf("session removed from %s", path)
		return
	}

	api, err := client.New(client.Config{BaseURL: *apiURL, Store: store})
	if err != nil {
		// A corrupt session file only costs a fresh login.
		logger.Printf("ignoring saved session: %v", err)
		_ = store.Clear()
	}

	p := tea.NewProgram(tui.New(api), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Fatalf("jobboard: %v", err)
	}
}
