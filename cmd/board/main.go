package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agendap83/rosterboard/internal/board"
	"github.com/agendap83/rosterboard/internal/gateway"
	"github.com/agendap83/rosterboard/internal/grid"
)

func main() {
	var (
		apiURL string
		from   string
		to     string
		source string
	)

	flag.StringVar(&apiURL, "api", envOr("BOARD_API_URL", "http://localhost:3001"), "base URL of the rosterboard API")
	flag.StringVar(&from, "from", "", "range start (YYYY-MM-DD, default: a week ago)")
	flag.StringVar(&to, "to", "", "range end (YYYY-MM-DD, default: three weeks ahead)")
	flag.StringVar(&source, "source", envOr("BOARD_SOURCE_TAG", "ESCALA"), "source tag recorded on saved cells")
	flag.Parse()

	today := time.Now()
	if from == "" {
		from = today.AddDate(0, 0, -7).Format("2006-01-02")
	}
	if to == "" {
		to = today.AddDate(0, 0, 21).Format("2006-01-02")
	}

	// TUI owns the terminal, so the session log goes to a file
	logFile, err := os.OpenFile("board.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, nil))

	session := grid.NewSession(gateway.NewHTTPGateway(apiURL), logger, source)

	p := tea.NewProgram(
		board.NewApp(session, from, to),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "board exited with an error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
