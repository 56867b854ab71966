package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/newslens-app/newslens/internal/engagement"
	"github.com/newslens-app/newslens/internal/feed"
	"github.com/newslens-app/newslens/internal/gateway"
	"github.com/newslens-app/newslens/internal/session"
	"github.com/newslens-app/newslens/internal/tui"
)

func main() {
	serverURL := flag.String("server", envOr("NEWSLENS_SERVER", "http://localhost:8080"), "backend base URL")
	flag.Parse()

	gw := gateway.NewClient(*serverURL)
	sess := session.New(gw)
	defer sess.Close()

	feedState := feed.New(gw, sess)
	ops := engagement.New(gw, sess, feedState, *serverURL)

	p := tea.NewProgram(tui.New(gw, sess, feedState, ops), tea.WithAltScreen())

	sess.Watch(func(snap session.Snapshot) {
		p.Send(tui.SessionChangedMsg{Snap: snap})
	})
	feedState.OnChange(func() {
		p.Send(tui.FeedChangedMsg{})
	})

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "reader error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
