// Command studio is an interactive terminal dashboard for a running
// codereel API: fire generation runs, watch render capabilities and
// browse recent lessons without leaving the shell.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"codereel/cmd/studio/tui"
)

func main() {
	url := flag.String("url", "http://localhost:8080", "base URL of the codereel API")
	flag.Parse()

	m := tui.NewModel(*url)
	program := tea.NewProgram(m)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running studio: %v\n", err)
		os.Exit(1)
	}
}
