package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/digital-byte-innovations/StackWise/internal/budget"
)

// Run starts the dashboard and blocks until the user quits. The store
// should already be hydrated; the dashboard shows a loading screen
// otherwise and refreshes on every store notification.
func Run(ctx context.Context, store *budget.Store) error {
	program := tea.NewProgram(NewModel(store), tea.WithContext(ctx))

	unsubscribe := store.Subscribe(func() {
		program.Send(storeChangedMsg{})
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
