package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the room until the user quits. renderer must be the one the
// session was built with.
func Run(ctx context.Context, opts Options, renderer *Renderer, programOpts ...tea.ProgramOption) error {
	model := NewModel(ctx, opts)
	defer model.cancel()

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)...)
	renderer.Attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal: %w", err)
	}
	return nil
}
