package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/almanac/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	m := tui.NewModel(ctx.Store, ctx.table(), ctx.location(), ctx.now)
	if err := m.Err(); err != nil {
		return err
	}

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
