package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mariakotova/atelier/internal/cli/formatter"
	"github.com/mariakotova/atelier/internal/contract"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Interactive planner board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the board needs an interactive terminal")
			}
			p := tea.NewProgram(newBoardModel(app, userOrDefault(app, user)), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	addUserFlag(cmd.Flags(), &user)
	return cmd
}

type boardFocus int

const (
	focusDays boardFocus = iota
	focusWaiting
)

// boardLoadedMsg carries a freshly loaded planner view.
type boardLoadedMsg struct {
	view *contract.PlannerViewResponse
	err  error
}

// boardMovedMsg signals the outcome of a move issued from the board.
type boardMovedMsg struct {
	resp *contract.MoveOrderResponse
	err  error
}

type boardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Tab        key.Binding
	Place      key.Binding
	Unschedule key.Binding
	Refresh    key.Binding
	Quit       key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Place, k.Unschedule, k.Refresh, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Tab, k.Place, k.Unschedule},
		{k.Refresh, k.Quit},
	}
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Place:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "place order on day")),
		Unschedule: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unschedule order")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardModel is the interactive planner: a day pane on the left, the
// waiting (unscheduled) pane on the right. Enter drops the selected
// waiting order onto the selected day.
type boardModel struct {
	app    *App
	userID string

	view       *contract.PlannerViewResponse
	dayCursor  int
	waitCursor int
	focus      boardFocus

	keys    boardKeyMap
	help    help.Model
	status  string
	err     error
	loading bool
	width   int
	height  int
}

func newBoardModel(app *App, userID string) *boardModel {
	return &boardModel{
		app:     app,
		userID:  userID,
		keys:    defaultBoardKeyMap(),
		help:    help.New(),
		loading: true,
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	app, userID := m.app, m.userID
	return func() tea.Msg {
		view, err := app.Planner.View(context.Background(), contract.NewPlannerViewRequest(userID))
		return boardLoadedMsg{view: view, err: err}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = msg.view
		m.clampCursors()
		return m, nil

	case boardMovedMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(msg.err.Error())
			return m, nil
		}
		o := msg.resp.Order
		if o.PlannedDate == nil {
			m.status = fmt.Sprintf("Unscheduled %q", o.Title)
		} else if len(msg.resp.Parts) > 0 {
			m.status = fmt.Sprintf("Planned %q across %d days", o.Title, o.TotalParts)
		} else {
			m.status = fmt.Sprintf("Planned %q on %s", o.Title, formatter.DayHeading(*o.PlannedDate))
		}
		for _, w := range msg.resp.Warnings {
			m.status += "  " + formatter.StyleYellow.Render(w)
		}
		m.loading = true
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.load()

	case key.Matches(msg, m.keys.Tab):
		if m.focus == focusDays {
			m.focus = focusWaiting
		} else {
			m.focus = focusDays
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.focus == focusWaiting {
			if m.waitCursor > 0 {
				m.waitCursor--
			}
		} else if m.dayCursor >= 7 {
			m.dayCursor -= 7
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus == focusWaiting {
			if m.view != nil && m.waitCursor < len(m.view.Unscheduled)-1 {
				m.waitCursor++
			}
		} else if m.view != nil && m.dayCursor+7 < len(m.view.Days) {
			m.dayCursor += 7
		}
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.focus == focusDays && m.dayCursor > 0 {
			m.dayCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.focus == focusDays && m.view != nil && m.dayCursor < len(m.view.Days)-1 {
			m.dayCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Place):
		return m, m.placeSelected()

	case key.Matches(msg, m.keys.Unschedule):
		return m, m.unscheduleSelected()
	}
	return m, nil
}

// placeSelected moves the selected waiting order onto the selected day.
func (m *boardModel) placeSelected() tea.Cmd {
	if m.view == nil || len(m.view.Unscheduled) == 0 || m.waitCursor >= len(m.view.Unscheduled) {
		return nil
	}
	if m.dayCursor >= len(m.view.Days) {
		return nil
	}
	orderID := m.view.Unscheduled[m.waitCursor].ID
	date := m.view.Days[m.dayCursor].Date
	return m.moveOrder(orderID, &date)
}

// unscheduleSelected takes the first order of the selected day off the
// calendar.
func (m *boardModel) unscheduleSelected() tea.Cmd {
	if m.focus != focusDays || m.view == nil || m.dayCursor >= len(m.view.Days) {
		return nil
	}
	day := m.view.Days[m.dayCursor]
	if len(day.Orders) == 0 {
		return nil
	}
	return m.moveOrder(day.Orders[0].ID, nil)
}

func (m *boardModel) moveOrder(orderID string, date *time.Time) tea.Cmd {
	app, userID := m.app, m.userID
	return func() tea.Msg {
		req := contract.NewMoveOrderRequest(userID, orderID)
		req.Date = date
		resp, err := app.Planner.MoveOrder(context.Background(), req)
		return boardMovedMsg{resp: resp, err: err}
	}
}

func (m *boardModel) clampCursors() {
	if m.view == nil {
		return
	}
	if m.dayCursor >= len(m.view.Days) {
		m.dayCursor = len(m.view.Days) - 1
	}
	if m.dayCursor < 0 {
		m.dayCursor = 0
	}
	if m.waitCursor >= len(m.view.Unscheduled) {
		m.waitCursor = len(m.view.Unscheduled) - 1
	}
	if m.waitCursor < 0 {
		m.waitCursor = 0
	}
}
