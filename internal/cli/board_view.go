package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mariakotova/atelier/internal/cli/formatter"
	"github.com/mariakotova/atelier/internal/planner"
)

const waitingPaneWidth = 34

func (m *boardModel) View() string {
	if m.loading && m.view == nil {
		return "\n  " + formatter.Dim("Loading planner...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}
	if m.view == nil {
		return ""
	}

	left := m.renderDays()
	right := m.renderWaiting()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("  " + m.status + "\n")
	}
	b.WriteString("  " + m.help.View(m.keys))
	return b.String()
}

func (m *boardModel) renderDays() string {
	var lines []string
	title := "Days"
	if m.focus == focusDays {
		title = formatter.StyleHeader.Render(title)
	} else {
		title = formatter.Dim(title)
	}
	lines = append(lines, "  "+title)

	for i, day := range m.view.Days {
		cursor := "  "
		if i == m.dayCursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		lines = append(lines, cursor+m.renderDayLine(day))
	}
	return strings.Join(lines, "\n")
}

func (m *boardModel) renderDayLine(day planner.DayView) string {
	heading := formatter.DayHeading(day.Date)
	if !day.IsWorkDay {
		heading = formatter.Dim(heading)
	}

	line := fmt.Sprintf("%s %s %s",
		heading,
		formatter.OccupancyBar(day.OccupancyPct, day.IsOverLimit, 6),
		formatter.FormatMinutes(day.TotalMinutes),
	)
	if len(day.Orders) > 0 {
		names := make([]string, 0, len(day.Orders))
		for _, o := range day.Orders {
			name := o.Title
			if badge := formatter.PartBadge(o.PartLabel()); badge != "" {
				name += " " + badge
			}
			names = append(names, name)
		}
		line += "  " + formatter.Dim(strings.Join(names, ", "))
	}
	return line
}

func (m *boardModel) renderWaiting() string {
	var lines []string
	title := "Waiting"
	if m.focus == focusWaiting {
		title = formatter.StyleHeader.Render(title)
	} else {
		title = formatter.Dim(title)
	}
	lines = append(lines, title)

	if len(m.view.Unscheduled) == 0 {
		lines = append(lines, formatter.Dim("nothing waiting"))
	}
	for i, card := range m.view.Unscheduled {
		cursor := "  "
		if i == m.waitCursor && m.focus == focusWaiting {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		line := fmt.Sprintf("%s%s %s", cursor, card.Title, formatter.Dim(formatter.FormatMinutes(card.TotalMinutes)))
		if card.CustomerName != "" {
			line += " " + formatter.Dim("("+card.CustomerName+")")
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().Width(waitingPaneWidth).Render(strings.Join(lines, "\n"))
}
