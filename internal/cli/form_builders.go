package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mariakotova/atelier/internal/cli/formatter"
	"github.com/mariakotova/atelier/internal/domain"
)

// atelierHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func atelierHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// validateWorkDays accepts empty or a comma-separated ISO weekday list.
func validateWorkDays(s string) error {
	if s == "" {
		return nil
	}
	if len(domain.ParseWorkDays(s)) == 0 {
		return fmt.Errorf("use comma-separated weekdays 1-7, e.g. 1,2,3,4,5")
	}
	return nil
}

// orderAddForm collects the fields for a new order.
func orderAddForm(title, minutes, category, comment *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Order").
				Placeholder("Summer dress, hem adjustment...").
				Value(title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("a title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration (minutes)").
				Placeholder("60").
				Value(minutes).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Category (optional)").
				Value(category),
			huh.NewInput().
				Title("Comment (optional)").
				Value(comment),
		),
	).WithTheme(atelierHuhTheme()).WithShowHelp(false)
}

// customerAddForm collects the fields for a new customer.
func customerAddForm(firstName, lastName, phone *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First name").Value(firstName),
			huh.NewInput().Title("Last name").Value(lastName),
			huh.NewInput().
				Title("Phone").
				Placeholder("+79990001122").
				Value(phone).
				Validate(func(s string) error {
					c := domain.Customer{Phone: s}
					return c.ValidatePhone()
				}),
		),
	).WithTheme(atelierHuhTheme()).WithShowHelp(false)
}

// settingsForm edits daily hours and work days in place.
func settingsForm(hours, workDays *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Working hours per day").
				Placeholder("8").
				Value(hours).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Work days (ISO weekdays)").
				Placeholder("1,2,3,4,5").
				Value(workDays).
				Validate(validateWorkDays),
		),
	).WithTheme(atelierHuhTheme()).WithShowHelp(false)
}
