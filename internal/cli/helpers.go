package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const flagDateLayout = "2006-01-02"

// parseDateFlag parses a YYYY-MM-DD flag value.
func parseDateFlag(s string) (time.Time, error) {
	t, err := time.Parse(flagDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

// addUserFlag registers the shared --user override on a command's flag set.
func addUserFlag(flags *pflag.FlagSet, user *string) {
	flags.StringVar(user, "user", "", "Act as this user instead of the configured default")
}

// userOrDefault resolves the acting user for a command invocation.
func userOrDefault(app *App, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return app.UserID
}
