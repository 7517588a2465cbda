package expense

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// ExpenseCmd is the parent command for expense operations.
var ExpenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Manage expenses",
	Long:  `Add, list, edit and delete expenses in the local store.`,
}

var inputLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// parseWhen parses a user-supplied timestamp, empty meaning now.
func parseWhen(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	for _, layout := range inputLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q (use 2006-01-02 or \"2006-01-02 15:04\")", value)
}
