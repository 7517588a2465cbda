package csv

import (
	"github.com/spf13/cobra"
)

// CSVCmd is the parent command for CSV import and export.
var CSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Import and export expenses as CSV",
}
