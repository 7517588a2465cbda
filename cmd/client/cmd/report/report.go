package report

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gastos/cmd/client/cmd/types"
	"gastos/internal/app/client"
	"gastos/internal/domain/expense"
)

var (
	period   string
	days     int
	from     string
	to       string
	category string
	product  string
	byDay    bool
)

var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize spending for a period",
	Long: `Summarize spending: total and per-category breakdown for the chosen
period. Periods: week (Monday to Sunday), biweek (1st-15th or 16th-end of
month), month, or a custom range via --days / --from / --to.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		f := expense.Filter{Category: category, Product: product}
		now := time.Now()

		switch {
		case from != "" || to != "":
			if from != "" {
				start, err := parseDay(from)
				if err != nil {
					return err
				}
				f.From = expense.StartOfDay(start)
			}
			if to != "" {
				end, err := parseDay(to)
				if err != nil {
					return err
				}
				f.To = expense.EndOfDay(end)
			}
		case days > 0:
			f.From, f.To = expense.RollingRange(now, days)
		default:
			switch strings.ToLower(period) {
			case "week":
				f.From, f.To = expense.WeekRange(now)
			case "biweek":
				f.From, f.To = expense.HalfMonthRange(now)
			case "month":
				f.From, f.To = expense.MonthRange(now)
			default:
				return fmt.Errorf("unknown period %q (use week, biweek or month)", period)
			}
		}

		expenses := app.ListExpenses(f)
		if len(expenses) == 0 {
			fmt.Println("No expenses in the selected period.")
			return nil
		}

		bold := color.New(color.Bold)
		bold.Printf("Report %s - %s\n\n",
			f.From.Format("2006-01-02"), f.To.Format("2006-01-02"))

		if byDay {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, d := range expense.TotalsByDay(expenses) {
				fmt.Fprintf(w, "%s\t%.2f\n", d.Day.Format("2006-01-02"), d.Total)
			}
			w.Flush()
			fmt.Println()
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tTOTAL\tCOUNT")
		for _, c := range expense.TotalsByCategory(expenses) {
			fmt.Fprintf(w, "%s\t%.2f\t%d\n", c.Category, c.Total, c.Count)
		}
		w.Flush()

		color.Cyan("\nTotal: %.2f (%d expenses)", expense.Sum(expenses), len(expenses))
		return nil
	},
}

func parseDay(value string) (time.Time, error) {
	ts, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q (use 2006-01-02)", value)
	}
	return ts, nil
}

func init() {
	ReportCmd.Flags().StringVar(&period, "period", "month", "reporting period: week, biweek or month")
	ReportCmd.Flags().IntVar(&days, "days", 0, "report over the last N days instead of a named period")
	ReportCmd.Flags().StringVar(&from, "from", "", "custom range start (2006-01-02)")
	ReportCmd.Flags().StringVar(&to, "to", "", "custom range end (2006-01-02)")
	ReportCmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	ReportCmd.Flags().StringVarP(&product, "product", "p", "", "product name contains")
	ReportCmd.Flags().BoolVar(&byDay, "by-day", false, "include a per-day breakdown")
}
