package cmd

import (
	"gastos/cmd/client/cmd/auth"
	"gastos/cmd/client/cmd/category"
	"gastos/cmd/client/cmd/csv"
	"gastos/cmd/client/cmd/expense"
	"gastos/cmd/client/cmd/report"
	"gastos/cmd/client/cmd/sync"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(expense.ExpenseCmd)
	expense.ExpenseCmd.AddCommand(expense.AddCmd)
	expense.ExpenseCmd.AddCommand(expense.ListCmd)
	expense.ExpenseCmd.AddCommand(expense.EditCmd)
	expense.ExpenseCmd.AddCommand(expense.DeleteCmd)

	rootCmd.AddCommand(category.CategoryCmd)
	category.CategoryCmd.AddCommand(category.ListCmd)
	category.CategoryCmd.AddCommand(category.DeleteCmd)

	rootCmd.AddCommand(report.ReportCmd)

	rootCmd.AddCommand(csv.CSVCmd)
	csv.CSVCmd.AddCommand(csv.ImportCmd)
	csv.CSVCmd.AddCommand(csv.ExportCmd)

	rootCmd.AddCommand(sync.SyncCmd)
}
