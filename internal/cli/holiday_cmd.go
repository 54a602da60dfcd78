package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/samplan/internal/cli/formatter"
	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/holiday"
	"github.com/spf13/cobra"
)

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage the holiday calendar",
	}

	cmd.AddCommand(
		newHolidayImportCmd(app),
		newHolidayListCmd(app),
		newHolidayAddCmd(app),
		newHolidayRemoveCmd(app),
		newHolidayEasterCmd(),
	)

	return cmd
}

func newHolidayImportCmd(app *App) *cobra.Command {
	var years []int
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import Peruvian holidays for years, or holidays from a JSON file",
		Example: `  samplan holiday import --year 2025 --year 2026
  samplan holiday import --file lima.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && len(years) == 0 {
				return fmt.Errorf("pass --year or --file")
			}
			var results []*contract.HolidayImportResult
			if file != "" {
				r, err := app.Holidays.ImportFile(cmd.Context(), file)
				if err != nil {
					return err
				}
				results = append(results, r)
			}
			for _, y := range years {
				r, err := app.Holidays.ImportYear(cmd.Context(), y)
				if err != nil {
					return err
				}
				results = append(results, r)
			}
			for _, r := range results {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(r))
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&years, "year", nil, "Year(s) to import from the built-in Peru calendar")
	cmd.Flags().StringVar(&file, "file", "", "JSON holiday file")

	return cmd
}

func newHolidayListCmd(app *App) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored holidays of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("year") {
				year = domain.Today().Year()
			}
			hs, err := app.Holidays.List(cmd.Context(), year)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHolidays(year, hs))
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current year)")

	return cmd
}

func newHolidayAddCmd(app *App) *cobra.Command {
	var date domain.Date
	var name string
	var recurring bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a one-off holiday",
		RunE: func(cmd *cobra.Command, args []string) error {
			h := domain.Holiday{Date: date, Name: name, Recurring: recurring}
			if err := app.Holidays.Add(cmd.Context(), h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", date, name)
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&date), "date", "Holiday date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&name, "name", "", "Holiday name")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "Mark as repeating every year")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newHolidayRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove DATE",
		Short: "Remove the holiday on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := domain.ParseDate(args[0])
			if err != nil {
				return err
			}
			if err := app.Holidays.Delete(cmd.Context(), date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed holiday %s\n", date)
			return nil
		},
	}
}

func newHolidayEasterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "easter YEAR",
		Short: "Print Easter Sunday and the Holy Week holidays of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			easter := holiday.Easter(year)
			national := holiday.FromProvider(holiday.PeruProvider{}, year)
			rows := [][]string{
				{easter.AddDays(-3).String(), national.Name(easter.AddDays(-3))},
				{easter.AddDays(-2).String(), national.Name(easter.AddDays(-2))},
				{easter.String(), "Domingo de Resurrección"},
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"DATE", "DAY"}, rows))
			return nil
		},
	}
}
