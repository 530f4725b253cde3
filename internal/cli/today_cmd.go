package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/cyclesync/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *App) *cobra.Command {
	var on time.Time

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's phase, suggestions and agenda",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Today.Today(cmd.Context(), app.Owner, app.refDate(on))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatToday(resp))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&on), "date", "Show another day (YYYY-MM-DD)")
	return cmd
}
