package cli

import (
	"fmt"

	"github.com/alexanderramin/cyclesync/internal/cli/formatter"
	"github.com/alexanderramin/cyclesync/internal/domain"
	"github.com/alexanderramin/cyclesync/internal/service"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act"},
		Short:   "Browse the catalog and manage your activities",
	}

	cmd.AddCommand(
		newActivityCatalogCmd(app),
		newActivityDiscoverCmd(app),
		newActivityMineCmd(app),
		newActivityAcceptCmd(app),
		newActivityFavoriteCmd(app),
		newActivityDeactivateCmd(app),
		newActivityImportCmd(app),
	)

	return cmd
}

// parseOptionalPhase returns nil for "".
func parseOptionalPhase(s string) (*domain.Phase, error) {
	if s == "" {
		return nil, nil
	}
	p, err := domain.ParsePhase(s)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func newActivityCatalogCmd(app *App) *cobra.Command {
	var typeFlag, phaseFlag, query string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog activities, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := service.SearchFilter{Query: query, Ref: app.now()}
			if typeFlag != "" {
				t, err := domain.ParseActivityType(typeFlag)
				if err != nil {
					return err
				}
				f.Type = &t
			}
			phase, err := parseOptionalPhase(phaseFlag)
			if err != nil {
				return err
			}
			f.Phase = phase

			acts, err := app.Activities.Search(cmd.Context(), app.Owner, f)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityTable("Catalog", acts))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "Filter by type (exercise, meal, wellbeing, self_care, productivity)")
	cmd.Flags().StringVar(&phaseFlag, "phase", "", "Filter by phase")
	cmd.Flags().StringVar(&query, "search", "", "Case-insensitive name search")
	return cmd
}

func newActivityDiscoverCmd(app *App) *cobra.Command {
	var phaseFlag string
	var list bool

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Swipe through activities you have not picked yet",
		Long: "Shows activities you have not accepted, those suited to your current phase first.\n" +
			"On a terminal this opens a card deck: →/l accept, ←/h skip, f favourite, q quit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			phase, err := parseOptionalPhase(phaseFlag)
			if err != nil {
				return err
			}
			cards, err := app.Activities.Discover(ctx, app.Owner, phase, app.now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, formatter.Dim("Nothing left to discover."))
				return nil
			}
			if list || !app.interactive() {
				fmt.Fprint(out, formatter.FormatActivityTable("Discover", cards))
				return nil
			}

			summary, err := runDeck(ctx, app, cards)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Accepted %d, favourited %d, skipped %d.\n", summary.accepted, summary.favorited, summary.skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&phaseFlag, "phase", "", "Only show activities for this phase")
	cmd.Flags().BoolVar(&list, "list", false, "Print a list instead of opening the deck")
	return cmd
}

func newActivityMineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List your active activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owned, err := app.Activities.Mine(cmd.Context(), app.Owner)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOwned(owned))
			return nil
		},
	}
}

func newActivityAcceptCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "accept ID",
		Short: "Add a catalog activity to your active set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Activities.Accept(cmd.Context(), app.Owner, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Accepted %s\n", args[0])
			return nil
		},
	}
}

func newActivityFavoriteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "favorite ID",
		Aliases: []string{"fav", "favourite"},
		Short:   "Toggle an activity as favourite",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ua, err := app.Activities.ToggleFavorite(cmd.Context(), app.Owner, args[0])
			if err != nil {
				return err
			}
			if ua.IsFavorite {
				fmt.Fprintf(cmd.OutOrStdout(), "★ %s is a favourite\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is no longer a favourite\n", args[0])
			}
			return nil
		},
	}
}

func newActivityDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ID",
		Short: "Remove an activity from your active set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Activities.Deactivate(cmd.Context(), app.Owner, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated %s\n", args[0])
			return nil
		},
	}
}

func newActivityImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import or update catalog activities from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportCatalog(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d activities from %s\n", res.Activities, args[0])
			return nil
		},
	}
}
