package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"resume-review/internal/bootstrap"
	"resume-review/internal/history"
	"resume-review/internal/report"
)

func newHistoryCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse or clear stored analyses",
	}
	cmd.AddCommand(newHistoryListCmd(opts))
	cmd.AddCommand(newHistoryShowCmd(opts))
	cmd.AddCommand(newHistoryClearCmd(opts))
	return cmd
}

func newHistoryListCmd(opts Options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				entries := app.History.List()
				if asJSON {
					return writeJSON(cmd, entries)
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.History(opts.Styles, entries))
				if len(entries) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Total: %d analyses\n", len(entries))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}

func newHistoryShowCmd(opts Options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one stored analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				entry, err := app.History.Get(id)
				if errors.Is(err, history.ErrNotFound) {
					return fmt.Errorf("no analysis with id %d", id)
				}
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, entry)
				}
				fmt.Fprintln(cmd.OutOrStdout(), report.Entry(opts.Styles, entry))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the entry as JSON")
	return cmd
}

func newHistoryClearCmd(opts Options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear history without --yes")
			}
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				n := app.History.Len()
				if err := app.History.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d analyses\n", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
