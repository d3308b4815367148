package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-relax/internal/logging"
	"github.com/cwbudde/algo-relax/internal/store"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List stored experiments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(root, func(st *store.Store) error {
				rows, err := st.History(cmd.Context())
				if err != nil {
					return err
				}
				return writeHistory(cmd.OutOrStdout(), rows)
			})
		},
	}
}

func newVerdictCmd(root *rootOptions) *cobra.Command {
	var verdict string
	cmd := &cobra.Command{
		Use:   "verdict ID...",
		Short: "Set the verdict of stored experiments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return withStore(root, func(st *store.Store) error {
				n, err := st.UpdateVerdict(cmd.Context(), ids, verdict)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "updated %d experiment(s)\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&verdict, "set", "", "verdict text, e.g. Accepted or Rejected")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

func newDeleteCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete stored experiments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return withStore(root, func(st *store.Store) error {
				n, err := st.Delete(cmd.Context(), ids)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d experiment(s)\n", n)
				return nil
			})
		},
	}
}

func withStore(root *rootOptions, fn func(*store.Store) error) error {
	st, err := store.Open(root.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logging.New("store").Warn("failed to close db", slog.String("error", cerr.Error()))
		}
	}()
	return fn(st)
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid experiment id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func writeHistory(w io.Writer, rows []store.Experiment) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tFILE\tT (°C)\tMODEL\tR²\tTAU (s)\tQUALITY\tCLASS\tVERDICT")
	for _, r := range rows {
		model := r.BestModel
		if r.BadData {
			model = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%g\t%s\t%.4f\t%.4g\t%.2f\t%s\t%s\n",
			r.ID, r.Timestamp.Local().Format(time.DateTime), r.Filename, r.Temperature,
			model, r.R2, r.Tau, r.Quality, r.MaterialClass, r.Verdict)
	}
	return tw.Flush()
}
