package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/phrazzld/scroll-api/internal/domain"
	"github.com/phrazzld/scroll-api/internal/schemas"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List studysets that recovery would resume",
	Long: "Load the store and print the studysets still generating and the " +
		"studysets with reels whose render has not finished. No studyset is modified.",
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	cfg, logger, err := loadAppConfig()
	if err != nil {
		return err
	}

	validator, err := schemas.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to load schemas: %w", err)
	}

	st, closeStore, err := openStore(ctx, cfg, validator, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	return writeScanReport(cmd.OutOrStdout(), st.List())
}

// writeScanReport prints one row per studyset that needs recovery work.
func writeScanReport(out io.Writer, studysets []*domain.Studyset) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tPENDING RENDERS\tACTION")

	rows := 0
	for _, st := range studysets {
		var action string
		switch {
		case st.Status == domain.StudysetStatusPending:
			action = "fail interrupted generation"
		case st.HasPendingRenders():
			action = "resume polling"
		default:
			continue
		}
		rows++
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", st.ID, st.Status, st.PendingReelCount(), action)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d of %d studysets need recovery\n", rows, len(studysets))
	return err
}
