package main

import (
	"fmt"

	"invest-portal/internal/features/cleanup"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Report, or with --apply delete, uploaded files no record refers to",
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc cleanup.CleanupService
			return withApp(cmd.Context(), func() error {
				result, err := svc.SweepOrphans(cmd.Context(), apply)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, o := range result.Orphans {
					fmt.Fprintf(out, "%s\t%d\n", o.ReferencePath, o.SizeBytes)
				}
				if result.DryRun {
					fmt.Fprintf(out, "%d orphaned file(s); rerun with --apply to delete\n", result.CandidateCount)
					return nil
				}
				fmt.Fprintf(out, "deleted %d, failed %d, reclaimed %d bytes\n",
					result.DeletedCount, result.FailedCount, result.ReclaimedBytes)
				return nil
			}, &svc)
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "delete the orphaned files")
	return cmd
}
