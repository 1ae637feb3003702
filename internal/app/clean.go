package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// -------------------------
// Clean
// -------------------------

func newCleanCmd() *cobra.Command {
	var (
		dryRun      bool
		keepRecords bool
	)

	cmd := &cobra.Command{
		Use:   "clean [build-id...]",
		Short: "Remove recorded build outputs and their records",
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := loadAllRecords()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				recs = selectRecords(recs, normalizeList(args))
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clean.")
				return nil
			}
			paths, err := cleanRecords(recs, dryRun, keepRecords)
			if err != nil {
				return err
			}
			prefix := "Cleaned"
			if dryRun {
				prefix = "Would clean"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s builds:%d paths:%d\n", prefix, len(recs), paths)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be removed without deleting")
	cmd.Flags().BoolVar(&keepRecords, "keep-records", false, "Remove outputs but keep the build records")
	return cmd
}

func selectRecords(recs []BuildRecord, ids []string) []BuildRecord {
	var out []BuildRecord
	for _, r := range recs {
		if sliceContains(ids, strings.ToLower(r.BuildID)) {
			out = append(out, r)
		}
	}
	return out
}

// cleanRecords removes every output path of recs and returns how many existed.
func cleanRecords(recs []BuildRecord, dryRun, keepRecords bool) (int, error) {
	removed := 0
	for _, r := range recs {
		paths := append([]string(nil), r.Dirs...)
		if r.Archive != "" {
			paths = append(paths, r.Archive)
		}
		for _, p := range paths {
			if _, err := os.Lstat(p); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return removed, err
			}
			removed++
			if dryRun {
				continue
			}
			if err := os.RemoveAll(p); err != nil {
				return removed, err
			}
		}
		if dryRun || keepRecords {
			continue
		}
		if err := deleteRecord(r.BuildID); err != nil {
			return removed, err
		}
	}
	return removed, nil
}
