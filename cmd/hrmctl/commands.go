package main

import (
	"fmt"
	"strconv"

	"hrm_records_go/internal/app"
	"hrm_records_go/internal/repository"
	"hrm_records_go/internal/service"

	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dest.xlsx>",
		Short: "Export all records to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				if err := a.Transfer.ExportFile(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
				return nil
			})
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var clearFirst bool
	cmd := &cobra.Command{
		Use:   "import <src.xlsx>",
		Short: "Import records from an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				res, err := a.Transfer.Import(args[0], clearFirst)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "departments=%d members=%d documents=%d work_histories=%d\n",
					res.Departments, res.Members, res.Documents, res.WorkHistories)
				fmt.Fprintf(out, "award_years=%d award_titles=%d award_authorities=%d award_batches=%d staff_awards=%d department_awards=%d\n",
					res.AwardYears, res.AwardTitles, res.AwardAuthorities, res.AwardBatches, res.StaffAwards, res.DepartmentAwards)
				for _, w := range res.Warnings {
					fmt.Fprintf(out, "warning: %s\n", w)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clearFirst, "clear-first", false, "delete all existing records before importing")
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var backupPath string
	var removeFiles bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all records, optionally exporting a workbook first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				report, err := a.Transfer.Reset(backupPath, removeFiles)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "database cleared, %d files removed\n", report.RemovedFiles)
				for _, w := range report.Warnings {
					fmt.Fprintf(out, "warning: %s\n", w)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&backupPath, "backup", "", "export a workbook to this path before clearing")
	cmd.Flags().BoolVar(&removeFiles, "remove-files", false, "also empty the uploads directory")
	return cmd
}

func newBackupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <dest.zip>",
		Short: "Write a zip bundle with the sqlite database and uploads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				if err := a.Backup.Backup(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", args[0])
				return nil
			})
		},
	}
}

// restore 不打开数据库，避免覆盖正在使用的文件。
func newRestoreCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <src.zip>",
		Short: "Restore the sqlite database and uploads from a zip bundle (server must be stopped)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := service.NewBackupService(nil, app.Locations(opts.cfg)).Restore(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d files\n", n)
			return nil
		},
	}
}

func newRenumberCmd(opts *rootOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "renumber [department-id]",
		Short: "Resequence member numbers (STT) to 1..N within departments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("give either a department id or --all")
			}
			return opts.withApp(func(a *app.App) error {
				var ids []uint
				if all {
					depts, err := a.Departments.List()
					if err != nil {
						return err
					}
					for _, d := range depts {
						ids = append(ids, d.ID)
					}
				} else {
					id, err := strconv.ParseUint(args[0], 10, 32)
					if err != nil || id == 0 {
						return fmt.Errorf("invalid department id %q", args[0])
					}
					ids = append(ids, uint(id))
				}
				for _, id := range ids {
					if err := a.Members.Resequence(id); err != nil {
						return fmt.Errorf("department %d: %w", id, err)
					}
					rows, err := a.Members.ListByDepartment(id, repository.MemberSortSTTAsc)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "department %d: %d members renumbered\n", id, len(rows))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "renumber every department")
	return cmd
}
