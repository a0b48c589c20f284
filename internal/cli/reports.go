package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"report-automation-be/internal/dto"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var req dto.ListReportsRequest

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				reports, err := a.container.ReportService.List(cmd.Context(), &req)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(reports) == 0 {
					warnColor.Fprintln(out, "(no reports)")
					return nil
				}

				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				headColor.Fprintln(w, "ID\tFORM\tPERIOD\tDATE\tCREATED")
				for _, r := range reports {
					fmt.Fprintf(w, "%d\t%s\t%s %d\t%s\t%s\n",
						r.Id, r.FormName, r.Month, r.Year, r.ReportDate, r.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&req.FormName, "form", "", "only reports of this form")
	cmd.Flags().StringVar(&req.Month, "month", "", "only reports of this month")
	cmd.Flags().IntVar(&req.Year, "year", 0, "only reports of this year")
	cmd.Flags().IntVar(&req.Limit, "limit", 0, "maximum number of reports")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one report with its answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				r, err := a.container.ReportService.Show(cmd.Context(), id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				headColor.Fprintf(out, "Отчет: %s %s %d\n", r.FormName, r.Month, r.Year)
				fmt.Fprintf(out, "Дата отчета: %s\nФайл: %s\n\n", r.ReportDate, r.FilePath)
				for i, ans := range r.Answers {
					fmt.Fprintf(out, "%d. %s: %s\n", i+1, ans.QuestionText, ans.Decision)
					if ans.Comment != "" {
						fmt.Fprintf(out, "   %s\n", ans.Comment)
					}
				}
				return nil
			})
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a report and its answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				if err := a.container.ReportService.Delete(cmd.Context(), id); err != nil {
					return err
				}
				okColor.Fprintf(cmd.OutOrStdout(), "report %d deleted\n", id)
				return nil
			})
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <id>",
		Short: "Write a stored report to a new spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(a *app) error {
				res, err := a.container.ReportService.Export(cmd.Context(), id)
				if err != nil {
					return err
				}
				okColor.Fprintf(cmd.OutOrStdout(), "exported to %s\n", res.FilePath)
				return nil
			})
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid report id %q", s)
	}
	return id, nil
}
