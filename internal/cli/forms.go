package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func formsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List questionnaire forms in the forms folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				res, err := a.container.SessionService.ListForms(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(res.Forms) == 0 {
					warnColor.Fprintf(out, "(no forms found in %s)\n", a.cfg.Storage.FormsDir)
					return nil
				}
				for _, name := range res.Forms {
					fmt.Fprintf(out, "- %s\n", name)
				}
				return nil
			})
		},
	}
}
