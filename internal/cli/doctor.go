package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/vexmason/internal/infra/toolcheck"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the tools the transform step needs are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tc, err := loadTool()
			if err != nil {
				return err
			}

			th := defaultTheme()
			w := cmd.OutOrStdout()
			reqs := toolcheck.DefaultRequirements(tc.settings.Transform.Interpreter)

			failed := 0
			for _, res := range toolcheck.New().CheckAll(cmd.Context(), reqs) {
				if res.OK() {
					fmt.Fprintf(w, "%s %s %s (%s)\n", th.OK.Render("ok"), res.Program, res.Version, res.Constraint)
					continue
				}
				failed++
				fmt.Fprintf(w, "%s %s: %v\n", th.Error.Render("fail"), res.Program, res.Err)
			}

			if failed > 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d required tool(s) missing or outdated", failed)}
			}
			return nil
		},
	}
}
