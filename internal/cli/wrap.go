package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/vexmason/internal/domain"
	"github.com/aalvaropc/vexmason/internal/infra/proxy"
	"github.com/aalvaropc/vexmason/internal/infra/settings"
)

func wrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wrap <shim> [args...]",
		Short: "Intercept one compiler invocation (what the installed shim runs)",
		Long: "Runs the wrapped compiler that sits next to <shim>. Invocations that write a file\n" +
			"inside a managed project get their config resolved, the entry file transformed\n" +
			"and the --write, --name and --description values rewritten first.",
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load(settings.DefaultPath())
			tc := newTool(s)
			if err != nil {
				if tc.manages(args[1:]) {
					return err
				}
				// Unmanaged invocations only need the wrapped binary's name.
				fmt.Fprintf(cmd.ErrOrStderr(), "vexmason: ignoring settings: %v\n", err)
				tc = newTool(domain.DefaultSettings())
			}

			exe, err := proxy.Locate(args[0], tc.settings.Wrapped.Name)
			if err != nil {
				return err
			}

			code, err := tc.build().Execute(cmd.Context(), exe, args[1:])
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
}
