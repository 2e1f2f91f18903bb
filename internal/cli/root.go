package cli

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const toolName = "vexmason"

// Execute runs the command tree, or the interception pipeline when the
// binary was installed under the wrapped compiler's name.
func Execute() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	var cmd *cobra.Command
	if len(argv) > 0 && isShim(argv[0]) {
		cmd = wrapCmd()
		cmd.SetArgs(append([]string{shimPath(argv[0])}, argv[1:]...))
	} else {
		cmd = newRootCmd()
		if len(argv) > 0 {
			cmd.SetArgs(argv[1:])
		}
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	return exitCode(stderr, cmd.ExecuteContext(ctx))
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           toolName,
		Short:         "vexmason: configurable builds in front of the VEX compiler",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(wrapCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(resolveCmd())
	cmd.AddCommand(doctorCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

func isShim(arg0 string) bool {
	name := strings.TrimSuffix(filepath.Base(arg0), ".exe")
	return name != toolName
}

// shimPath turns argv[0] into a path whose directory holds the wrapped binary.
func shimPath(arg0 string) string {
	if strings.ContainsRune(arg0, filepath.Separator) || strings.ContainsRune(arg0, '/') {
		return arg0
	}
	if p, err := exec.LookPath(arg0); err == nil {
		return p
	}
	if p, err := os.Executable(); err == nil {
		return p
	}
	return arg0
}
