package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/vexmason/internal/domain"
	"github.com/aalvaropc/vexmason/internal/infra/fsproject"
	"github.com/aalvaropc/vexmason/internal/usecase"
)

func initCmd() *cobra.Command {
	var name string
	var language string
	var computer string
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create the vexmason config files for a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("invalid project path: %w", err)
			}

			if computer == "" {
				if h, err := os.Hostname(); err == nil {
					computer = h
				}
			}

			layout := domain.DefaultLayout()
			uc := usecase.NewInitProject(fsproject.NewInitializer(layout))
			spec := domain.ProjectSpec{Root: root, Name: name, Language: language, ComputerName: computer}
			if err := uc.Execute(spec, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", layout.ConfigPath(root))
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "Program name (defaults to the directory name)")
	c.Flags().StringVar(&language, "language", "python", "Target language tag")
	c.Flags().StringVar(&computer, "computer-name", "", "Computer name for the local overrides (defaults to the hostname)")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing config files")
	return c
}
