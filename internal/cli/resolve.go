package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/vexmason/internal/ctxlog"
	"github.com/aalvaropc/vexmason/internal/domain"
)

func resolveCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "resolve [dir]",
		Short: "Resolve and print the project configuration without building",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "pretty" && format != "json" {
				return &ExitError{Code: 2, Message: "invalid format: must be 'pretty' or 'json'"}
			}

			tc, err := loadTool()
			if err != nil {
				return err
			}

			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := tc.projectRoot(dir)
			if err != nil {
				return err
			}

			// Soft problems go to stderr; there is no build log here.
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			ctx := ctxlog.WithLogger(cmd.Context(), log)

			cfg, err := tc.resolver.Execute(ctx, root)
			if err != nil {
				return err
			}
			return printResolved(cmd.OutOrStdout(), cfg, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

type resolvedJSON struct {
	ConfigVersion string         `json:"config_version"`
	ComputerName  string         `json:"computer_name"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Language      string         `json:"language"`
	Minify        bool           `json:"minify"`
	Defines       map[string]any `json:"defines"`
	ProjectRoot   string         `json:"project_root"`
	EntryFile     string         `json:"entry_file"`
	BuildOutput   string         `json:"build_output"`
	LogOutput     string         `json:"log_output"`
}

func printResolved(w io.Writer, cfg domain.ResolvedConfig, format string) error {
	if format == "json" {
		defines := make(map[string]any, len(cfg.Defines))
		for k, v := range cfg.Defines {
			defines[k] = v.Raw()
		}
		b, err := json.MarshalIndent(resolvedJSON{
			ConfigVersion: cfg.ConfigVersion,
			ComputerName:  cfg.ComputerName,
			Name:          cfg.Name,
			Description:   cfg.Description,
			Language:      cfg.Language,
			Minify:        cfg.Minify,
			Defines:       defines,
			ProjectRoot:   cfg.ProjectRoot,
			EntryFile:     cfg.EntryFile,
			BuildOutput:   cfg.BuildOutput(),
			LogOutput:     cfg.LogOutput(),
		}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	th := defaultTheme()
	var b strings.Builder
	fmt.Fprintln(&b, th.Title.Render(cfg.Name))
	fmt.Fprintln(&b, th.Faint.Render(cfg.Description))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "config      %s\n", cfg.ConfigVersion)
	fmt.Fprintf(&b, "computer    %s\n", cfg.ComputerName)
	fmt.Fprintf(&b, "language    %s\n", cfg.Language)
	fmt.Fprintf(&b, "minify      %t\n", cfg.Minify)
	fmt.Fprintf(&b, "root        %s\n", cfg.ProjectRoot)
	fmt.Fprintf(&b, "entry       %s\n", cfg.EntryFile)
	fmt.Fprintf(&b, "output      %s\n", cfg.BuildOutput())
	if len(cfg.Defines) == 0 {
		fmt.Fprint(&b, "defines     (none)")
	} else {
		fmt.Fprint(&b, "defines")
		for _, name := range cfg.DefineNames() {
			fmt.Fprintf(&b, "\n  %s = %s", name, cfg.Defines[name].String())
		}
	}

	_, err := fmt.Fprintln(w, th.Card.Render(b.String()))
	return err
}
