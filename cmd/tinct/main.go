package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jsvensson/tinct"
	"github.com/jsvensson/tinct/internal/config"
	"github.com/jsvensson/tinct/internal/preview"
	"github.com/jsvensson/tinct/internal/theme"
)

var (
	flagConfig  string
	flagTheme   string
	flagMode    string
	flagApp     []string
	flagVerbose int
	version     = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "tinct",
	Short:   "Inject a Material Design 3 palette into application config templates",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbose, nil)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render all configured templates and run hooks",
	RunE:  runGenerate,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the resolved palette without writing any files",
	RunE:  runPreview,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (repeatable)")

	generateCmd.Flags().StringVar(&flagConfig, "config", config.DefaultPath(), "path to TOML config file")
	generateCmd.Flags().StringVar(&flagTheme, "theme", "", "theme file path or theme name in the themes folder")
	generateCmd.Flags().StringVar(&flagMode, "mode", "dark", "theme mode (light or dark)")
	generateCmd.Flags().StringArrayVar(&flagApp, "app", nil, "render only specific template sections (can be repeated)")
	generateCmd.MarkFlagRequired("theme")

	previewCmd.Flags().StringVar(&flagTheme, "theme", "", "theme file path or theme name in the themes folder")
	previewCmd.Flags().StringVar(&flagMode, "mode", "dark", "theme mode (light or dark)")
	previewCmd.MarkFlagRequired("theme")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mode, err := theme.ParseMode(flagMode)
	if err != nil {
		return err
	}

	th, err := tinct.LoadTheme(config.ResolveTheme(flagTheme))
	if err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mappings := cfg.Mappings
	if len(flagApp) > 0 {
		mappings = slices.DeleteFunc(slices.Clone(mappings), func(m config.Mapping) bool {
			return !slices.Contains(flagApp, m.Name)
		})
	}

	report := tinct.Run(cmd.Context(), tinct.RunConfig{
		Theme:    th,
		Mode:     mode,
		Mappings: mappings,
		Hooks:    cfg.Hooks,
	})

	if report.Failed() {
		for _, line := range report.Errors() {
			fmt.Fprintln(cmd.ErrOrStderr(), line)
		}
		os.Exit(1)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied %s mode to %d templates\n", mode, len(mappings))
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	mode, err := theme.ParseMode(flagMode)
	if err != nil {
		return err
	}

	th, err := tinct.LoadTheme(config.ResolveTheme(flagTheme))
	if err != nil {
		return err
	}

	out, err := preview.Render(th, mode)
	if err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
