// Package main implements the wiz-iac pre-commit hook.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Veraticus/wiz-iac/internal/config"
	"github.com/Veraticus/wiz-iac/internal/hooks"
	"github.com/Veraticus/wiz-iac/internal/log"
	"github.com/Veraticus/wiz-iac/internal/options"
	"github.com/Veraticus/wiz-iac/internal/output"
)

var (
	cfg     *config.Config // loaded by loadConfig before any command runs
	cfgPath string         // config file used, empty when none was found

	flagConfigFile string
	flagVerbose    bool
	flagWorkDir    string
	flagExecutable string
	flagForce      bool

	exitCode int // set by the scan commands
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Config file to load (default: ./.wiz-iac.yaml, then the user and system config dirs)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&flagWorkDir, "workdir", "", "Directory to run the scanner in (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagExecutable, "executable", "", "Scanner executable (default: wizcli)")

	// the root command scans too, so the hook entry can be the bare binary
	options.IaCScan.Register(rootCmd.Flags())
	options.IaCScan.Register(scanCmd.Flags())
	initCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file")

	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return options.FlagError(err)
	})
	rootCmd.PersistentPreRunE = loadConfig

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(hooks.Fail(output.NewReporter(os.Stdout, output.IsTerminal(os.Stdout)), err))
	}
	os.Exit(exitCode)
}

var rootCmd = &cobra.Command{
	Use:          "wiz-iac [flags] [files...]",
	Short:        "Pre-commit hook running wizcli iac scan",
	Long:         "wiz-iac runs `wizcli iac scan` with the given flags and fails the commit when the scan fails.\nFile arguments passed by pre-commit are ignored; use --path to choose what is scanned.",
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runScan,
}

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [files...]",
	Short: "Run wizcli iac scan (default command)",
	Args:  cobra.ArbitraryArgs,
	RunE:  runScan,
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the scanner flags forwarded to wizcli",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, listOptions(options.IaCScan, output.NewListRenderer(out, output.IsTerminal(out))))
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + config.FileName + " into the working directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir := flagWorkDir
		if dir == "" {
			dir = "."
		}
		path, err := config.WriteDefault(dir, flagForce)
		if err != nil {
			return err
		}
		slog.DebugContext(cmd.Context(), "config written", "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Fprintln(out, "wiz-iac: version info not available")
			return
		}

		if cfgPath != "" {
			fmt.Fprintf(out, "config:  %s\n", cfgPath)
		}
		fmt.Fprintf(out, "wiz-iac: %s\n", info.Main.Version)
		fmt.Fprintf(out, "go:      %s\n", info.GoVersion)
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				fmt.Fprintf(out, "commit:  %s\n", s.Value)
			case "vcs.time":
				fmt.Fprintf(out, "date:    %s\n", s.Value)
			case "vcs.modified":
				fmt.Fprintf(out, "dirty:   %s\n", s.Value)
			}
		}
	},
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, cfgPath, err = config.Load(flagConfigFile)
	if err != nil {
		return err
	}

	// --verbose has a precedence over config file
	verbose := flagVerbose || cfg.Verbose
	logger := log.New(cmd.ErrOrStderr(), verbose)
	slog.SetDefault(logger)
	if cfgPath != "" {
		logger.Debug("config loaded", "path", cfgPath)
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	b, err := options.FromFlags(options.IaCScan, cmd.Flags())
	if err != nil {
		return err
	}

	scan := hooks.Scan{
		Options:    b,
		Defaults:   cfg.Options,
		Executable: firstNonEmpty(flagExecutable, cfg.Executable),
		BaseArgs:   cfg.BaseArgs,
		WorkDir:    firstNonEmpty(flagWorkDir, cfg.WorkDir),
		Files:      args,
	}

	deps := hooks.NewDefaultDependencies()
	deps.Stdout = cmd.OutOrStdout()
	deps.Color = output.IsTerminal(deps.Stdout)
	exitCode = hooks.RunIaCScan(cmd.Context(), scan, deps)
	return nil
}

func listOptions(c *options.Catalog, l *output.ListRenderer) string {
	rows := make([]output.Row, 0, c.Len())
	for _, s := range c.Specs() {
		required := ""
		if s.Required {
			required = "required"
		}
		rows = append(rows, output.Row{
			Key:     "--" + s.Flag(),
			Columns: []string{s.Kind.String(), required, s.Usage},
		})
	}
	return l.RenderTable("wizcli iac scan options", rows)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
