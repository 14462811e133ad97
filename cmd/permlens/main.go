package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/IvanShishkin/permlens/internal/config"
	"github.com/IvanShishkin/permlens/internal/filesystem"
	"github.com/IvanShishkin/permlens/internal/inspector"
	"github.com/IvanShishkin/permlens/internal/report"
	"github.com/IvanShishkin/permlens/internal/web"
	"github.com/IvanShishkin/permlens/pkg/models"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bannerColor = color.New(color.FgYellow)
	boldColor   = color.New(color.Bold)
	titleColor  = color.New(color.Bold, color.FgYellow)
	grayColor   = color.New(color.FgHiBlack)
	cyanColor   = color.New(color.FgCyan)
	redColor    = color.New(color.FgRed)
)

var (
	version    = "0.1.0"
	verbose    bool
	configFile string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Analysis failures were already reported by the inspect command
		var analysisErr *models.AnalysisError
		if !errors.As(err, &analysisErr) {
			redColor.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "permlens",
		Short: "permlens - File Permission Analyzer",
		Long: `Inspect the permission bits and ownership of a file or directory and flag
risky settings such as world-writable entries and setuid binaries.`,
		Version:       version,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner(cmd.OutOrStdout())
			cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (yaml, toml or json)")

	// Disable built-in help command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(helpCmd())

	return rootCmd
}

// printBanner prints the main banner
func printBanner(w io.Writer) {
	fmt.Fprintln(w)
	bannerColor.Fprintln(w, "█▀█ █▀▀ █▀█ █▀▄▀█ █   █▀▀ █▄ █ █▀")
	bannerColor.Fprintln(w, "█▀▀ ██▄ █▀▄ █ ▀ █ █▄▄ ██▄ █ ▀█ ▄█")
	fmt.Fprintln(w)
	grayColor.Fprintf(w, "File Permission Analyzer v%s\n", version)
}

// inspectCmd creates the inspect command
func inspectCmd() *cobra.Command {
	var (
		reportFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Analyze permissions of a file or directory",
		Long:  `Show ownership, permission bits, special bits and security warnings for a single file or directory.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// Validate flags before doing anything; main reports the error
			if err := validateFlags(reportFormat, ""); err != nil {
				return err
			}
			cmd.SilenceUsage = true

			logger, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			if reportFormat != "" {
				cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				cfg.OutputFile = outputFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			insp := inspector.NewInspector(afero.NewOsFs(), filesystem.NewSystemResolver(), logger)
			generator, err := report.NewGenerator(cfg, logger)
			if err != nil {
				return err
			}
			generator.SetOutput(out)

			// Structured formats on stdout must stay parseable
			if cfg.ReportFormat == "" {
				printBanner(out)
			}

			result, err := insp.Analyze(args[0])
			if err != nil {
				generator.GenerateError(err)
				return err
			}

			reportPath, err := generator.Generate(result)
			if err != nil {
				logger.Error("Failed to generate report", zap.Error(err))
				return err
			}

			if reportPath != "" {
				fmt.Fprintf(out, "  %s    %s\n\n", grayColor.Sprint("Report:"), bannerColor.Sprint(reportPath))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: text, json, yaml, md, html (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")

	return cmd
}

// serveCmd creates the serve command
func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  `Serve the permission analyzer web UI with file upload, server path analysis and a JSON API.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if err := validateFlags("", listen); err != nil {
				return err
			}
			cmd.SilenceUsage = true

			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newServerLogger(cfg.Log, verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			fsys := afero.NewOsFs()
			insp := inspector.NewInspector(fsys, filesystem.NewSystemResolver(), logger.Named("inspector"))
			stager := filesystem.NewStager(fsys, cfg.Upload.Dir, cfg.MaxUploadBytes(), logger.Named("upload"))

			srv, err := web.NewServer(cfg, insp, stager, logger.Named("web"))
			if err != nil {
				return err
			}

			printBanner(out)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  %s    http://%s\n\n", grayColor.Sprint("Web UI:"), displayAddr(cfg.Server.Listen))

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default: :8501)")

	return cmd
}

// validateFlags validates CLI flag values
func validateFlags(reportFormat, listen string) error {
	if reportFormat != "" && !contains(config.ReportFormats, reportFormat) {
		return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(config.ReportFormats, ", "), reportFormat)
	}
	if listen != "" {
		if _, _, err := net.SplitHostPort(listen); err != nil {
			return fmt.Errorf("--listen must be host:port (got: %s)", listen)
		}
	}
	return nil
}

// displayAddr turns a listen address into something a browser can open
func displayAddr(listen string) string {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// helpCmd creates a detailed help command
func helpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show detailed help and documentation",
		Long:  `Display complete documentation including all commands, flags, and examples.`,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			printBanner(w)
			fmt.Fprintln(w)

			titleColor.Fprintf(w, "ABOUT\n\n")
			fmt.Fprintf(w, "  permlens analyzes file and directory permissions and identifies potential\n")
			fmt.Fprintf(w, "  security issues. It reports ownership, the nine permission bits, setuid,\n")
			fmt.Fprintf(w, "  setgid and sticky, and warns about risky combinations.\n\n")

			fmt.Fprintf(w, "  %s\n", boldColor.Sprint("Warnings:"))
			fmt.Fprintf(w, "  • world-writable                 others may write the entry\n")
			fmt.Fprintf(w, "  • elevated-privilege execution   setuid bit is set\n")
			fmt.Fprintf(w, "  • unsafe directory permissions   world-writable directory without sticky bit\n\n")

			titleColor.Fprintf(w, "COMMANDS\n\n")
			fmt.Fprintf(w, "  %s    Analyze a single file or directory\n", boldColor.Sprint("inspect <path>"))
			fmt.Fprintf(w, "  %s             Start the web UI\n", boldColor.Sprint("serve"))

			titleColor.Fprintf(w, "\nINSPECT FLAGS\n\n")
			fmt.Fprintf(w, "  %s <fmt>  Report format: %s, %s, %s, %s, %s\n",
				boldColor.Sprint("-r, --report"), cyanColor.Sprint("text"), cyanColor.Sprint("json"),
				cyanColor.Sprint("yaml"), cyanColor.Sprint("md"), cyanColor.Sprint("html"))
			fmt.Fprintf(w, "  %s <file> Output file path\n", boldColor.Sprint("-o, --output"))

			titleColor.Fprintf(w, "\nSERVE FLAGS\n\n")
			fmt.Fprintf(w, "  %s <addr>    Listen address (default: :8501)\n", boldColor.Sprint("--listen"))

			titleColor.Fprintf(w, "\nGLOBAL FLAGS\n\n")
			fmt.Fprintf(w, "  %s       Enable verbose logging\n", boldColor.Sprint("-v, --verbose"))
			fmt.Fprintf(w, "  %s <file> Config file (yaml, toml or json)\n", boldColor.Sprint("-c, --config"))
			fmt.Fprintf(w, "  %s          Show help for any command\n", boldColor.Sprint("-h, --help"))
			fmt.Fprintf(w, "  %s           Show version\n", boldColor.Sprint("--version"))

			titleColor.Fprintf(w, "\nENVIRONMENT\n\n")
			fmt.Fprintf(w, "  Every config key can be set as PERMLENS_<KEY>, e.g. PERMLENS_SERVER_LISTEN=:9000\n")

			titleColor.Fprintf(w, "\nEXAMPLES\n\n")
			fmt.Fprintf(w, "  %s\n", grayColor.Sprint("# Analyze a file"))
			fmt.Fprintf(w, "  permlens inspect /etc/passwd\n\n")
			fmt.Fprintf(w, "  %s\n", grayColor.Sprint("# Machine-readable output"))
			fmt.Fprintf(w, "  permlens inspect --report=json /tmp\n\n")
			fmt.Fprintf(w, "  %s\n", grayColor.Sprint("# Standalone HTML report"))
			fmt.Fprintf(w, "  permlens inspect --report=html --output=report.html ~/.ssh\n\n")
			fmt.Fprintf(w, "  %s\n", grayColor.Sprint("# Web UI on another port"))
			fmt.Fprintf(w, "  permlens serve --listen=:9000\n\n")
		},
	}
}
