package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"blackbox/internal/config"
	"blackbox/internal/logging"
	"blackbox/internal/reconcile"
	"blackbox/internal/redact"
	"blackbox/internal/session"
)

var (
	// Global flags
	verbose    bool
	configPath string
	allowGlobs []string

	// file flags
	windowSpec string
	writeBack  bool

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blackbox",
	Short: "blackbox - signature-preserving source redaction",
	Long: `blackbox rewrites TypeScript/JavaScript source so implementation bodies
and initializers are hidden while exported signatures, type annotations, and
doc comments remain intact. The output always has exactly as many lines as
the input, so line numbers in tool output stay truthful.

Non-exported declarations and private/protected class members are collapsed
entirely, hiding their existence as well as their implementation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		switch {
		case configPath != "":
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
		default:
			cfg = config.Default()
		}
		cfg.Allow = append(cfg.Allow, allowGlobs...)
		if verbose {
			cfg.Logging.Verbose = true
		}
		if err := logging.Init(cfg.Logging.Verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// fileCmd redacts whole files
var fileCmd = &cobra.Command{
	Use:   "file [path]...",
	Short: "Redact one or more source files",
	Long: `Redacts each file through the full pipeline. With a single path the
redacted text is written to stdout; with --write files are rewritten in
place. --window start:end restricts edits to an inclusive 1-based line range
(the whole file is still parsed for context).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFile,
}

// outputCmd reconciles wrapped tool output read from stdin
var outputCmd = &cobra.Command{
	Use:   "output [path]",
	Short: "Redact a numbered file excerpt inside wrapped tool output",
	Long: `Reads wrapped tool output from stdin, finds the bounded excerpt for the
given path, re-derives its numbered lines from the file's current content,
and prints the reconstructed output. When the excerpt cannot be reconciled
(missing tags, no numbered lines, unreadable file, integrity mismatch) the
input is printed unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runOutput,
}

func runFile(cmd *cobra.Command, args []string) error {
	if !cfg.Enabled {
		return nil
	}
	win, err := parseWindow(windowSpec)
	if err != nil {
		return err
	}
	if len(args) > 1 && !writeBack {
		return fmt.Errorf("multiple files require --write")
	}

	policy := session.NewPolicy(cfg.Allow, nil)
	engine := redact.NewEngine(logging.Named("redact"))
	defer engine.Close()

	var g errgroup.Group
	for _, path := range args {
		path := path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			text := string(data)
			if policy.ShouldRedact(path) {
				text = engine.RedactFile(path, text, win)
			}
			if !writeBack {
				_, err = io.WriteString(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(path, []byte(text), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func runOutput(cmd *cobra.Command, args []string) error {
	path := args[0]
	wrapped, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	text := string(wrapped)

	policy := session.NewPolicy(cfg.Allow, nil)
	if !cfg.Enabled || !policy.ShouldRedact(path) {
		_, err = io.WriteString(cmd.OutOrStdout(), text)
		return err
	}

	engine := redact.NewEngine(logging.Named("redact"))
	defer engine.Close()
	rec := reconcile.New(engine, nil, reconcile.Options{
		StartTag: cfg.Tags.Start,
		EndTag:   cfg.Tags.End,
	}, logging.Named("reconcile"))

	if redacted, ok := rec.RedactOutput(path, text); ok {
		text = redacted
	}
	_, err = io.WriteString(cmd.OutOrStdout(), text)
	return err
}

// parseWindow parses "start:end" into an inclusive line window.
func parseWindow(spec string) (*redact.LineWindow, error) {
	if spec == "" {
		return nil, nil
	}
	startStr, endStr, found := strings.Cut(spec, ":")
	if !found {
		return nil, fmt.Errorf("invalid window %q, want start:end", spec)
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid window start %q", startStr)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid window end %q", endStr)
	}
	if start < 1 || end < start {
		return nil, fmt.Errorf("invalid window %d:%d", start, end)
	}
	return &redact.LineWindow{Start: start, End: end}, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringSliceVar(&allowGlobs, "allow", nil, "globs for paths never redacted")

	fileCmd.Flags().StringVar(&windowSpec, "window", "", "inclusive line window start:end")
	fileCmd.Flags().BoolVarP(&writeBack, "write", "w", false, "rewrite files in place")

	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(outputCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
