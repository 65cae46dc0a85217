package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/harrison/progress/internal/config"
	"github.com/harrison/progress/internal/display"
	"github.com/harrison/progress/pkg/progress"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [config-file]...",
		Short: "Validate one or more config files",
		Long: `Load and validate progress config files, checking for:
  - YAML syntax and unknown keys
  - Supported style and log level
  - Template placeholders naming known fields
  - bytes/comma verbs used on integer fields only

A preview line rendered halfway through the configured max is printed for
every valid file. Without arguments the file named by $PROGRESS_CONFIG or
the nearest progress.yaml is validated.

Exit code: 0 if valid, 1 if errors found`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				path, err := config.ResolvePath()
				if err != nil {
					return err
				}
				args = []string{path}
			}
			return validateConfigFiles(args, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	return cmd
}

// validateConfigFiles validates each path and fails if any of them is invalid.
func validateConfigFiles(paths []string, output io.Writer) error {
	if len(paths) == 1 {
		return validateConfig(paths[0], output)
	}

	steps := display.NewStepIndicator(output, len(paths))
	steps.Start("Validating config files")

	invalid := 0
	for _, path := range paths {
		steps.Step(path)
		if err := validateConfig(path, output); err != nil {
			invalid++
		}
		fmt.Fprintln(output)
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d config file(s) invalid", invalid, len(paths))
	}

	steps.Complete(fmt.Sprintf("Validated %d config files", len(paths)))
	return nil
}

// validateConfig performs validation of a single config file.
// Unlike LoadConfig, a missing file is an error here.
func validateConfig(path string, output io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(output, "✗ Failed to access config file %s\n", path)
		fmt.Fprintf(output, "  Error: %v\n", err)
		return fmt.Errorf("failed to access path: %w", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(output, "✗ Failed to load config from %s\n", path)
		fmt.Fprintf(output, "  Error: %v\n", err)
		return err
	}

	fmt.Fprintf(output, "✓ Validating config from %s\n", path)
	fmt.Fprintf(output, "✓ Style %s, max %d, log level %s\n", cfg.Style, cfg.Max, cfg.LogLevel)

	var errors []string
	for key, tmpl := range templatesOf(cfg) {
		if unknown := unknownFields(tmpl); len(unknown) > 0 {
			errors = append(errors, fmt.Sprintf("%s references unknown field(s): %s", key, strings.Join(unknown, ", ")))
		}
		if misused := misusedVerbs(tmpl); len(misused) > 0 {
			errors = append(errors, fmt.Sprintf("%s applies bytes/comma to non-integer field(s): %s", key, strings.Join(misused, ", ")))
		}
	}

	if len(errors) == 0 {
		fmt.Fprintf(output, "✓ All template fields known\n")
		fmt.Fprintf(output, "✓ Preview: %s%s\n", cfg.Message, cfg.Renderer(cfg.Width)(previewSnapshot(cfg)))
		fmt.Fprintf(output, "\n✓ Config is valid!\n")
		return nil
	}

	fmt.Fprintf(output, "\n✗ Validation failed for config from %s\n", path)
	for _, errMsg := range errors {
		fmt.Fprintf(output, "  ✗ %s\n", errMsg)
	}
	fmt.Fprintf(output, "\nFound %d validation error(s)!\n", len(errors))

	return fmt.Errorf("validation failed with %d error(s)", len(errors))
}

// templatesOf returns the templates the configured style expands, keyed by
// config key.
func templatesOf(cfg *config.Config) map[string]string {
	switch cfg.Style {
	case config.StyleTemplate:
		return map[string]string{"template": cfg.Template}
	case config.StyleBar, config.StyleSpinner:
		if cfg.Suffix != "" {
			return map[string]string{"suffix": cfg.Suffix}
		}
	}
	return nil
}

// unknownFields lists the placeholders of tmpl that a bounded indicator
// cannot resolve, without repeats.
func unknownFields(tmpl string) []string {
	known := progress.Snapshot{Bounded: true}
	var unknown []string
	for _, name := range progress.Placeholders(tmpl) {
		if known.Lookup(name) == nil && !slices.Contains(unknown, name) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// misusedVerbs lists the "name:verb" placeholders of tmpl that apply an
// integer-only verb to a known field that is not an integer.
func misusedVerbs(tmpl string) []string {
	known := progress.Snapshot{Bounded: true}
	var misused []string
	for _, ref := range progress.ParsePlaceholders(tmpl) {
		v := known.Lookup(ref.Name)
		if v == nil || !progress.IntegerVerb(ref.Verb) {
			continue
		}
		if _, ok := v.(int); ok {
			continue
		}
		if entry := ref.Name + ":" + ref.Verb; !slices.Contains(misused, entry) {
			misused = append(misused, entry)
		}
	}
	return misused
}

// previewSnapshot returns the metrics of a bounded indicator halfway through
// cfg.Max after one second per unit.
func previewSnapshot(cfg *config.Config) progress.Snapshot {
	now := time.Unix(0, 0)
	pc := progress.Config{
		Max:   cfg.Max,
		Clock: func() time.Time { return now },
	}

	// A nil Output never renders, so construction cannot fail
	p, _ := progress.NewProgress(cfg.Message, pc)
	index := max(cfg.Max/2, 0)
	now = now.Add(time.Duration(index) * time.Second)
	_ = p.Goto(index)
	return p.Snapshot()
}
