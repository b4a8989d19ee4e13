// Command jslint is the thin CLI collaborator spec.md §6 keeps outside
// the core engine: it reads one or more files, runs pkg/analysis over
// each, and renders the results with pkg/report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"jslint/pkg/analysis"
	"jslint/pkg/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var jsonFormat bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "jslint FILE...",
		Short: "find undeclared-variable, redeclaration, and use-before-declaration bugs in JavaScript files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, jsonFormat, verbose)
		},
	}
	cmd.Flags().BoolVar(&jsonFormat, "format-json", false, "emit a vim quickfix-style JSON document instead of text")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log internal pipeline trace events to stderr")
	return cmd
}

func run(paths []string, jsonFormat, verbose bool) error {
	log := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		log = l
	}
	defer log.Sync()

	total := 0
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		res := analysis.Run(path, src, analysis.Options{Logger: log})
		total += res.Diagnostics.Count()

		if jsonFormat {
			rep := report.NewJSONReporter(res.Buffer)
			for _, d := range res.Diagnostics.Diagnostics {
				rep.Report(d)
			}
			if err := rep.Flush(os.Stdout); err != nil {
				return err
			}
			continue
		}

		rep := report.NewTextReporter(os.Stdout, res.Buffer)
		for _, d := range res.Diagnostics.Diagnostics {
			rep.Report(d)
		}
	}

	if !jsonFormat {
		printSummary(total, len(paths))
	}
	if total > 0 {
		return fmt.Errorf("%d problem(s) found", total)
	}
	return nil
}

// printSummary formats large counts with locale-aware grouping
// ("Found 1,234 problems in 3 files") instead of hand-rolled comma
// insertion.
func printSummary(problems, files int) {
	p := message.NewPrinter(language.English)
	noun := "problems"
	if problems == 1 {
		noun = "problem"
	}
	fileNoun := "files"
	if files == 1 {
		fileNoun = "file"
	}
	p.Printf("Found %v %s in %v %s\n", number.Decimal(problems), noun, number.Decimal(files), fileNoun)
}
