// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/oneconcern/memvcs/pkg/codec"
	"github.com/oneconcern/memvcs/pkg/content"
	"github.com/oneconcern/memvcs/pkg/dlogger"
	"github.com/oneconcern/memvcs/pkg/engine"
	"github.com/oneconcern/memvcs/pkg/event"
)

var runOptions struct {
	Events bool
}

// runCmd replays a script against a new repository
var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Run a script against a new repository",
	Long: `Run a script of steps against a new in-memory repository, then print the history of the current branch.

Steps are: put, remove, reset (the working area), commit, merge, branch (move or create a branch) and checkout.
References to commits are either branch names or unique prefixes of commit ids.
`,
	Example: `% cat hello.yaml
flavor: string
steps:
  - op: put
    path: /
    content: Hello World
  - op: commit
    message: First Commit
% memvcs run hello.yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := readScript(appFs, args[0])
		if err != nil {
			wrapFatalln("read script", err)
			return
		}

		logger, err := cfg.Logger(dlogger.Console(), dlogger.OutputPaths("stderr"))
		if err != nil {
			wrapFatalln("create logger", err)
			return
		}
		defer func() { _ = logger.Sync() }()

		reg := prometheus.NewRegistry()
		opts := append(cfg.EngineOptions(logger, reg), engine.Name(filepath.Base(args[0])))

		var res runResult
		switch s.Flavor {
		case "", content.StringFlavor:
			repo := engine.NewStrings(opts...)
			watch(repo, logger)
			res, err = runScript(repo, func(v string) string { return v }, s, cfg.DefaultBranch)
		case content.BytesFlavor:
			repo := engine.NewBytes(opts...)
			watch(repo, logger)
			res, err = runScript(repo, func(v string) []byte { return []byte(v) }, s, cfg.DefaultBranch)
		default:
			err = fmt.Errorf("unsupported flavor %q", s.Flavor)
		}
		if err != nil {
			wrapFatalln("run script", err)
			return
		}

		if cfg.Metrics {
			res.Metrics, err = gatherMetrics(reg)
			if err != nil {
				wrapFatalln("gather metrics", err)
				return
			}
		}
		if err = render(cmd, res); err != nil {
			wrapFatalln("print result", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runOptions.Events, "events", false, "Prints commit events to stderr, as they occur")
	addFormatFlag(runCmd, "list", map[string]Formatter{
		"list": FormatterFunc(runListFormatter),
	})
}

func readScript(fs afero.Fs, pth string) (script, error) {
	var s script
	b, err := afero.ReadFile(fs, pth)
	if err != nil {
		return s, err
	}
	if err := yaml.UnmarshalStrict(b, &s); err != nil {
		return s, fmt.Errorf("invalid script %s: %w", pth, err)
	}
	return s, nil
}

var events = func() *codec.Registry {
	r := codec.NewRegistry()
	codec.MustRegister[event.Envelope[engine.CommitEvent]](r, engine.CommitCreated)
	return r
}()

// watch prints commit events to stderr, as canonical JSON documents
func watch[C any](repo *engine.Repository[C], logger *zap.Logger) {
	if !runOptions.Events {
		return
	}
	repo.Subscribe(func(e event.Envelope[engine.CommitEvent]) {
		doc, err := events.Encode(e)
		if err != nil {
			logger.Warn("could not encode event", zap.String("id", e.ID), zap.Error(err))
			return
		}
		fmt.Fprintln(errOut, string(doc))
	})
}

func gatherMetrics(reg prometheus.Gatherer) (map[string]float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, err
	}
	metrics := make(map[string]float64, len(families))
	for _, family := range families {
		for _, m := range family.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				metrics[family.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				metrics[family.GetName()] += m.GetGauge().GetValue()
			}
		}
	}
	return metrics, nil
}

func runListFormatter(w io.Writer, data interface{}) error {
	res := data.(runResult)
	for _, c := range res.Log {
		fmt.Fprint(w, "     ID:  ")
		fmt.Fprintln(w, color.MagentaString(c.ID))
		if c.Contributor != nil {
			fmt.Fprint(w, " Author: ")
			fmt.Fprintln(w, color.YellowString(c.Contributor.String()))
		}
		if len(c.Parents) > 1 {
			fmt.Fprint(w, "  Merge: ")
			fmt.Fprintln(w, color.HiBlackString("%v", c.Parents[1:]))
		}
		fmt.Fprint(w, "   Date: ")
		fmt.Fprintln(w, color.YellowString(c.Timestamp.Format(time.RFC3339Nano)))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "   ", c.Message)
		fmt.Fprintln(w)
	}

	table := uitable.New()
	table.MaxColWidth = 80
	table.AddRow("", "BRANCH", "COMMIT")
	for _, b := range res.Branches {
		marker := " "
		if b.Name == res.Branch {
			marker = color.YellowString("*")
		}
		table.AddRow(marker, b.Name, b.CommitID)
	}
	fmt.Fprintln(w, table)
	fmt.Fprintf(w, "\n%d entries, %s\n", res.Entries, units.HumanSize(float64(res.Size)))

	for _, name := range slices.Sorted(maps.Keys(res.Metrics)) {
		fmt.Fprintf(w, "%s %v\n", color.HiBlackString(name), res.Metrics[name])
	}
	return nil
}
