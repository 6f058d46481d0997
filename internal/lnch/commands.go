//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/e-gun/HipparchiaTopicRuns/internal/cmpr"
	"github.com/e-gun/HipparchiaTopicRuns/internal/db"
	"github.com/e-gun/HipparchiaTopicRuns/internal/panel"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vlt"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/e-gun/HipparchiaTopicRuns/web"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// ErrRunsDiffer - 'compare' found the two runs could not be aligned; the exit status should say so
var ErrRunsDiffer = errors.New("runs could not be compared")

const LONGHELP = `%s loads topic-model runs from csv files, sqlite or postgres and shows two of them side by side.

Settings are read from '%s' (looked for in '%s' and '%s'), e.g.
%s
then from %s_* environment variables, then from the flags below.`

// NewRootCmd - htr serve | report | compare | version
func NewRootCmd() *cobra.Command {
	var (
		cfgfile     string
		applyconfig func() error
	)

	root := &cobra.Command{
		Use:           "htr",
		Short:         vv.MYNAME + ": compare two topic-model runs side by side",
		Long:          fmt.Sprintf(LONGHELP, vv.MYNAME, vv.CONFIGBASIC, vv.CONFIGLOCATION, vv.CONFIGALTAPTH, vv.MINCONFIG, vv.ENVPREFIX),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyconfig(); err != nil {
				return err
			}
			if err := ValidateConfig(Config); err != nil {
				return err
			}
			UpdateMessageMakersWithConfig()
			if !Config.QuietStart && cmd.Name() != "version" {
				PrintVersion(Config)
			}
			return nil
		},
	}

	RegisterFlags(root.PersistentFlags(), Config)
	root.PersistentFlags().StringVar(&cfgfile, "config", "", fmt.Sprintf("json config file (default: %s.json in %s or %s)", vv.CONFIGNAME, vv.CONFIGLOCATION, vv.CONFIGALTAPTH))

	var matched bool

	serve := &cobra.Command{
		Use:   "serve",
		Short: "load the runs and start the viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runserve(cmd.Context())
		},
	}

	report := &cobra.Command{
		Use:   "report",
		Short: "write a static html/svg/json report for the left and right runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runreport(cmd.Context(), matched)
		},
	}
	report.Flags().BoolVar(&matched, "matched", false, "pair metrics by name instead of by position")

	compare := &cobra.Command{
		Use:   "compare",
		Short: "print the mean metric difference between the left and right runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runcompare(cmd.Context(), matched)
		},
	}
	compare.Flags().BoolVar(&matched, "matched", false, "pair metrics by name instead of by position")

	version := &cobra.Command{
		Use:   "version",
		Short: "print version and build information",
		Run: func(cmd *cobra.Command, args []string) {
			PrintVersion(Config)
			PrintBuildInfo()
			if !Config.QuietStart {
				PrintLicense()
			}
		},
	}

	root.AddCommand(serve, report, compare, version)
	applyconfig = bindViper(&cfgfile, root, report, compare)
	return root
}

// Execute - main.go calls this and nothing else
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// LimitsFromConfig - the truncation limits as the panels want them
func LimitsFromConfig(c *str.CurrentConfiguration) panel.Limits {
	return panel.Limits{
		TopicLimit:  c.TopicLimit,
		TokenLimit:  c.TokenLimit,
		TextLimit:   c.TextLimit,
		PaletteSize: c.PaletteSize,
	}.Normalized()
}

// loaddata - fetch and shape the four tables, then say what arrived
func loaddata(ctx context.Context) (*str.Dataset, error) {
	start := time.Now()
	ds, err := db.LoadAll(ctx, *Config)
	if err != nil {
		return nil, err
	}
	Msg.Timer("L", "dataset built", start, start)
	Msg.Print(Summarize(ds))
	if ds.IsEmpty() {
		Msg.WARN("no runs were found: panels will be empty")
	}
	return ds, nil
}

// Summarize - the colour-tagged dataset summary printed after loading
func Summarize(ds *str.Dataset) string {
	var docs, terms, counts, metrics int
	for _, r := range ds.Runs {
		if n := ds.TopicsByRun[r]; n != nil {
			for _, k := range n.Keys {
				docs += len(n.Groups[k])
			}
		}
		if n := ds.TermsByRun[r]; n != nil {
			for _, k := range n.Keys {
				terms += len(n.Groups[k])
			}
		}
		counts += len(ds.CountsByRun[r])
		metrics += len(ds.MetricsByRun[r])
	}

	subs := map[string]interface{}{
		"runs":    len(ds.Runs),
		"source":  ds.Source,
		"docs":    docs,
		"terms":   terms,
		"counts":  counts,
		"metrics": metrics,
		"dropped": ds.Dropped,
	}

	tmpl := template.Must(template.New("summary").Parse(vv.SUMMARYTEMPLATE))
	var b strings.Builder
	if err := tmpl.Execute(&b, subs); err != nil {
		Msg.EC(err)
		return ""
	}
	return Msg.ColStyle(b.String())
}

func runserve(ctx context.Context) error {
	if Config.ProfileCPU {
		defer profile.Start().Stop()
	} else if Config.ProfileMEM {
		defer profile.Start(profile.MemProfile).Stop()
	}

	ds, err := loaddata(ctx)
	if err != nil {
		return err
	}

	v := web.NewViewer(ds, *Config, vlt.AllSessions)
	return v.StartEchoServer()
}

func pairing(matched bool) cmpr.Pairing {
	if matched {
		return cmpr.ByMode(cmpr.MATCHED)
	}
	return cmpr.ByMode(cmpr.POSITIONAL)
}

func runcompare(ctx context.Context, matched bool) error {
	ds, err := loaddata(ctx)
	if err != nil {
		return err
	}

	res, err := cmpr.Runs(ds, Config.LeftRun, Config.RightRun, pairing(matched))
	if err != nil {
		Msg.CRIT(err.Error())
		return fmt.Errorf("%w: %w", ErrRunsDiffer, err)
	}
	Msg.Print(ComparisonTable(res))
	return nil
}

// ComparisonTable - one row per pair plus the mean
func ComparisonTable(res cmpr.Result) string {
	const (
		MEAN = "mean |Δ|"
		FMT  = "%.4f"
	)
	var b strings.Builder
	tw := tablewriter.NewWriter(&b)
	tw.SetHeader([]string{"metric", res.LeftRun, res.RightRun, "|Δ|"})
	tw.SetAutoFormatHeaders(false)
	for _, p := range res.Pairs {
		tw.Append([]string{p.Metric, fmt.Sprintf(FMT, p.Left), fmt.Sprintf(FMT, p.Right), fmt.Sprintf(FMT, p.Diff)})
	}
	tw.SetFooter([]string{res.Mode, "", MEAN, fmt.Sprintf(FMT, res.Mean)})
	tw.Render()
	return b.String()
}
