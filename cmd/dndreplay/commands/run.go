package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/hupe1980/sortable/engine"
	"github.com/hupe1980/sortable/metrics"
	"github.com/hupe1980/sortable/scenario"
)

func runCmd() *cobra.Command {
	var (
		transcript  bool
		withMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Replay scenario files and check their expectations",
		Long: `Replays each scenario with a manual clock and prints the observed
container callbacks as JSON lines. Scenarios whose expectations do not match
are reported with a diff and make the command fail.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			var observers []engine.Callback
			if withMetrics {
				observers = append(observers, metrics.NewCollector("sortable", reg).Callbacks()...)
			}
			observers = append(observers, engine.LoggingCallbacks(logger)...)

			out := cmd.OutOrStdout()
			var failed int
			for _, path := range args {
				ok, err := replayFile(out, path, transcript, func(o *scenario.ReplayOptions) {
					o.Logger = logger
					o.Callbacks = observers
				})
				if err != nil {
					return err
				}
				if !ok {
					failed++
				}
			}

			if withMetrics {
				if err := dumpMetrics(out, reg); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d scenario(s) failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&transcript, "transcript", false, "print the full transcript as one JSON document")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "collect engine metrics and print them after the replay")

	return cmd
}

func replayFile(out io.Writer, path string, transcript bool, opt func(o *scenario.ReplayOptions)) (bool, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return false, err
	}

	t, err := sc.Replay(opt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}

	enc := json.NewEncoder(out)
	if transcript {
		enc.SetIndent("", "  ")
		if err := enc.Encode(t); err != nil {
			return false, err
		}
	} else {
		for _, ev := range t.Events {
			if err := enc.Encode(ev); err != nil {
				return false, err
			}
		}
	}

	if diff := sc.Check(t); diff != "" {
		fmt.Fprintf(out, "FAIL %s\n%s", path, diff)
		return false, nil
	}

	name := sc.Name
	if name == "" {
		name = path
	}
	fmt.Fprintf(out, "PASS %s\n", name)
	return true, nil
}

func dumpMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(out, "%s%s %s\n", mf.GetName(), labels(m), value(mf.GetType(), m))
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	s := "{"
	for i, lp := range m.GetLabel() {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
	}
	return s + "}"
}

func value(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprint(m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprint(m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	default:
		return "?"
	}
}
