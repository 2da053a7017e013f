package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	estate "github.com/iov-one/estate"
	estated "github.com/iov-one/estate/cmd/estated/app"
	"github.com/iov-one/estate/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// action is one line of an exec file.
type action struct {
	Signer string            `json:"signer"`
	Time   time.Time         `json:"time"`
	Path   string            `json:"path"`
	Msg    estate.RawMessage `json:"msg"`
}

// outcome reports the result of one action.
type outcome struct {
	Line   int            `json:"line"`
	Path   string         `json:"path"`
	Data   string         `json:"data,omitempty"`
	Events []estate.Event `json:"events,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (c *cli) execCmd() *cobra.Command {
	var showMetrics bool
	cmd := &cobra.Command{
		Use:   "exec <file>",
		Short: "Apply signed actions from a JSON lines file",
		Long: `Apply signed actions from a JSON lines file, "-" reads standard input.

Each line names the signing key, the message path and the message, for example
  {"signer": "alice", "path": "income/claim", "msg": {"holder": "<address>"}}
An optional "time" (RFC 3339) sets the block time, it defaults to now.
A failing action leaves no trace and does not stop the following ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := io.Reader(os.Stdin)
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(errors.ErrInput, err.Error())
				}
				defer f.Close()
				in = f
			}
			return c.runExec(in, showMetrics)
		},
	}
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print the transaction metrics when done")
	return cmd
}

func (c *cli) runExec(in io.Reader, showMetrics bool) error {
	var now time.Time
	registry := prometheus.NewRegistry()
	engine, closeStore, err := c.openEngine(registry, func() time.Time { return now })
	if err != nil {
		return err
	}
	defer closeStore()

	var failed int
	scanner := bufio.NewScanner(in)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		res := c.apply(engine, line, text, &now)
		if res.Error != "" {
			failed++
		}
		if err := c.printJSON(res); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if showMetrics {
		if err := c.printMetrics(registry); err != nil {
			return err
		}
	}
	if failed > 0 {
		c.logger.Info("Some actions failed", "failed", failed)
	}
	return nil
}

func (c *cli) apply(engine *estated.Engine, line int, text string, now *time.Time) outcome {
	res := outcome{Line: line}
	var act action
	if err := json.Unmarshal([]byte(text), &act); err != nil {
		res.Error = errors.Wrap(errors.ErrInput, err.Error()).Error()
		return res
	}
	res.Path = act.Path

	*now = act.Time
	if now.IsZero() {
		*now = time.Now()
	}

	key, err := c.loadKey(act.Signer)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	msg, err := estated.DecodeMsg(act.Path, act.Msg)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	dres, err := engine.Execute(key, msg)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Data = fmt.Sprintf("%X", dres.Data)
	res.Events = dres.Events
	return res
}

// printMetrics writes every gathered sample as "name{labels} value".
func (c *cli) printMetrics(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			var set string
			if len(labels) > 0 {
				set = "{" + strings.Join(labels, ",") + "}"
			}
			name := mf.GetName()
			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s%s %g", name, set, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines,
					fmt.Sprintf("%s_count%s %d", name, set, h.GetSampleCount()),
					fmt.Sprintf("%s_sum%s %g", name, set, h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		if _, err := fmt.Fprintln(c.out, l); err != nil {
			return err
		}
	}
	return nil
}
