package output

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

type TableFormatter struct{}

func (t *TableFormatter) Format(w io.Writer, data Data) error {
	fmt.Fprintln(w, "\nHash Benchmark Results")
	fmt.Fprintln(w, "======================")
	fmt.Fprintln(w)

	if data.Config.Verbose && data.SystemInfo != nil {
		fmt.Fprintln(w, data.SystemInfo.Banner())
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"Hash",
		"Bits",
		"Source",
		"Samples",
		"Rounds",
		"Collisions",
		"Distinct",
		"Avg Time",
		"Min Time",
		"Max Time",
		"ns/hash",
		"Hashes/Sec",
		"Status",
	})

	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, r := range data.Results {
		if r.Failed {
			table.Append([]string{
				r.Hash, fmt.Sprintf("%d", r.Bits), r.Source,
				humanize.Comma(int64(r.Samples)), fmt.Sprintf("%d", r.Rounds),
				"-", "-", "-", "-", "-", "-", "-",
				fmt.Sprintf("failed: %s", r.FailureKind),
			})
			continue
		}
		table.Append([]string{
			r.Hash,
			fmt.Sprintf("%d", r.Bits),
			r.Source,
			humanize.Comma(int64(r.Samples)),
			fmt.Sprintf("%d", r.Rounds),
			humanize.Comma(int64(r.Collisions)),
			humanize.Comma(int64(r.Distinct)),
			formatDuration(r.AverageTime),
			formatDuration(r.MinTime),
			formatDuration(r.MaxTime),
			fmt.Sprintf("%.1f", r.NsPerHash),
			humanize.CommafWithDigits(r.HashesPerSecond, 0),
			"ok",
		})
	}

	table.Render()

	s := summarize(data.Results)
	fmt.Fprintln(w, "\nSummary")
	fmt.Fprintln(w, "-------")
	fmt.Fprintf(w, "Pairs measured: %d (%d failed)\n", s.Pairs, s.Failed)
	fmt.Fprintf(w, "Total hashes: %s\n", humanize.Comma(int64(s.Hashed)))
	fmt.Fprintf(w, "Total collisions: %s\n", humanize.Comma(int64(s.Collisions)))
	fmt.Fprintf(w, "Total time: %s\n", formatDuration(s.TotalTime))
	if s.TotalTime > 0 {
		fmt.Fprintf(w, "Overall throughput: %s hashes/sec\n", humanize.CommafWithDigits(s.Throughput, 0))
	}

	return nil
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1000)
	} else if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return fmt.Sprintf("%.2fm", d.Minutes())
}
