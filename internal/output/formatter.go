package output

import (
	"fmt"
	"io"
	"time"

	"github.com/user/hashbench/internal/benchmark"
	"github.com/user/hashbench/pkg/sysinfo"
)

type Data struct {
	SystemInfo *sysinfo.SystemInfo
	Results    []benchmark.Result
	Config     benchmark.Config
}

type Formatter interface {
	Format(w io.Writer, data Data) error
}

// Formats lists the accepted format names.
var Formats = []string{"text", "table", "json", "csv", "benchfmt"}

func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "text", "":
		return &TextFormatter{}, nil
	case "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "benchfmt":
		return &BenchFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

type summary struct {
	Pairs      int           `json:"pairs"`
	Failed     int           `json:"failed"`
	Hashed     int           `json:"hashed"`
	Collisions int           `json:"collisions"`
	TotalTime  time.Duration `json:"total_time"`
	Throughput float64       `json:"throughput_hashes_per_sec"`
}

func summarize(results []benchmark.Result) summary {
	s := summary{Pairs: len(results)}
	for _, r := range results {
		if r.Failed {
			s.Failed++
			continue
		}
		s.Hashed += r.Samples * r.Rounds
		s.Collisions += r.Collisions
		s.TotalTime += r.TotalTime
	}
	if s.TotalTime > 0 {
		s.Throughput = float64(s.Hashed) / s.TotalTime.Seconds()
	}
	return s
}
