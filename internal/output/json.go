package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/user/hashbench/internal/benchmark"
	"github.com/user/hashbench/pkg/sysinfo"
)

type JSONFormatter struct{}

type JSONOutput struct {
	Timestamp  time.Time           `json:"timestamp"`
	SystemInfo *sysinfo.SystemInfo `json:"system_info"`
	Config     benchmark.Config    `json:"config"`
	Results    []benchmark.Result  `json:"results"`
	Summary    struct {
		summary
		TotalTimeString string `json:"total_time_string"`
	} `json:"summary"`
}

func (j *JSONFormatter) Format(w io.Writer, data Data) error {
	output := JSONOutput{
		Timestamp:  time.Now(),
		SystemInfo: data.SystemInfo,
		Config:     data.Config,
		Results:    data.Results,
	}
	if output.Results == nil {
		output.Results = []benchmark.Result{}
	}

	output.Summary.summary = summarize(data.Results)
	output.Summary.TotalTimeString = output.Summary.TotalTime.String()

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
