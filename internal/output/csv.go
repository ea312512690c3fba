package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

type CSVFormatter struct{}

func (c *CSVFormatter) Format(w io.Writer, data Data) error {
	writer := csv.NewWriter(w)

	header := []string{
		"Timestamp",
		"Hash",
		"HashID",
		"Bits",
		"Source",
		"SourceID",
		"Samples",
		"Rounds",
		"Collisions",
		"Repeats",
		"Distinct",
		"UserTime(s)",
		"SystemTime(s)",
		"TotalTime(ms)",
		"AverageTime(ms)",
		"MinTime(ms)",
		"MaxTime(ms)",
		"StdDev(ms)",
		"NsPerHash",
		"HashesPerSecond",
		"Failed",
		"FailureKind",
		"Error",
		"OS",
		"Architecture",
		"CPUModel",
	}

	if err := writer.Write(header); err != nil {
		return err
	}

	var goos, arch, model string
	if data.SystemInfo != nil {
		goos = data.SystemInfo.OS
		arch = data.SystemInfo.Architecture
		model = data.SystemInfo.CPUModel
	}

	for _, r := range data.Results {
		row := []string{
			r.CompletedAt.Format(time.RFC3339),
			r.Hash,
			r.HashID,
			strconv.Itoa(r.Bits),
			r.Source,
			r.SourceID,
			strconv.Itoa(r.Samples),
			strconv.Itoa(r.Rounds),
			strconv.Itoa(r.Collisions),
			strconv.Itoa(r.Repeats),
			strconv.Itoa(r.Distinct),
			fmt.Sprintf("%.6f", r.UserTime.Seconds()),
			fmt.Sprintf("%.6f", r.SystemTime.Seconds()),
			millis(r.TotalTime),
			millis(r.AverageTime),
			millis(r.MinTime),
			millis(r.MaxTime),
			millis(r.StdDev),
			fmt.Sprintf("%.2f", r.NsPerHash),
			fmt.Sprintf("%.2f", r.HashesPerSecond),
			strconv.FormatBool(r.Failed),
			string(r.FailureKind),
			r.Error,
			goos,
			arch,
			model,
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d.Nanoseconds())/1e6)
}
