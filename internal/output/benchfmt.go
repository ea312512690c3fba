package output

import (
	"fmt"
	"io"
	"runtime"

	"golang.org/x/perf/benchfmt"
)

// BenchFormatter writes results in the Go benchmark format so sweeps can be
// compared with benchstat. Failed pairs have no measurement and are omitted.
type BenchFormatter struct{}

func (b *BenchFormatter) Format(w io.Writer, data Data) error {
	bw := benchfmt.NewWriter(w)

	goos, arch := runtime.GOOS, runtime.GOARCH
	var cpuModel string
	if data.SystemInfo != nil {
		goos, arch, cpuModel = data.SystemInfo.OS, data.SystemInfo.Architecture, data.SystemInfo.CPUModel
	}
	config := []benchfmt.Config{
		{Key: "goos", Value: []byte(goos), File: true},
		{Key: "goarch", Value: []byte(arch), File: true},
		{Key: "pkg", Value: []byte("github.com/user/hashbench"), File: true},
	}
	if cpuModel != "" {
		config = append(config, benchfmt.Config{Key: "cpu", Value: []byte(cpuModel), File: true})
	}

	for _, r := range data.Results {
		if r.Failed {
			continue
		}
		res := &benchfmt.Result{
			Config: config,
			Name:   benchName(r.HashID, r.SourceID),
			Iters:  r.Samples * r.Rounds,
			Values: []benchfmt.Value{
				{Value: r.NsPerHash, Unit: "ns/op"},
				{Value: float64(r.Collisions), Unit: "collisions"},
				{Value: r.HashesPerSecond, Unit: "hashes/s"},
			},
		}
		if err := bw.Write(res); err != nil {
			return err
		}
	}
	return nil
}

func benchName(hashID, sourceID string) benchfmt.Name {
	return benchfmt.Name(fmt.Sprintf("Hash/hash=%s/source=%s", hashID, sourceID))
}
