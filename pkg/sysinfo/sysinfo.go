package sysinfo

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// hashFlags are the CPU feature flags that change which code path the
// accelerated hash implementations take.
var hashFlags = map[string]bool{
	"sse4_2":    true,
	"ssse3":     true,
	"avx":       true,
	"avx2":      true,
	"avx512f":   true,
	"avx512vl":  true,
	"sha_ni":    true,
	"aes":       true,
	"pclmulqdq": true,
	"asimd":     true,
	"sha1":      true,
	"sha2":      true,
	"sha3":      true,
	"crc32":     true,
	"pmull":     true,
}

type SystemInfo struct {
	OS           string   `json:"os"`
	Architecture string   `json:"architecture"`
	CPUModel     string   `json:"cpu_model"`
	CPUCores     int      `json:"cpu_cores"`
	CPUThreads   int      `json:"cpu_threads"`
	CPUFeatures  []string `json:"cpu_features,omitempty"`
	TotalMemory  uint64   `json:"total_memory"`
	GoVersion    string   `json:"go_version"`
	Hostname     string   `json:"hostname"`
	Platform     string   `json:"platform"`
	LoadAverage  float64  `json:"load_average"`
}

// Collect snapshots the host. Lookups that fail leave their fields zero.
func Collect() (*SystemInfo, error) {
	info := &SystemInfo{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		GoVersion:    runtime.Version(),
		CPUCores:     runtime.NumCPU(),
	}

	cpuInfo, err := cpu.Info()
	if err == nil && len(cpuInfo) > 0 {
		info.CPUModel = strings.TrimSpace(cpuInfo[0].ModelName)
		info.CPUFeatures = FilterFeatures(cpuInfo[0].Flags)
	}

	threads, err := cpu.Counts(true)
	if err == nil {
		info.CPUThreads = threads
	}

	memInfo, err := mem.VirtualMemory()
	if err == nil {
		info.TotalMemory = memInfo.Total
	}

	hostInfo, err := host.Info()
	if err == nil {
		info.Hostname = hostInfo.Hostname
		info.Platform = hostInfo.Platform
	}

	loadAvg, err := load.Avg()
	if err == nil {
		info.LoadAverage = loadAvg.Load1
	}

	return info, nil
}

// FilterFeatures keeps the flags relevant to hashing throughput, sorted and
// without duplicates.
func FilterFeatures(flags []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range flags {
		f = strings.ToLower(strings.TrimSpace(f))
		if hashFlags[f] && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

// Banner renders the snapshot as a short multi-line header.
func (s *SystemInfo) Banner() string {
	var b strings.Builder
	fmt.Fprintf(&b, "System: %s/%s", s.OS, s.Architecture)
	if s.Platform != "" {
		fmt.Fprintf(&b, " (%s)", s.Platform)
	}
	b.WriteString("\n")
	model := s.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	fmt.Fprintf(&b, "CPU: %s, %d cores", model, s.CPUCores)
	if s.CPUThreads > 0 {
		fmt.Fprintf(&b, ", %d threads", s.CPUThreads)
	}
	b.WriteString("\n")
	if len(s.CPUFeatures) > 0 {
		fmt.Fprintf(&b, "Features: %s\n", strings.Join(s.CPUFeatures, " "))
	}
	if s.TotalMemory > 0 {
		fmt.Fprintf(&b, "Memory: %s\n", humanize.IBytes(s.TotalMemory))
	}
	fmt.Fprintf(&b, "Go: %s\n", s.GoVersion)
	return b.String()
}
