package benchmark

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// Measurement is the cost of one timed section. User and System are process
// wide, so they include concurrent workers when the sweep runs in parallel.
type Measurement struct {
	Wall   time.Duration
	User   time.Duration
	System time.Duration
}

// Stopwatch measures wall time on the monotonic clock and, when the platform
// exposes it, the CPU time consumed by the current process.
type Stopwatch struct {
	proc     *process.Process
	startCPU *cpu.TimesStat
	start    time.Time
}

func currentProcess() *process.Process {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil
	}
	return p
}

// StartStopwatch starts timing. A nil proc disables CPU accounting.
func StartStopwatch(proc *process.Process) *Stopwatch {
	sw := &Stopwatch{proc: proc}
	if proc != nil {
		if times, err := proc.Times(); err == nil {
			sw.startCPU = times
		}
	}
	sw.start = time.Now()
	return sw
}

func (sw *Stopwatch) Stop() Measurement {
	m := Measurement{Wall: time.Since(sw.start)}
	if sw.startCPU == nil {
		return m
	}

	times, err := sw.proc.Times()
	if err != nil {
		return m
	}
	m.User = secondsToDuration(times.User - sw.startCPU.User)
	m.System = secondsToDuration(times.System - sw.startCPU.System)
	return m
}

func secondsToDuration(s float64) time.Duration {
	if s < 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
