package renderer

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultNumWorkers returns the number of logical CPUs, falling back to runtime.NumCPU
func DefaultNumWorkers() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// LogSystemInfo reports the host CPU and memory. Lookup failures are logged, not returned.
func LogSystemInfo(logger core.Logger) {
	if infos, err := cpu.Info(); err != nil {
		logger.Printf("CPU info unavailable: %v\n", err)
	} else if len(infos) > 0 {
		logger.Printf("CPU: %s (%d logical cores)\n", infos[0].ModelName, DefaultNumWorkers())
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		logger.Printf("Memory info unavailable: %v\n", err)
	} else {
		logger.Printf("Memory: %d MiB total, %d MiB available\n", vm.Total>>20, vm.Available>>20)
	}
}
