package cmd

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// SystemInfo describes the host the renderer runs on
type SystemInfo struct {
	CPUModel      string
	CPUMhz        float64
	PhysicalCores int
	LogicalCores  int
	TotalMemoryMB uint64
}

// GetSystemInfo queries the host. Fields that cannot be determined are left
// zero, except the core counts which fall back to runtime.NumCPU.
func GetSystemInfo() SystemInfo {
	info := SystemInfo{
		PhysicalCores: runtime.NumCPU(),
		LogicalCores:  runtime.NumCPU(),
	}

	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
		info.CPUMhz = cpus[0].Mhz
	}
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		info.PhysicalCores = n
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.LogicalCores = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemoryMB = vm.Total / 1024 / 1024
	}
	return info
}

func logSystemInfo(info SystemInfo) {
	logger.Infof(
		"host: %s @ %.0f MHz, %d physical / %d logical cores, %d MB memory",
		info.CPUModel, info.CPUMhz, info.PhysicalCores, info.LogicalCores, info.TotalMemoryMB,
	)
}
