package bench

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// SysInfo describes the machine a report was produced on.
type SysInfo struct {
	Platform string `json:"platform"`
	CPU      string `json:"cpu"`
	Cores    int    `json:"cores"`
	RAM      string `json:"ram"`
	Go       string `json:"go"`
}

// CollectSysInfo queries the host. Probes that fail leave their field at a
// runtime-derived fallback; it never returns an error.
func CollectSysInfo() SysInfo {
	info := SysInfo{
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		CPU:      "unknown",
		Cores:    runtime.NumCPU(),
		RAM:      "unknown",
		Go:       runtime.Version(),
	}
	if h, err := host.Info(); err == nil && h.Platform != "" {
		info.Platform = fmt.Sprintf("%s %s (%s)", h.Platform, h.PlatformVersion, runtime.GOARCH)
	}
	if c, err := cpu.Info(); err == nil && len(c) > 0 {
		info.CPU = c[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", vm.Total/1024/1024/1024)
	}

	return info
}
