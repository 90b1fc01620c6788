// The sys plugin exposes host system metrics to widgets. Build it with
// -buildmode=c-shared and drop the library into the plugins directory.
package main

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"

	"github.com/deskulpt-apps/deskulpt/pkg/sdk"
)

type sysPlugin struct{}

func (sysPlugin) Name() string    { return "sys" }
func (sysPlugin) Version() string { return "0.2.0" }

func (sysPlugin) Commands() []sdk.Command {
	return []sdk.Command{
		sdk.NewTyped("get_system_info", getSystemInfo),
	}
}

type cpuInfo struct {
	VendorID  string  `json:"vendorId"`
	Brand     string  `json:"brand"`
	Frequency float64 `json:"frequency"`
}

type diskInfo struct {
	Name       string `json:"name"`
	MountPoint string `json:"mountPoint"`
	TotalSpace uint64 `json:"totalSpace"`
	AvailSpace uint64 `json:"availSpace"`
}

type networkInfo struct {
	InterfaceName string `json:"interfaceName"`
	TotalReceived uint64 `json:"totalReceived"`
	TotalSent     uint64 `json:"totalSent"`
}

type systemInfo struct {
	TotalMemory   uint64        `json:"totalMemory"`
	UsedMemory    uint64        `json:"usedMemory"`
	TotalSwap     uint64        `json:"totalSwap"`
	UsedSwap      uint64        `json:"usedSwap"`
	SystemName    string        `json:"systemName"`
	KernelVersion string        `json:"kernelVersion"`
	OSVersion     string        `json:"osVersion"`
	HostName      string        `json:"hostName"`
	Uptime        uint64        `json:"uptime"`
	CPUCount      int           `json:"cpuCount"`
	CPUInfo       []cpuInfo     `json:"cpuInfo"`
	Disks         []diskInfo    `json:"disks"`
	Networks      []networkInfo `json:"networks"`
}

// getSystemInfo collects a full snapshot. Memory and host identity are
// required; per-device sections degrade to empty lists when a probe fails.
func getSystemInfo(widgetID string, engine *sdk.EngineInterface, _ *struct{}) (systemInfo, error) {
	var info systemInfo

	vm, err := mem.VirtualMemory()
	if err != nil {
		return info, fmt.Errorf("read memory stats: %w", err)
	}
	info.TotalMemory = vm.Total
	info.UsedMemory = vm.Used

	if swap, err := mem.SwapMemory(); err == nil {
		info.TotalSwap = swap.Total
		info.UsedSwap = swap.Used
	}

	hi, err := host.Info()
	if err != nil {
		return info, fmt.Errorf("read host info: %w", err)
	}
	info.SystemName = hi.OS
	info.KernelVersion = hi.KernelVersion
	info.OSVersion = hi.PlatformVersion
	info.HostName = hi.Hostname
	info.Uptime = hi.Uptime

	if n, err := cpu.Counts(true); err == nil {
		info.CPUCount = n
	}
	if cores, err := cpu.Info(); err == nil {
		for _, c := range cores {
			info.CPUInfo = append(info.CPUInfo, cpuInfo{
				VendorID:  c.VendorID,
				Brand:     c.ModelName,
				Frequency: c.Mhz,
			})
		}
	} else {
		engine.LogDebug(fmt.Sprintf("cpu info unavailable: %v", err))
	}

	if parts, err := disk.Partitions(false); err == nil {
		for _, p := range parts {
			usage, err := disk.Usage(p.Mountpoint)
			if err != nil {
				continue
			}
			info.Disks = append(info.Disks, diskInfo{
				Name:       p.Device,
				MountPoint: p.Mountpoint,
				TotalSpace: usage.Total,
				AvailSpace: usage.Free,
			})
		}
	} else {
		engine.LogDebug(fmt.Sprintf("disk info unavailable: %v", err))
	}

	if counters, err := gnet.IOCounters(true); err == nil {
		for _, c := range counters {
			info.Networks = append(info.Networks, networkInfo{
				InterfaceName: c.Name,
				TotalReceived: c.BytesRecv,
				TotalSent:     c.BytesSent,
			})
		}
	} else {
		engine.LogDebug(fmt.Sprintf("network info unavailable: %v", err))
	}

	return info, nil
}

func init() {
	sdk.Register(sysPlugin{})
}

// Required by -buildmode=c-shared; never runs.
func main() {}
