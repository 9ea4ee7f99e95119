package app

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/mindweave/mindweave/internal/config"
)

// sampleCPU refreshes the status bar CPU readout, at most once per
// CPUUpdateInterval. cpu.Percent with zero interval returns the usage since
// the previous call, so the sample itself never blocks the frame.
func (m *Model) sampleCPU(now time.Time) {
	if now.Sub(m.lastCPUSample) < config.CPUUpdateInterval {
		return
	}
	m.lastCPUSample = now

	percentages, err := cpu.Percent(0, false)
	if err != nil || len(percentages) == 0 {
		return
	}
	m.cpuPercent = percentages[0]
}
