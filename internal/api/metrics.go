package api

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessMetrics снимает показатели процесса движка
type ProcessMetrics struct {
	StartTime time.Time
	proc      *process.Process
}

// ProcessSnapshot - показатели процесса на момент запроса
type ProcessSnapshot struct {
	Uptime     string  `json:"uptime"`
	UptimeSec  int64   `json:"uptime_seconds"`
	CPUPercent float64 `json:"cpu_percent"`
	RSSMB      float64 `json:"rss_mb"`
	AllocMB    float64 `json:"alloc_mb"`
	HeapMB     float64 `json:"heap_alloc_mb"`
	NumGC      uint32  `json:"num_gc"`
	Goroutines int     `json:"goroutines"`
}

// NewProcessMetrics создает новый экземпляр метрик
func NewProcessMetrics() *ProcessMetrics {
	pm := &ProcessMetrics{StartTime: time.Now()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		pm.proc = p
	}
	return pm
}

// GetUptime возвращает время работы в читаемом виде
func (pm *ProcessMetrics) GetUptime() string {
	uptime := time.Since(pm.StartTime)

	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}

// GetCPUUsage возвращает использование CPU процессом в процентах.
// Если процесс недоступен, возвращает мгновенную загрузку системы.
func (pm *ProcessMetrics) GetCPUUsage() (float64, error) {
	if pm.proc != nil {
		if pct, err := pm.proc.CPUPercent(); err == nil {
			return pct, nil
		}
	}

	cpuPercents, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(cpuPercents) == 0 {
		return 0, nil
	}
	return cpuPercents[0], nil
}

// GetRSS возвращает резидентную память процесса в MB
func (pm *ProcessMetrics) GetRSS() (float64, error) {
	if pm.proc == nil {
		return 0, fmt.Errorf("process info unavailable")
	}
	mem, err := pm.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return float64(mem.RSS) / 1024 / 1024, nil
}

// Snapshot собирает все показатели. Ошибки gopsutil дают нулевые значения.
func (pm *ProcessMetrics) Snapshot() ProcessSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	cpuPct, _ := pm.GetCPUUsage()
	rss, _ := pm.GetRSS()

	return ProcessSnapshot{
		Uptime:     pm.GetUptime(),
		UptimeSec:  int64(time.Since(pm.StartTime).Seconds()),
		CPUPercent: cpuPct,
		RSSMB:      rss,
		AllocMB:    float64(m.Alloc) / 1024 / 1024,
		HeapMB:     float64(m.HeapAlloc) / 1024 / 1024,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
}
