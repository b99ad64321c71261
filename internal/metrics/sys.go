package metrics

import (
	"io/fs"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
)

var processStart = time.Now()

// HealthReport is a point-in-time snapshot of the planner process, shown
// next to the usage figures on the admin surfaces.
type HealthReport struct {
	Uptime       string
	AllocMB      uint64
	SysMB        uint64
	NumGC        uint32
	Goroutines   int
	LiveSessions int
	DataDiskSize string
}

// Health collects the snapshot. dataPath is the directory holding the
// SQLite database; liveSessions comes from the session store, keeping this
// package free of a session dependency.
func Health(dataPath string, liveSessions int) HealthReport {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return HealthReport{
		Uptime:       time.Since(processStart).Round(time.Second).String(),
		AllocMB:      m.Alloc / 1024 / 1024,
		SysMB:        m.Sys / 1024 / 1024,
		NumGC:        m.NumGC,
		Goroutines:   runtime.NumGoroutine(),
		LiveSessions: liveSessions,
		DataDiskSize: dataDirSize(dataPath),
	}
}

// dataDirSize totals the files under path, the database plus its WAL and
// journal siblings. Unreadable entries are skipped rather than failing the
// whole report.
func dataDirSize(path string) string {
	var size uint64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			size += uint64(info.Size())
		}
		return nil
	})
	return humanize.IBytes(size)
}
