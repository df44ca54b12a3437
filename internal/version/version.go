// Package version хранит метаданные сборки.
//
// Значения задаются через -ldflags, например:
//
//	-X hivelings-server/internal/version.BuildDate=2026-03-15
//
// Если коммит не передан, он берется из VCS-меток, которые вшивает go build.
package version

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// buildEpoch - день отсчета номеров сборок.
var buildEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

var errNoBuildDate = errors.New("build date is not set")

// VersionInfo - метаданные сборки для /version и логов старта.
type VersionInfo struct {
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate"`
	Commit     string `json:"commit"`
	Dirty      bool   `json:"dirty,omitempty"`
	Branch     string `json:"branch"`
	CI         string `json:"ci"`
	GoVersion  string `json:"goVersion"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID - число полных дней от buildEpoch до BuildDate.
func CalculateBuildID() (int, error) {
	return daysSinceEpoch(BuildDate)
}

func daysSinceEpoch(date string) (int, error) {
	if date == "" {
		return 0, errNoBuildDate
	}
	t, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before %s", date, buildEpoch.Format(time.DateOnly))
	}
	// Обе даты в UTC, переходов на летнее время нет
	return int(t.Sub(buildEpoch) / (24 * time.Hour)), nil
}

// Info собирает метаданные. Безопасно вызывать в любой момент.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
		GoVersion: runtime.Version(),
	}
	if info.Commit == "" {
		info.Commit, info.Dirty = vcsRevision()
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Calculated = true
	return info
}

// vcsRevision читает vcs.revision и vcs.modified из бинарника.
func vcsRevision() (rev string, dirty bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return rev, dirty
}

// String - строка для логов старта и команды version.
func String() string {
	info := Info()

	commit := or(info.Commit, "unknown")
	if info.Dirty {
		commit += "+dirty"
	}
	build := "unknown"
	if info.Calculated {
		build = fmt.Sprintf("%d (%s)", info.BuildID, info.BuildDate)
	}

	return fmt.Sprintf("hivelings build %s commit[%s] branch[%s] ci[%s] %s",
		build, commit, or(info.Branch, "unknown"), or(info.CI, "local"), info.GoVersion)
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
