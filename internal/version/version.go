package version

import (
	"runtime"
	rdebug "runtime/debug"
	"strings"
	"sync"

	"github.com/opencrowbar/crowbar-inventory/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GitCommit     string
	GitBranch     string
	GitSummary    string
	BuildDate     string
	AppVersion    string
	DigestVersion = dependencyVersion("icholy/digest")
	GoVersion     = runtime.Version()

	buildInfoOnce sync.Once
)

type Version struct {
	GitCommit     string `json:"git_commit"`
	GitBranch     string `json:"git_branch"`
	GitSummary    string `json:"git_summary"`
	BuildDate     string `json:"build_date"`
	AppVersion    string `json:"app_version"`
	GoVersion     string `json:"go_version"`
	DigestVersion string `json:"digest_version"`
}

func Current() Version {
	return Version{
		GitBranch:     GitBranch,
		GitCommit:     GitCommit,
		GitSummary:    GitSummary,
		BuildDate:     BuildDate,
		AppVersion:    AppVersion,
		GoVersion:     GoVersion,
		DigestVersion: DigestVersion,
	}
}

// ExportBuildInfoMetric registers the build info gauge, calls after the first are a noop.
func ExportBuildInfoMetric() {
	buildInfoOnce.Do(exportBuildInfoMetric)
}

func exportBuildInfoMetric() {
	buildInfo := promauto.With(metrics.Registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crowbar_inventory_build_info",
			Help: "A metric with a constant '1' value, labeled by branch, commit, summary, builddate, version, Go version from which crowbar-inventory was built.",
		},
		[]string{"branch", "commit", "summary", "builddate", "version", "goversion"},
	)

	buildInfo.WithLabelValues(GitBranch, GitCommit, GitSummary, BuildDate, AppVersion, GoVersion).Set(1)
}

func dependencyVersion(path string) string {
	buildInfo, ok := rdebug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, d := range buildInfo.Deps {
		if strings.Contains(d.Path, path) {
			return d.Version
		}
	}

	return ""
}
