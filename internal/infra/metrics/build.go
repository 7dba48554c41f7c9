package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(buildInfo)
}

var buildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "post_curator_build_info",
		Help: "Always 1; labelled with the running binary's version and commit.",
	},
	[]string{"version", "commit"},
)

// SetBuildInfo is called once from main with values injected via -ldflags.
func SetBuildInfo(version, commit string) {
	buildInfo.Reset()
	buildInfo.WithLabelValues(version, commit).Set(1)
}
