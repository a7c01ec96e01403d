package renderer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "raytracer",
		Name:      "frames_total",
		Help:      "The number of rendered frames.",
	})

	clustersTraced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "raytracer",
		Name:      "ray_clusters_total",
		Help:      "The number of 8-ray clusters traced.",
	})

	bouncesTraced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "raytracer",
		Name:      "bounces_total",
		Help:      "The number of cluster bounce steps traced.",
	})

	frameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "raytracer",
		Name:      "frame_duration_seconds",
		Help:      "The time taken to render a frame.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	activeWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "raytracer",
		Name:      "active_workers",
		Help:      "The number of row workers currently rendering.",
	})
)

func instrumentFrame(stats RenderStats) {
	framesRendered.Inc()
	clustersTraced.Add(float64(stats.RayClusters))
	bouncesTraced.Add(float64(stats.Bounces))
	frameDuration.Observe(stats.Duration.Seconds())
}
