package renderer

import "time"

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	Width        int           // Image width in pixels
	Height       int           // Image height in pixels
	Threads      int           // Number of row workers used
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of primary rays traced
	RayClusters  int           // Number of 8-ray clusters traced
	Bounces      int           // Bounce steps summed over every cluster
	Duration     time.Duration // Wall time of the frame
}

// RaysPerSecond returns the primary ray throughput of the frame
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// AverageBounces returns the mean number of bounces per cluster
func (s RenderStats) AverageBounces() float64 {
	if s.RayClusters == 0 {
		return 0
	}
	return float64(s.Bounces) / float64(s.RayClusters)
}
