package renderer

import "time"

// WorkerStat describes the work done for one partition
type WorkerStat struct {
	PartitionID int
	Pixels      int           // Pixels rendered
	Samples     int           // Camera rays traced
	RenderTime  time.Duration // Wall time spent on the partition
}

// FramePercent returns the share of the frame covered by the partition
func (s WorkerStat) FramePercent(totalPixels int) float64 {
	if totalPixels == 0 {
		return 0
	}
	return 100 * float64(s.Pixels) / float64(totalPixels)
}

// FrameStats contains statistics about a complete render
type FrameStats struct {
	Workers    []WorkerStat // Ordered by partition ID
	RenderTime time.Duration
}

// TotalPixels returns the number of pixels rendered by all workers
func (s FrameStats) TotalPixels() int {
	total := 0
	for _, w := range s.Workers {
		total += w.Pixels
	}
	return total
}

// TotalSamples returns the number of camera rays traced by all workers
func (s FrameStats) TotalSamples() int {
	total := 0
	for _, w := range s.Workers {
		total += w.Samples
	}
	return total
}
