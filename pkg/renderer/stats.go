package renderer

import "time"

// RenderStats describes one completed render
type RenderStats struct {
	TotalPixels     int           // Width * height
	SamplesPerPixel int           // Samples requested per pixel
	NumWorkers      int           // Workers requested
	SpawnedWorkers  int           // Workers that received a non-empty range
	ChunkWidth      int           // Columns per worker range
	LeftoverColumns int           // Columns rendered by the dispatcher after the join
	Elapsed         time.Duration // Partition, spawn, join and leftover; excludes setup and encoding
}

// Seconds returns the elapsed time in seconds
func (s RenderStats) Seconds() float64 {
	return s.Elapsed.Seconds()
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Elapsed.Seconds()
}
