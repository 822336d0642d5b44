package renderer

import (
	"testing"
	"time"
)

func TestRenderStats_Throughput(t *testing.T) {
	stats := RenderStats{TotalPixels: 1000, Elapsed: 2 * time.Second}

	if got := stats.Seconds(); got != 2 {
		t.Errorf("Expected 2 seconds, got %f", got)
	}
	if got := stats.PixelsPerSecond(); got != 500 {
		t.Errorf("Expected 500 pixels/s, got %f", got)
	}
}

func TestRenderStats_ZeroElapsed(t *testing.T) {
	stats := RenderStats{TotalPixels: 1000}
	if got := stats.PixelsPerSecond(); got != 0 {
		t.Errorf("Expected 0 pixels/s without elapsed time, got %f", got)
	}
}
