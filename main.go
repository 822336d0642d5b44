package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/df07/go-column-raytracer/pkg/core"
	"github.com/df07/go-column-raytracer/pkg/renderer"
	"github.com/df07/go-column-raytracer/pkg/scene"
)

// outputFile is where the rendered image is written
const outputFile = "raytracing.jpg"

// Usage: raytracer [resolutionX [resolutionY [sampleCount [workerCount]]]]
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], outputFile, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run renders the default scene and writes it to outputPath. The elapsed
// dispatch time goes to stdout, progress messages to stderr.
func run(ctx context.Context, args []string, outputPath string, stdout, stderr io.Writer) error {
	config, err := parseArgs(args)
	if err != nil {
		return err
	}

	logger := core.NewWriterLogger(stderr)
	resolution := fmt.Sprintf("%dx%d", config.Width, config.Height)
	logger.Printf("Rendering %s with %d samples per pixel on %d workers...\n",
		resolution, config.SamplesPerPixel, config.NumWorkers)

	sizeX, sizeY := scene.ViewPlaneSize()
	viewPlane := renderer.NewViewPlane(config.Width, config.Height, sizeX, sizeY, scene.ViewPlaneDistance)
	dispatcher := renderer.NewDispatcher(scene.NewDefaultScene(), viewPlane, config, logger)

	grid, stats, err := dispatcher.Render(ctx)
	if err != nil {
		return err
	}

	// The timing is reported even if saving fails below.
	fmt.Fprintf(stdout, "Time = %g\n", stats.Seconds())

	if err := grid.Serialize(outputPath); err != nil {
		return err
	}
	logger.Printf("Render saved as %s (average luminance %.3f)\n", outputPath, grid.AverageLuminance())
	return nil
}

// parseArgs reads the optional positional arguments
// resolutionX, resolutionY, sampleCount and workerCount
func parseArgs(args []string) (renderer.DispatchConfig, error) {
	config := renderer.DefaultDispatchConfig()
	fields := []struct {
		name  string
		value *int
	}{
		{"resolutionX", &config.Width},
		{"resolutionY", &config.Height},
		{"sampleCount", &config.SamplesPerPixel},
		{"workerCount", &config.NumWorkers},
	}

	if len(args) > len(fields) {
		return renderer.DispatchConfig{}, &renderer.ConfigurationError{
			Field:  "argument count",
			Value:  len(args),
			Reason: fmt.Sprintf("expected at most %d positional arguments", len(fields)),
		}
	}

	for i, arg := range args {
		parsed, err := strconv.Atoi(arg)
		if err != nil {
			return renderer.DispatchConfig{}, &renderer.ConfigurationError{
				Field:  fields[i].name,
				Value:  strconv.Quote(arg),
				Reason: "not an integer",
			}
		}
		*fields[i].value = parsed
	}

	if err := config.Validate(); err != nil {
		return renderer.DispatchConfig{}, err
	}
	return config, nil
}
