package wizard

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/clipbridge/clipbridge/internal/logging"
	"github.com/clipbridge/clipbridge/internal/models"
)

// Step identifies a stage of the download → convert → upload flow.
type Step int

const (
	StepDownload Step = iota + 1
	StepConvert
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepDownload:
		return "download"
	case StepConvert:
		return "convert"
	case StepComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// State is a snapshot of the wizard's progress through the flow.
type State struct {
	Step           Step
	DownloadedPath string
	DownloadedName string
	ConvertedPath  string
	ConvertedName  string
}

// Backend is the subset of the API client the wizard drives.
type Backend interface {
	Download(ctx context.Context, videoURL string) (models.DownloadResult, error)
	Convert(ctx context.Context, inputPath string, quality models.QualityPreset) (models.ConvertResult, error)
	Upload(ctx context.Context, filePath, title, description string, tags []string) (models.UploadResult, error)
}

// Options tunes the controller. Zero values fall back to defaults.
type Options struct {
	Logger *slog.Logger
	// OnProgress receives simulated progress percentages during convert and
	// upload. May be nil.
	OnProgress func(percent float64)
	// TickInterval overrides the simulator interval, for tests.
	TickInterval time.Duration
}

// Controller sequences the three-step flow. Transitions are strictly
// forward; StartOver resets unconditionally. All methods are called from a
// single goroutine.
type Controller struct {
	backend      Backend
	logger       *slog.Logger
	onProgress   func(float64)
	tickInterval time.Duration

	state State
}

// NewController constructs a Controller positioned at the download step.
func NewController(backend Backend, opts Options) *Controller {
	if backend == nil {
		panic("wizard: backend client must not be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := opts.TickInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Controller{
		backend:      backend,
		logger:       logger,
		onProgress:   opts.OnProgress,
		tickInterval: interval,
		state:        State{Step: StepDownload},
	}
}

// State returns the current wizard snapshot.
func (c *Controller) State() State {
	return c.state
}

// StartOver resets to the download step and discards all carried state.
func (c *Controller) StartOver() {
	c.state = State{Step: StepDownload}
}

// Download submits the source video URL. The URL is validated client-side
// before any network call: it must be non-empty and contain the source
// platform's domain.
func (c *Controller) Download(ctx context.Context, videoURL string) (models.DownloadResult, error) {
	if c.state.Step != StepDownload {
		return models.DownloadResult{}, ErrStepOrder
	}
	if videoURL == "" || !strings.Contains(videoURL, "tiktok.com") {
		return models.DownloadResult{}, ErrInvalidURL
	}

	ctx, span := logging.StartSpan(ctx, "wizard.download")
	defer span.End()

	result, err := c.backend.Download(ctx, videoURL)
	if err != nil {
		return models.DownloadResult{}, err
	}

	c.state.Step = StepConvert
	c.state.DownloadedPath = result.FilePath
	c.state.DownloadedName = result.Filename
	c.logger.Info("download step complete", "file", result.Filename)
	return result, nil
}

// Convert transcodes the downloaded file with the chosen preset, simulating
// progress while the backend works.
func (c *Controller) Convert(ctx context.Context, quality models.QualityPreset) (models.ConvertResult, error) {
	if c.state.Step != StepConvert {
		return models.ConvertResult{}, ErrStepOrder
	}

	ctx, span := logging.StartSpan(ctx, "wizard.convert")
	defer span.End()

	sim := NewSimulator(c.tickInterval, 10, c.onProgress)
	sim.Start()

	result, err := c.backend.Convert(ctx, c.state.DownloadedPath, quality)
	if err != nil {
		sim.Abort()
		return models.ConvertResult{}, err
	}
	sim.Finish()

	c.state.Step = StepComplete
	c.state.ConvertedPath = result.OutputPath
	c.state.ConvertedName = result.OutputName
	c.logger.Info("convert step complete", "file", result.OutputName)
	return result, nil
}

// Upload publishes the converted file to YouTube. The title is required
// client-side before any network call.
func (c *Controller) Upload(ctx context.Context, title, description string, tags []string) (models.UploadResult, error) {
	if c.state.Step != StepComplete {
		return models.UploadResult{}, ErrStepOrder
	}
	if strings.TrimSpace(title) == "" {
		return models.UploadResult{}, ErrTitleRequired
	}

	ctx, span := logging.StartSpan(ctx, "wizard.upload")
	defer span.End()

	sim := NewSimulator(c.tickInterval, 5, c.onProgress)
	sim.Start()

	result, err := c.backend.Upload(ctx, c.state.ConvertedPath, title, description, tags)
	if err != nil {
		sim.Abort()
		return models.UploadResult{}, err
	}
	sim.Finish()

	c.logger.Info("upload step complete", "youtubeUrl", result.YouTubeURL)
	return result, nil
}

// ParseTags splits a comma-separated tag string, trimming whitespace and
// dropping empties.
func ParseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
