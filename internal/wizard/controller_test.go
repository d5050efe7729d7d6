package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clipbridge/clipbridge/internal/models"
)

type fakeBackend struct {
	downloads int
	converts  int
	uploads   int

	downloadErr error
	convertErr  error
	uploadErr   error

	lastInput   string
	lastQuality models.QualityPreset
	lastUpload  string
}

func (b *fakeBackend) Download(_ context.Context, _ string) (models.DownloadResult, error) {
	b.downloads++
	if b.downloadErr != nil {
		return models.DownloadResult{}, b.downloadErr
	}
	return models.DownloadResult{
		Success:  true,
		FilePath: "/videos/downloaded/clip.mp4",
		Filename: "clip.mp4",
	}, nil
}

func (b *fakeBackend) Convert(_ context.Context, inputPath string, quality models.QualityPreset) (models.ConvertResult, error) {
	b.converts++
	b.lastInput = inputPath
	b.lastQuality = quality
	if b.convertErr != nil {
		return models.ConvertResult{}, b.convertErr
	}
	return models.ConvertResult{
		Success:    true,
		InputPath:  inputPath,
		OutputPath: "/videos/converted/clip_converted.mp4",
		OutputName: "clip_converted.mp4",
	}, nil
}

func (b *fakeBackend) Upload(_ context.Context, filePath, _, _ string, _ []string) (models.UploadResult, error) {
	b.uploads++
	b.lastUpload = filePath
	if b.uploadErr != nil {
		return models.UploadResult{}, b.uploadErr
	}
	return models.UploadResult{Success: true, YouTubeURL: "https://youtube.com/watch?v=1"}, nil
}

func newTestController(backend *fakeBackend) *Controller {
	return NewController(backend, Options{TickInterval: time.Hour})
}

func TestDownloadRejectsInvalidURL(t *testing.T) {
	backend := &fakeBackend{}
	controller := newTestController(backend)

	for _, bad := range []string{"", "https://example.com/video/1"} {
		if _, err := controller.Download(context.Background(), bad); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("url %q: expected ErrInvalidURL, got %v", bad, err)
		}
	}
	if backend.downloads != 0 {
		t.Fatalf("expected zero network calls, got %d", backend.downloads)
	}
	if controller.State().Step != StepDownload {
		t.Fatalf("step = %v, want download", controller.State().Step)
	}
}

func TestFlowAdvancesForward(t *testing.T) {
	backend := &fakeBackend{}
	controller := newTestController(backend)

	download, err := controller.Download(context.Background(), "https://www.tiktok.com/@user/video/123")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if controller.State().Step != StepConvert {
		t.Fatalf("step = %v, want convert", controller.State().Step)
	}
	if controller.State().DownloadedPath != download.FilePath {
		t.Fatalf("carried path = %q", controller.State().DownloadedPath)
	}

	converted, err := controller.Convert(context.Background(), models.QualityHigh)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if backend.lastInput != download.FilePath {
		t.Fatalf("convert input = %q, want the downloaded path", backend.lastInput)
	}
	if controller.State().Step != StepComplete {
		t.Fatalf("step = %v, want complete", controller.State().Step)
	}
	if controller.State().ConvertedName != converted.OutputName {
		t.Fatalf("carried name = %q", controller.State().ConvertedName)
	}

	if _, err := controller.Upload(context.Background(), "My Video", "", []string{"tag"}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if backend.lastUpload != converted.OutputPath {
		t.Fatalf("upload path = %q, want the converted path", backend.lastUpload)
	}
}

func TestStepOrderEnforced(t *testing.T) {
	backend := &fakeBackend{}
	controller := newTestController(backend)

	if _, err := controller.Convert(context.Background(), models.QualityHigh); !errors.Is(err, ErrStepOrder) {
		t.Fatalf("expected ErrStepOrder, got %v", err)
	}
	if _, err := controller.Upload(context.Background(), "Title", "", nil); !errors.Is(err, ErrStepOrder) {
		t.Fatalf("expected ErrStepOrder, got %v", err)
	}
	if backend.converts != 0 || backend.uploads != 0 {
		t.Fatal("out-of-order operations must not reach the backend")
	}
}

func TestUploadRequiresTitle(t *testing.T) {
	backend := &fakeBackend{}
	controller := newTestController(backend)

	if _, err := controller.Download(context.Background(), "https://www.tiktok.com/@user/video/123"); err != nil {
		t.Fatalf("download: %v", err)
	}
	if _, err := controller.Convert(context.Background(), models.QualityHigh); err != nil {
		t.Fatalf("convert: %v", err)
	}

	if _, err := controller.Upload(context.Background(), "   ", "", nil); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if backend.uploads != 0 {
		t.Fatalf("expected zero upload calls, got %d", backend.uploads)
	}
}

func TestDownloadFailureKeepsStep(t *testing.T) {
	backend := &fakeBackend{downloadErr: errors.New("backend down")}
	controller := newTestController(backend)

	if _, err := controller.Download(context.Background(), "https://www.tiktok.com/@user/video/123"); err == nil {
		t.Fatal("expected an error")
	}
	if controller.State().Step != StepDownload {
		t.Fatalf("failed download must not advance, step = %v", controller.State().Step)
	}
}

func TestStartOverResetsEverything(t *testing.T) {
	backend := &fakeBackend{}
	controller := newTestController(backend)

	if _, err := controller.Download(context.Background(), "https://www.tiktok.com/@user/video/123"); err != nil {
		t.Fatalf("download: %v", err)
	}
	if _, err := controller.Convert(context.Background(), models.QualityHigh); err != nil {
		t.Fatalf("convert: %v", err)
	}

	controller.StartOver()
	state := controller.State()
	if state.Step != StepDownload {
		t.Fatalf("step = %v, want download", state.Step)
	}
	if state.DownloadedPath != "" || state.DownloadedName != "" || state.ConvertedPath != "" || state.ConvertedName != "" {
		t.Fatalf("expected carried state discarded, got %+v", state)
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags(" dance, tiktok ,, viral ")
	want := []string{"dance", "tiktok", "viral"}
	if len(got) != len(want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tags[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
