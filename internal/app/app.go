package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/clipbridge/clipbridge/internal/api"
	"github.com/clipbridge/clipbridge/internal/callback"
	"github.com/clipbridge/clipbridge/internal/config"
	"github.com/clipbridge/clipbridge/internal/httpserver"
	"github.com/clipbridge/clipbridge/internal/models"
	"github.com/clipbridge/clipbridge/internal/wizard"
)

// Run bootstraps the ClipBridge client and dispatches the subcommand.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected command: login, logout, status, connect, disconnect, wizard, download, convert, upload, videos, delete, or presets")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	deps, err := buildDependencies(cfg, logger)
	if err != nil {
		return err
	}

	switch args[0] {
	case "login":
		return runLogin(ctx, deps)
	case "logout":
		deps.orchestrator.Logout(ctx)
		return nil
	case "status":
		return runStatus(deps)
	case "connect":
		return runConnect(ctx, deps)
	case "disconnect":
		deps.orchestrator.Disconnect()
		return nil
	case "wizard":
		return runWizard(ctx, deps)
	case "download":
		return runDownload(ctx, deps, args[1:])
	case "convert":
		return runConvert(ctx, deps, args[1:])
	case "upload":
		return runUpload(ctx, deps, args[1:])
	case "videos":
		return runVideos(ctx, deps, args[1:])
	case "delete":
		return runDelete(ctx, deps, args[1:])
	case "presets":
		return runPresets()
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// runLogin opens the backend's OAuth endpoint in the browser and waits for
// the redirect to land on the local callback listener.
func runLogin(ctx context.Context, deps *dependencies) error {
	return awaitCallback(ctx, deps, func(ctx context.Context) error {
		return deps.orchestrator.Login(ctx)
	})
}

// runConnect starts the YouTube authorization flow and waits for its
// callback the same way.
func runConnect(ctx context.Context, deps *dependencies) error {
	return awaitCallback(ctx, deps, func(ctx context.Context) error {
		return deps.orchestrator.Connect(ctx)
	})
}

// awaitCallback runs the callback listener for the duration of one OAuth
// round trip: start listening, open the browser, then block until the
// redirect arrives, the context ends, or the user interrupts.
func awaitCallback(ctx context.Context, deps *dependencies, initiate func(context.Context) error) error {
	srv := callback.NewServer(deps.cfg.CallbackPort, deps.orchestrator, deps.logger)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Start()
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			deps.logger.Warn("callback listener shutdown failed", "error", err)
		}
	}()

	deps.logger.Info("waiting for oauth callback", "port", deps.cfg.CallbackPort)
	if err := initiate(ctx); err != nil {
		return err
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	select {
	case res := <-srv.Results():
		if res.Err != nil {
			return res.Err
		}
		printSession(os.Stdout, res.Session)
		return nil
	case sig := <-signalCh:
		deps.logger.Info("interrupted while waiting for callback", "signal", sig.String())
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("callback listener: %w", err)
		}
		return nil
	}
}

func runStatus(deps *dependencies) error {
	printSession(os.Stdout, deps.orchestrator.Session())
	return nil
}

func printSession(out io.Writer, session models.Session) {
	if !session.IsAuthenticated() {
		fmt.Fprintln(out, "Not logged in.")
		return
	}
	fmt.Fprintf(out, "Logged in as %s <%s>\n", session.User.Name, session.User.Email)
	if session.YouTubeConnected {
		fmt.Fprintln(out, "YouTube account connected.")
	} else {
		fmt.Fprintln(out, "YouTube account not connected. Run 'clipbridge connect'.")
	}
}

func runDownload(ctx context.Context, deps *dependencies, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: clipbridge download <tiktok-url>")
	}

	result, err := deps.client.Download(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Downloaded %s to %s\n", result.Filename, result.FilePath)
	return nil
}

func runConvert(ctx context.Context, deps *dependencies, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	quality := fs.String("quality", string(models.QualityHigh), "conversion preset (see 'clipbridge presets')")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: clipbridge convert [-quality preset] <input-path>")
	}

	preset := models.QualityPreset(*quality)
	if !preset.Valid() {
		return fmt.Errorf("unknown quality preset %q", *quality)
	}

	result, err := deps.client.Convert(ctx, fs.Arg(0), preset)
	if err != nil {
		return err
	}
	fmt.Printf("Converted to %s\n", result.OutputPath)
	return nil
}

func runUpload(ctx context.Context, deps *dependencies, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	title := fs.String("title", "", "video title (required)")
	description := fs.String("description", "", "video description")
	tags := fs.String("tags", "", "comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: clipbridge upload -title <title> [-description d] [-tags a,b] <file-path>")
	}
	if strings.TrimSpace(*title) == "" {
		return errors.New("a title is required")
	}

	result, err := deps.client.Upload(ctx, fs.Arg(0), *title, *description, wizard.ParseTags(*tags))
	if err != nil {
		return err
	}
	if result.YouTubeURL != "" {
		fmt.Printf("Uploaded: %s\n", result.YouTubeURL)
	} else {
		fmt.Println("Uploaded.")
	}
	return nil
}

func runVideos(ctx context.Context, deps *dependencies, args []string) error {
	kind := api.KindDownloaded
	if len(args) > 0 {
		switch args[0] {
		case "downloaded":
			kind = api.KindDownloaded
		case "converted":
			kind = api.KindConverted
		default:
			return fmt.Errorf("unknown video kind %q (want downloaded or converted)", args[0])
		}
	}

	list, err := deps.lister.List(ctx, kind)
	if err != nil {
		return err
	}

	if list.TotalCount == 0 {
		fmt.Printf("No %s videos in %s\n", kind, list.FolderPath)
		return nil
	}
	fmt.Printf("%d %s video(s) in %s:\n", list.TotalCount, kind, list.FolderPath)
	for _, video := range list.Videos {
		fmt.Printf("  %s\t%s\t%s\n", video.Filename, formatSize(video.SizeBytes), video.CreatedAt)
	}
	return nil
}

func runDelete(ctx context.Context, deps *dependencies, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: clipbridge delete <file-path> <downloaded|converted>")
	}
	kind := api.AssetKind(args[1])
	if kind != api.KindDownloaded && kind != api.KindConverted {
		return fmt.Errorf("unknown video kind %q (want downloaded or converted)", args[1])
	}

	result, err := deps.lister.Delete(ctx, args[0], kind)
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	return nil
}

func runPresets() error {
	for _, preset := range models.QualityPresets() {
		fmt.Printf("  %-32s %s\n", preset, preset.Label())
	}
	return nil
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
