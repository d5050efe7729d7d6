package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/clipbridge/clipbridge/internal/api"
	"github.com/clipbridge/clipbridge/internal/models"
	"github.com/clipbridge/clipbridge/internal/wizard"
)

// runWizard drives the interactive three-step flow: download a TikTok video,
// convert it with a chosen preset, then optionally upload it to YouTube.
func runWizard(ctx context.Context, deps *dependencies) error {
	session := deps.orchestrator.Session()
	if !session.IsAuthenticated() {
		return api.ErrAuthRequired
	}

	reader := bufio.NewReader(os.Stdin)
	controller := wizard.NewController(deps.client, wizard.Options{
		Logger:     deps.logger,
		OnProgress: renderProgress,
	})

	fmt.Println("Step 1 of 3: download")
	videoURL, err := prompt(reader, "TikTok video URL: ")
	if err != nil {
		return err
	}
	download, err := controller.Download(ctx, videoURL)
	if err != nil {
		return err
	}
	fmt.Printf("Downloaded %s\n", download.Filename)

	fmt.Println("Step 2 of 3: convert")
	preset, err := promptPreset(reader)
	if err != nil {
		return err
	}
	converted, err := controller.Convert(ctx, preset)
	fmt.Println()
	if err != nil {
		return err
	}
	fmt.Printf("Converted to %s\n", converted.OutputName)

	fmt.Println("Step 3 of 3: upload")
	if !session.YouTubeConnected {
		fmt.Println("YouTube account not connected. Run 'clipbridge connect', then upload with:")
		fmt.Printf("  clipbridge upload -title <title> %s\n", converted.OutputPath)
		return nil
	}

	title, err := prompt(reader, "Title: ")
	if err != nil {
		return err
	}
	description, err := prompt(reader, "Description (optional): ")
	if err != nil {
		return err
	}
	rawTags, err := prompt(reader, "Tags, comma-separated (optional): ")
	if err != nil {
		return err
	}

	upload, err := controller.Upload(ctx, title, description, wizard.ParseTags(rawTags))
	fmt.Println()
	if err != nil {
		return err
	}
	if upload.YouTubeURL != "" {
		fmt.Printf("Uploaded: %s\n", upload.YouTubeURL)
	} else {
		fmt.Println("Uploaded.")
	}
	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("input closed")
	}
	return strings.TrimSpace(line), nil
}

func promptPreset(reader *bufio.Reader) (models.QualityPreset, error) {
	presets := models.QualityPresets()
	for i, preset := range presets {
		fmt.Printf("  %2d. %s\n", i+1, preset.Label())
	}
	choice, err := prompt(reader, fmt.Sprintf("Preset [1-%d, default 1]: ", len(presets)))
	if err != nil {
		return "", err
	}
	if choice == "" {
		return presets[0], nil
	}
	var index int
	if _, err := fmt.Sscanf(choice, "%d", &index); err != nil || index < 1 || index > len(presets) {
		return "", fmt.Errorf("invalid preset choice %q", choice)
	}
	return presets[index-1], nil
}

func renderProgress(percent float64) {
	fmt.Printf("\rProgress: %3.0f%%", percent)
}
