package api

import (
	"context"
	"net/http"
	"net/url"
	"path"

	"github.com/clipbridge/clipbridge/internal/models"
)

// AssetKind selects which backend video folder an operation targets.
type AssetKind string

const (
	KindDownloaded AssetKind = "downloaded"
	KindConverted  AssetKind = "converted"
)

type downloadRequest struct {
	URL          string `json:"url"`
	OutputFolder string `json:"output_folder,omitempty"`
}

type convertRequest struct {
	InputPath    string               `json:"input_path"`
	OutputFolder string               `json:"output_folder,omitempty"`
	Quality      models.QualityPreset `json:"quality,omitempty"`
}

type uploadRequest struct {
	FilePath     string   `json:"file_path"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	LoginToken   string   `json:"login_token"`
	YouTubeToken string   `json:"youtube_token"`
	Tags         []string `json:"tags"`
}

type deleteRequest struct {
	FilePath string    `json:"file_path"`
	Type     AssetKind `json:"type"`
}

type exchangeRequest struct {
	Code string `json:"code"`
}

// Download asks the backend to fetch the source-platform video at url.
func (c *Client) Download(ctx context.Context, videoURL string) (models.DownloadResult, error) {
	var result models.DownloadResult
	err := c.do(ctx, http.MethodPost, "/download", downloadRequest{URL: videoURL}, &result, nil)
	return result, err
}

// Convert asks the backend to transcode inputPath with the given preset.
// The preset is forwarded verbatim; its semantics live on the backend.
func (c *Client) Convert(ctx context.Context, inputPath string, quality models.QualityPreset) (models.ConvertResult, error) {
	var result models.ConvertResult
	err := c.do(ctx, http.MethodPost, "/convert", convertRequest{InputPath: inputPath, Quality: quality}, &result, nil)
	return result, err
}

// Upload publishes a converted file to YouTube. It requires both the session
// token and the platform connection token and fails fast with
// ErrConnectionRequired before any network I/O when the latter is absent.
func (c *Client) Upload(ctx context.Context, filePath, title, description string, tags []string) (models.UploadResult, error) {
	snapshot := c.store.Load()
	if snapshot.Token == "" {
		return models.UploadResult{}, ErrAuthRequired
	}
	if snapshot.YouTubeToken == "" {
		return models.UploadResult{}, ErrConnectionRequired
	}
	if tags == nil {
		tags = []string{}
	}

	header := http.Header{}
	header.Set("YouTube-Authorization", "Bearer "+snapshot.YouTubeToken)

	body := uploadRequest{
		FilePath:     filePath,
		Title:        title,
		Description:  description,
		LoginToken:   snapshot.Token,
		YouTubeToken: snapshot.YouTubeToken,
		Tags:         tags,
	}

	var result models.UploadResult
	err := c.doWithToken(ctx, snapshot.Token, http.MethodPost, "/youtube/upload", body, &result, header, true)
	return result, err
}

// Downloaded lists the backend's downloaded-videos folder.
func (c *Client) Downloaded(ctx context.Context) (models.VideoList, error) {
	var list models.VideoList
	err := c.do(ctx, http.MethodGet, "/videos/downloaded", nil, &list, nil)
	return list, err
}

// Converted lists the backend's converted-videos folder.
func (c *Client) Converted(ctx context.Context) (models.VideoList, error) {
	var list models.VideoList
	err := c.do(ctx, http.MethodGet, "/videos/converted", nil, &list, nil)
	return list, err
}

// List dispatches to Downloaded or Converted by kind.
func (c *Client) List(ctx context.Context, kind AssetKind) (models.VideoList, error) {
	if kind == KindConverted {
		return c.Converted(ctx)
	}
	return c.Downloaded(ctx)
}

// Delete removes a backend-managed video file by path and kind.
func (c *Client) Delete(ctx context.Context, filePath string, kind AssetKind) (models.DeleteResult, error) {
	var result models.DeleteResult
	err := c.do(ctx, http.MethodDelete, "/videos/delete", deleteRequest{FilePath: filePath, Type: kind}, &result, nil)
	return result, err
}

// Profile fetches the authenticated user's profile with the stored token.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/user", nil, &user, nil)
	return user, err
}

// ProfileWithToken fetches a profile using an explicit token, used during
// callback handling before the token has settled into the store.
func (c *Client) ProfileWithToken(ctx context.Context, token string) (models.User, error) {
	var user models.User
	err := c.doWithToken(ctx, token, http.MethodGet, "/user", nil, &user, nil, false)
	return user, err
}

// ExchangeCode trades an OAuth authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (models.TokenResponse, error) {
	var resp models.TokenResponse
	err := c.doUnauthenticated(ctx, http.MethodPost, "/auth/token", exchangeRequest{Code: code}, &resp)
	return resp, err
}

// Logout notifies the backend that the session is ending. Callers treat a
// failure here as best-effort; local cleanup proceeds regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, nil)
}

// LoginURL is the browser redirect target that starts the OAuth login flow.
// It is opened in a browser, never fetched.
func (c *Client) LoginURL() string {
	return c.baseURL + "/auth/login"
}

// ConnectURL is the browser redirect target that starts the YouTube
// authorization flow for the given session token.
func (c *Client) ConnectURL(token string) string {
	return c.baseURL + "/youtube/auth?token=" + url.QueryEscape(token)
}

// StreamURL returns the direct media URL for a stored file. Any path
// components are stripped so only the base filename is sent.
func (c *Client) StreamURL(filename string) string {
	return c.baseURL + "/videos/stream/" + url.PathEscape(path.Base(filename))
}
