package models

// User is the profile record returned by the backend's /user endpoint.
type User struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Session is an immutable snapshot of the locally persisted auth state.
// Mutation happens through the session store; callers receive fresh copies.
type Session struct {
	Token            string
	User             *User
	YouTubeConnected bool
	YouTubeToken     string
}

// IsAuthenticated reports whether the snapshot carries a usable identity.
// Both the bearer token and the user record must be present.
func (s Session) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// TokenResponse is the body returned by POST /auth/token when exchanging an
// authorization code.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

// VideoAsset describes a file managed by the backend. The client never
// mutates assets; it lists them, streams them, or requests deletion by path.
type VideoAsset struct {
	Filename  string `json:"filename"`
	FilePath  string `json:"file_path"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// VideoList is the response of the /videos/downloaded and /videos/converted
// endpoints.
type VideoList struct {
	Videos     []VideoAsset `json:"videos"`
	TotalCount int          `json:"total_count"`
	FolderPath string       `json:"folder_path"`
}

// DownloadResult is the response of POST /download.
type DownloadResult struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	FilePath  string         `json:"file_path"`
	Filename  string         `json:"filename"`
	VideoInfo map[string]any `json:"video_info"`
}

// ConvertResult is the response of POST /convert.
type ConvertResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`
	OutputName string `json:"output_name"`
}

// UploadResult is the response of POST /youtube/upload.
type UploadResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	YouTubeURL string `json:"youtube_url,omitempty"`
}

// DeleteResult is the response of DELETE /videos/delete.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
