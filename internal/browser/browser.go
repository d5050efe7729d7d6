package browser

import (
	"errors"
	"os/exec"
	"runtime"
)

// Opener launches URLs in the user's default browser. The OAuth initiation
// endpoints are redirect targets; opening them hands control to the browser
// until the backend redirects back to the callback listener.
type Opener struct {
	// Command overrides the platform launcher, for tests.
	Command func(url string) *exec.Cmd
}

// Open launches the URL in the default browser.
func (o Opener) Open(url string) error {
	cmd := o.command(url)
	if cmd == nil {
		return errors.New("browser: no launcher available for this platform")
	}
	return cmd.Start()
}

func (o Opener) command(url string) *exec.Cmd {
	if o.Command != nil {
		return o.Command(url)
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
