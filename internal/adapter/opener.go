package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Opener hands an image URL to an external viewer
type Opener struct {
	command string   // configured viewer command, empty for auto-detect
	args    []string // additional arguments for the viewer
	logger  *slog.Logger

	goos string

	// process hooks, swapped in tests
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
	run      func(name string, args ...string) error
}

// launchPath defines a single way to launch a viewer
type launchPath struct {
	path      string   // Command path: "feh", "imv", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command
}

// viewers registry - platform launch paths per viewer
var viewers = map[string]map[string][]launchPath{
	"preview": {
		"darwin": {{path: "open-a:Preview"}},
	},
	"feh": {
		"linux": {{path: "feh"}},
	},
	"imv": {
		"linux": {{path: "imv"}},
	},
	"eog": {
		"linux": {{path: "eog"}},
	},
}

// candidateViewers defines the preferred viewer order for each platform
var candidateViewers = map[string][]string{
	"darwin": {"preview"},
	"linux":  {"imv", "feh", "eog"},
}

// NewOpener creates an Opener. An empty command means detect a viewer, then fall
// back to the system default handler.
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command:  command,
		args:     args,
		logger:   logger,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
		// open -a exits non-zero when the app is missing, so wait for it
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// NewOpenerFromConfig creates an Opener from the viewer section of the config
func NewOpenerFromConfig(cfg *Config, logger *slog.Logger) *Opener {
	return NewOpener(cfg.Viewer.Command, cfg.Viewer.Args, logger)
}

// Open launches the viewer for url without waiting for it to exit
func (o *Opener) Open(url string) error {
	if url == "" {
		return fmt.Errorf("image has no url")
	}

	if o.command != "" {
		args := append(append([]string{}, o.args...), url)
		o.logger.Info("launching configured viewer", "command", o.command, "args", args)
		return o.start(o.command, args...)
	}

	if name, err := o.detectAndLaunch(url); err == nil {
		o.logger.Info("launched with detected viewer", "viewer", name)
		return nil
	}

	o.logger.Info("no candidate viewers found, using system default")
	return o.launchDefault(url)
}

// detectAndLaunch tries candidate viewers in order.
// Returns the viewer name that succeeded.
func (o *Opener) detectAndLaunch(url string) (string, error) {
	for _, name := range candidateViewers[o.goos] {
		for _, lp := range viewers[name][o.goos] {
			var err error
			if strings.HasPrefix(lp.path, "open-a:") {
				args := append(append([]string{}, lp.openFlags...), "-a", strings.TrimPrefix(lp.path, "open-a:"), url)
				err = o.run("open", args...)
			} else {
				if _, err = o.lookPath(lp.path); err == nil {
					err = o.start(lp.path, url)
				}
			}
			if err == nil {
				return name, nil
			}
			o.logger.Debug("launch path not available", "viewer", name, "path", lp.path, "error", err)
		}
	}
	return "", fmt.Errorf("no candidate viewers found")
}

// launchDefault opens the URL using the system default handler
func (o *Opener) launchDefault(url string) error {
	o.logger.Info("launching with system default", "os", o.goos, "url", url)

	switch o.goos {
	case "darwin":
		return o.start("open", url)
	case "windows":
		return o.start("cmd", "/c", "start", "", url)
	default:
		return o.start("xdg-open", url)
	}
}
