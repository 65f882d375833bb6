// wireframe - software 3D wireframe viewer
// Renders boxes, spheres, cylinders, cones and glTF models described by an
// XML scene in the terminal, in a window, or to a PNG file.
//
// Controls:
//
//	W/S         - Move forward/backward
//	A/D         - Strafe left/right
//	Up/Down     - Tilt the view
//	Left/Right  - Turn the view
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/taigrr/wireframe/pkg/control"
	"github.com/taigrr/wireframe/pkg/models"
	"github.com/taigrr/wireframe/pkg/render"
	"github.com/taigrr/wireframe/pkg/scene"
)

//go:embed scene.xml
var defaultScene []byte

const (
	defaultSize = 600
	defaultName = "default scene"
)

var (
	mode       = flag.String("mode", "terminal", "Output: terminal, window or headless")
	width      = flag.Int("width", 0, "Raster width (default: terminal width, or 600)")
	height     = flag.Int("height", 0, "Raster height (default: terminal height, or 600)")
	targetFPS  = flag.Int("fps", 60, "Target FPS")
	frameCount = flag.Int("frames", 1, "Frames to render in headless mode")
	outPath    = flag.String("out", "frame.png", "PNG output path in headless mode")
	smooth     = flag.Bool("smooth", false, "Ease camera motion in and out")
	showHUD    = flag.Bool("hud", false, "Show the HUD overlay")
	exportPath = flag.String("export", "", "Write the scene meshes to a GLB file and exit")
	logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

var errUnknownMode = errors.New("unknown mode")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wireframe - Software 3D Wireframe Viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wireframe [options] [scene.xml]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S         - Move forward/backward\n")
		fmt.Fprintf(os.Stderr, "  A/D         - Strafe left/right\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     - Tilt the view\n")
		fmt.Fprintf(os.Stderr, "  Left/Right  - Turn the view\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath string) error {
	if err := setupLogger(*logLevel); err != nil {
		return err
	}

	sc, name, err := loadScene(scenePath)
	if err != nil {
		return err
	}
	meshes, err := sc.Meshes()
	if err != nil {
		return fmt.Errorf("build meshes: %w", err)
	}
	cam, err := sc.Camera()
	if err != nil {
		return err
	}

	if *exportPath != "" {
		if err := models.SaveGLB(*exportPath, meshes); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		render.Logger().Info("exported", "path", *exportPath, "meshes", len(meshes))
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	v := &viewer{
		name:   name,
		meshes: meshes,
		camera: cam,
		flags:  &control.Flags{},
		hud:    NewHUD(name, triangleCount(meshes)),
	}
	v.hud.SetVisible(*showHUD)

	switch *mode {
	case "terminal":
		return runTerminal(ctx, v)
	case "window":
		return runWindow(ctx, v)
	case "headless":
		return runHeadless(ctx, v)
	default:
		return fmt.Errorf("%w: %q", errUnknownMode, *mode)
	}
}

func setupLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(l)
	render.SetLogger(l)
	return nil
}

func loadScene(path string) (*scene.Scene, string, error) {
	if path == "" {
		sc, err := scene.Parse(bytes.NewReader(defaultScene))
		if err != nil {
			return nil, "", fmt.Errorf("default scene: %w", err)
		}
		return sc, defaultName, nil
	}
	sc, err := scene.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("load scene: %w", err)
	}
	return sc, filepath.Base(path), nil
}

func triangleCount(meshes []*models.Mesh) int {
	n := 0
	for _, m := range meshes {
		n += m.TriangleCount()
	}
	return n
}

// rasterSize picks the raster size from the flags, falling back to def.
func rasterSize(defW, defH int) (int, int) {
	w, h := defW, defH
	if *width > 0 {
		w = *width
	}
	if *height > 0 {
		h = *height
	}
	return w, h
}
