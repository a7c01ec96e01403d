package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/df07/go-simd-raytracer/pkg/imageio"
	"github.com/df07/go-simd-raytracer/pkg/loaders"
	"github.com/df07/go-simd-raytracer/pkg/renderer"
	"github.com/df07/go-simd-raytracer/pkg/scene"
	"github.com/segmentio/encoding/json"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Set at build.
var version = "v0.1.0"

// Keeps the option names readable when the binary is obfuscated.
var _ = reflect.TypeOf(config{})

type config struct {
	Scene        string `cli:""        env:"RAYTRACER_SCENE"         help:"Built-in scene (default|single)."`
	SceneFile    string `cli:""        env:"RAYTRACER_SCENE_FILE"    help:"JSON scene file to render instead of a built-in scene."`
	Width        int    `cli:""        env:"RAYTRACER_WIDTH"         help:"Image width in pixels."`
	Height       int    `cli:""        env:"RAYTRACER_HEIGHT"        help:"Image height in pixels."`
	Threads      int    `cli:""        env:"RAYTRACER_THREADS"       help:"Number of row workers. Must divide the height."`
	SampleGroups int    `cli:""        env:"RAYTRACER_SAMPLE_GROUPS" help:"Clusters of 8 rays traced per pixel."`
	MaxDepth     int    `cli:""        env:"RAYTRACER_MAX_DEPTH"     help:"Maximum number of bounces."`
	Seed         int    `cli:",hidden" env:"RAYTRACER_SEED"          help:"Base seed for the sampler."`
	Background   string `cli:""        env:"RAYTRACER_BACKGROUND"    help:"Background preset overriding the scene (white|sky|night)."`
	Output       string `cli:""        env:"RAYTRACER_OUTPUT"        help:"Output image path. Defaults to output/<scene>/render_<timestamp>.png."`
	Format       string `cli:""        env:"RAYTRACER_FORMAT"        help:"Image format when the output has no extension (png|bmp|tiff)."`
	Annotate     bool   `cli:""        env:"RAYTRACER_ANNOTATE"      help:"Stamp render statistics onto the image."`
	LogLevel     string `cli:""        env:"RAYTRACER_LOG_LEVEL"     help:"Log level (debug|info|warning|error)."`
	LogIndent    bool   `cli:""        env:"RAYTRACER_LOG_INDENT"    help:"Indent logs."`
	Version      bool   `cli:""        env:"-"                       help:"Show version."`
	Help         bool   `cli:""        env:"-"                       help:"Show help."`
}

func defaultConfig() config {
	rc := renderer.DefaultConfig()
	return config{
		Scene:        "default",
		Width:        rc.Width,
		Height:       rc.Height,
		Threads:      rc.Threads,
		SampleGroups: rc.SampleGroups,
		MaxDepth:     rc.MaxDepth,
		Format:       string(imageio.PNG),
		LogLevel:     logs.InfoLevel.String(),
	}
}

func main() {
	conf := defaultConfig()

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Renders a sphere scene with the 8-wide path tracer.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	path, err := run(ctx, conf, time.Now())
	if err != nil {
		logs.Fatal(err)
	}
	logs.WithTag("path", path).Info("render saved")
}

func validateConfig(conf config) error {
	if conf.Background != "" {
		if _, ok := scene.BackgroundByName(conf.Background); !ok {
			return errors.New("unknown background").
				WithType(renderer.ErrTypeInvalidConfig).
				WithTag("background", conf.Background)
		}
	}

	if _, err := imageio.ParseFormat(conf.Format); err != nil {
		return err
	}

	if err := rendererConfig(conf).Validate(); err != nil {
		return errors.New("invalid render options").Wrap(err)
	}
	return nil
}

func rendererConfig(conf config) renderer.Config {
	rc := renderer.DefaultConfig()
	rc.Width = conf.Width
	rc.Height = conf.Height
	rc.Threads = conf.Threads
	rc.SampleGroups = conf.SampleGroups
	rc.MaxDepth = conf.MaxDepth
	rc.Seed = uint32(conf.Seed)
	return rc
}

// createScene loads a scene file when one is given, otherwise the named
// built-in scene
func createScene(name, file string) (*scene.Scene, error) {
	if file != "" {
		return loaders.LoadSceneFile(file)
	}
	return scene.NewBuiltinScene(name)
}

// outputPath resolves where the image goes and in which format
func outputPath(conf config, now time.Time) (string, imageio.Format, error) {
	if conf.Output == "" {
		format, err := imageio.ParseFormat(conf.Format)
		if err != nil {
			return "", "", err
		}

		name := conf.Scene
		if conf.SceneFile != "" {
			name = "file"
		}
		filename := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format)
		return filepath.Join("output", name, filename), format, nil
	}

	if filepath.Ext(conf.Output) == "" {
		format, err := imageio.ParseFormat(conf.Format)
		if err != nil {
			return "", "", err
		}
		return conf.Output + "." + string(format), format, nil
	}

	format, err := imageio.FormatFromPath(conf.Output)
	return conf.Output, format, err
}

// run renders one frame and writes it to disk, returning the image path
func run(ctx context.Context, conf config, now time.Time) (string, error) {
	s, err := createScene(conf.Scene, conf.SceneFile)
	if err != nil {
		return "", errors.New("creating scene failed").Wrap(err)
	}
	if conf.Background != "" {
		s.Background, _ = scene.BackgroundByName(conf.Background)
	}

	path, format, err := outputPath(conf, now)
	if err != nil {
		return "", err
	}

	r, err := renderer.NewRenderer(s, rendererConfig(conf))
	if err != nil {
		return "", err
	}

	logs.WithTag("scene", conf.Scene).
		WithTag("scene_file", conf.SceneFile).
		WithTag("spheres", s.GetPrimitiveCount()).
		WithTag("width", conf.Width).
		WithTag("height", conf.Height).
		WithTag("threads", conf.Threads).
		Info("rendering")

	buf := make([]byte, r.Config().BufferSize())
	stats, err := r.Render(buf, s.GetCameraOrigin())
	if err != nil {
		return "", errors.New("rendering failed").Wrap(err)
	}
	if err := ctx.Err(); err != nil {
		return "", errors.New("render interrupted").Wrap(err)
	}

	summary := summarize(stats)
	logs.WithTag("duration", stats.Duration).
		WithTag("bounces", stats.Bounces).
		Info(summary)

	img, err := imageio.ToImage(buf, conf.Width, conf.Height)
	if err != nil {
		return "", err
	}
	if conf.Annotate {
		if err := imageio.Annotate(img, summary); err != nil {
			return "", err
		}
	}

	if err := writeImage(path, format, img); err != nil {
		return "", err
	}
	return path, nil
}

// summarize formats render statistics with thousands separators
func summarize(stats renderer.RenderStats) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d rays in %.2fs (%.0f rays/s, %.2f bounces per cluster)",
		stats.TotalSamples,
		stats.Duration.Seconds(),
		stats.RaysPerSecond(),
		stats.AverageBounces(),
	)
}

func writeImage(path string, format imageio.Format, img *image.RGBA) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.New("creating output directory failed").
			WithTag("path", path).
			Wrap(err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.New("creating output file failed").
			WithTag("path", path).
			Wrap(err)
	}
	return encodeAndClose(f, path, format, img)
}

// encodeAndClose writes img to w and closes it, reporting the close error
// when the encode succeeded
func encodeAndClose(w io.WriteCloser, path string, format imageio.Format, img image.Image) error {
	if err := imageio.Encode(w, format, img); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return errors.New("closing output file failed").
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}
