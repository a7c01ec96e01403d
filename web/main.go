package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"runtime"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/df07/go-simd-raytracer/web/server"
	"github.com/segmentio/encoding/json"
)

// Keeps the option names readable when the binary is obfuscated.
var _ = reflect.TypeOf(config{})

type config struct {
	Addr       string `cli:""        env:"RAYTRACER_ADDR"        help:"Listening address for API requests."`
	AdminAddr  string `cli:""        env:"RAYTRACER_ADMIN_ADDR"  help:"Admin listening address serving metrics."`
	ScenesDir  string `cli:""        env:"RAYTRACER_SCENES_DIR"  help:"Directory scanned for JSON scene files."`
	StaticDir  string `cli:",hidden" env:"RAYTRACER_STATIC_DIR"  help:"Directory of static files served at /."`
	MaxThreads int    `cli:""        env:"RAYTRACER_MAX_THREADS" help:"Maximum number of row workers per frame."`
	LogLevel   string `cli:""        env:"RAYTRACER_LOG_LEVEL"   help:"Log level (debug|info|warning|error)."`
	LogIndent  bool   `cli:""        env:"RAYTRACER_LOG_INDENT"  help:"Indent logs."`
	Help       bool   `cli:""        env:"-"                     help:"Show help."`
}

func main() {
	conf := config{
		Addr:       ":8080",
		AdminAddr:  ":18080",
		ScenesDir:  "scenes",
		MaxThreads: runtime.NumCPU(),
		LogLevel:   logs.InfoLevel.String(),
	}

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Serves rendered frames over HTTP.").
		Options(&conf)
	cli.Load()

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if conf.MaxThreads <= 0 {
		logs.Fatal(errors.New("max threads must be positive").
			WithTag("max_threads", conf.MaxThreads))
	}

	srv := server.NewServer(server.Options{
		ScenesDir:  conf.ScenesDir,
		StaticDir:  conf.StaticDir,
		MaxThreads: conf.MaxThreads,
	})

	logs.WithTag("addr", conf.Addr).
		WithTag("admin_addr", conf.AdminAddr).
		WithTag("scenes_dir", conf.ScenesDir).
		WithTag("log_level", conf.LogLevel).
		Info(fmt.Sprintf("visit http://localhost%s/api/frame to render", conf.Addr))

	server.ListenAndServe(ctx,
		&http.Server{Addr: conf.Addr, Handler: srv.Handler()},
		&http.Server{Addr: conf.AdminAddr, Handler: srv.AdminHandler()},
	)
}
