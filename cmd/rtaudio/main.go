// Command rtaudio analyses a mono audio stream block by block and broadcasts
// the features of every block to WebSocket viewers.
//
// Usage:
//
//	rtaudio [flags]
//
// Examples:
//
//	rtaudio
//	rtaudio -config rtaudio.yaml
//	arecord -q -t raw -f FLOAT_LE -c 1 -r 44100 | rtaudio -source pcm
//	ffmpeg -i song.mp3 -f f32le -ac 1 -ar 44100 - | rtaudio -source pcm -listen :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/martinblech/rtaudio/dsp/core"
	"github.com/martinblech/rtaudio/internal/config"
	"github.com/martinblech/rtaudio/internal/observe"
	"github.com/martinblech/rtaudio/internal/server"
	"github.com/martinblech/rtaudio/measure/features"
	"github.com/martinblech/rtaudio/stream"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a YAML configuration file (optional)")
	var ov overrides
	flag.StringVar(&ov.listen, "listen", "", "HTTP listen address, e.g. :3000")
	flag.StringVar(&ov.source, "source", "", "block source: signal or pcm")
	flag.StringVar(&ov.input, "input", "", "pcm input file, or - for stdin")
	flag.StringVar(&ov.logLevel, "log-level", "", "log level: debug, info, warn or error")
	origins := flag.String("allow-origin", "", "comma-separated WebSocket origin patterns allowed besides same-origin")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rtaudio [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Analyses mono audio and serves per-block features on /ws.\n")
		fmt.Fprintf(os.Stderr, "The pcm source expects little-endian float32 samples.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath, ov)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rtaudio: %v\n", err)
		return 1
	}

	logger := observe.NewLogger(os.Stderr, cfg.Server.LogLevel)
	slog.SetDefault(logger)

	slog.Info("rtaudio starting",
		"version", version,
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"source", cfg.Source.Kind,
		"sample_rate", cfg.Audio.SampleRate,
		"buffer_size", cfg.Audio.BufferSize,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "rtaudio",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise metrics", "err", err)
		return 1
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			slog.Warn("metrics shutdown", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	pipeline, err := features.NewPipeline(
		core.WithSampleRate(cfg.Audio.SampleRate),
		core.WithBlockSize(cfg.Audio.BufferSize),
	)
	if err != nil {
		slog.Error("failed to build pipeline", "err", err)
		return 1
	}

	src, err := openSource(cfg, pipeline.Config())
	if err != nil {
		slog.Error("failed to open source", "err", err)
		return 1
	}
	defer func() {
		if err := src.Close(); err != nil {
			slog.Warn("source close", "err", err)
		}
	}()

	hubOpts := []server.HubOption{server.WithLogger(logger), server.WithMetrics(metrics)}
	if *origins != "" {
		hubOpts = append(hubOpts, server.WithOriginPatterns(strings.Split(*origins, ",")...))
	}
	hub := server.NewHub(hubOpts...)

	st := stream.New(pipeline, src, hub.Publish,
		stream.WithReadTimeout(cfg.Source.ReadTimeout),
		stream.WithLogger(logger),
		stream.WithMetrics(metrics),
	)

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           hub.Handler(streamChecker(st, readinessWindow(cfg))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := serve(ctx, st, hub, httpServer); err != nil {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// serve runs the stream and the HTTP server until either fails, the stream
// ends or ctx is cancelled, then shuts both down.
func serve(ctx context.Context, st *stream.Stream, hub *server.Hub, httpServer *http.Server) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return st.Run(gctx)
	})

	g.Go(func() error {
		slog.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// streamChecker reports ready once the stream has processed a block within
// window.
func streamChecker(st *stream.Stream, window time.Duration) server.Checker {
	return server.Checker{
		Name: "stream",
		Check: func(context.Context) error {
			last := st.LastBlock()
			if last.IsZero() {
				return errors.New("no block processed yet")
			}
			if age := time.Since(last); age > window {
				return fmt.Errorf("last block %s ago", age.Round(time.Millisecond))
			}
			return nil
		},
	}
}

// readinessWindow allows a few block periods of jitter, or the read timeout
// if that is longer.
func readinessWindow(cfg *config.Config) time.Duration {
	block := time.Duration(float64(cfg.Audio.BufferSize) / cfg.Audio.SampleRate * float64(time.Second))
	return max(4*block, cfg.Source.ReadTimeout)
}
