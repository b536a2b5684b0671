// Command speech-api serves speech transcription over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/speechkit/api"
	"github.com/kbukum/speechkit/audio"
	"github.com/kbukum/speechkit/audio/ffmpeg"
	"github.com/kbukum/speechkit/audio/wav"
	"github.com/kbukum/speechkit/bootstrap"
	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/config"
	"github.com/kbukum/speechkit/logger"
	"github.com/kbukum/speechkit/observability"
	"github.com/kbukum/speechkit/server"
	"github.com/kbukum/speechkit/storage"
	_ "github.com/kbukum/speechkit/storage/local"
	"github.com/kbukum/speechkit/transcription"
	"github.com/kbukum/speechkit/transcription/parakeet"
	"github.com/kbukum/speechkit/transcription/whisper"
	"github.com/kbukum/speechkit/version"
)

// shutdownMargin is added to the listener's drain time so components
// stopped after it still get time to finish.
const shutdownMargin = 5 * time.Second

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	configFile := flags.String("config", "", "config file; searched under cmd/"+serviceName+" when empty")
	envFile := flags.String("env-file", "", ".env file; searched next to the config when empty")
	showVersion := flags.Bool("version", false, "print the build version and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Println(version.GetShortVersion())
		return nil
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, config.WithConfigFile(*configFile), config.WithEnvFile(*envFile)); err != nil {
		return err
	}
	cfg.Version = version.Resolve(cfg.Version)
	cfg.ApplyDefaults()

	opts := []bootstrap.Option{
		bootstrap.WithGracefulTimeout(time.Duration(cfg.Server.ShutdownTimeout)*time.Second + shutdownMargin),
	}
	if cfg.Logging.Output == "stderr" {
		opts = append(opts, bootstrap.WithSummaryOutput(os.Stderr))
	}
	app, err := bootstrap.NewApp(&cfg, opts...)
	if err != nil {
		return err
	}
	log := app.Logger

	telemetry, err := observability.NewTelemetry(cfg.Observability, cfg.Name, cfg.Version, cfg.Environment)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	store := storage.NewComponent(cfg.Storage)
	models := transcription.NewComponent(cfg.Transcription,
		transcription.WithFactory(parakeet.ProviderName, parakeet.Factory()),
		transcription.WithFactory(whisper.ProviderName, whisper.Factory()),
	)

	normalizer := audio.NewNormalizer(newDecoder(cfg.Audio, log), store.Dir(), cfg.Audio.SampleRate)
	invoker := transcription.NewInvoker(models.Manager(),
		transcription.WithLanguage(cfg.Transcription.Language),
		transcription.WithLogger(log),
		transcription.WithMetrics(telemetry.Metrics()),
	)
	handler := api.NewHandler(store, normalizer, invoker,
		api.WithLogger(log),
		api.WithMetrics(telemetry.Metrics()),
		api.WithServiceName(cfg.Name),
		api.WithUploadLimit(cfg.Storage.MaxFileSize),
	)

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(cfg.Name, app.Components.HealthAll)
	handler.Register(srv.GinEngine())

	// Start order: telemetry, scratch storage, model providers, then the
	// listener. Stop runs in reverse so the listener drains first.
	for _, c := range []component.Component{telemetry, store, models, srv} {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}

	app.OnStart(func(ctx context.Context) error {
		p, err := models.Manager().Get(ctx)
		if err != nil {
			log.WithError(err).Warn("No transcription provider selectable yet")
			return nil
		}
		log.Info("Transcription provider selected", logger.Fields(logger.FieldProvider, p.Name(), "available", p.IsAvailable(ctx)))
		return nil
	})
	app.OnReady(func(context.Context) error {
		log.Info("Accepting requests", logger.Fields("address", srv.Addr(), "build", version.GetShortVersion()))
		return nil
	})

	return app.Run(ctx)
}

// newDecoder decodes native extensions in-process and hands everything
// else to ffmpeg when it is installed.
func newDecoder(cfg audio.Config, log *logger.Logger) audio.Decoder {
	var fallback audio.Decoder
	ff := ffmpeg.NewDecoder(cfg.FFmpeg)
	if ff.Available() {
		fallback = ff
	} else {
		log.Warn("ffmpeg not found, only native formats are accepted", map[string]interface{}{
			"native_extensions": cfg.NativeExtensions,
			"ffmpeg_path":       cfg.FFmpeg.FFmpegPath,
		})
	}
	return audio.NewDispatcher(wav.NewDecoder(), fallback, cfg.NativeExtensions...)
}
