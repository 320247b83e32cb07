package extd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mustyfdn/app-portal/assets"
	"github.com/mustyfdn/app-portal/container"
	"github.com/mustyfdn/app-portal/pkg/tracer"
	"github.com/mustyfdn/app-portal/transport/restapi"
	"github.com/satori/uuid"
	"github.com/yusufsyaifudin/ylog"
	jaegerPropagator "go.opentelemetry.io/contrib/propagators/jaeger"
	"go.opentelemetry.io/contrib/propagators/ot"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// RunServer boots the whole portal: database migrations, repositories,
// services and the HTTP transport. It blocks until SIGINT/SIGTERM or until
// the listener dies.
func RunServer(ctx context.Context, cfg container.Config) (err error) {

	if ctx == nil {
		ctx = context.TODO()
	}

	if cfg.TraceCollectorURL != "" {
		exp, expErr := jaeger.New(
			jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.TraceCollectorURL)),
		)
		if expErr != nil {
			ylog.Error(ctx, "cannot setup jaeger exporter", ylog.KV("error", expErr))
			return expErr
		}

		tracer.InitTraceProvider(exp, assets.ServiceName)

		// register ot propagator
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			&ot.OT{},
			&jaegerPropagator.Jaeger{},
		))
	}

	// schema first, so a fresh database works out of the box
	ylog.Info(ctx, "schema migration: starting")
	err = RunMigration(ctx, cfg, DirectionUp)
	if err != nil {
		ylog.Error(ctx, "schema migration: failed", ylog.KV("error", err))
		return
	}

	ylog.Info(ctx, "schema migration: done")

	// ** setup repositories
	ylog.Info(ctx, "container preparation: starting")
	var repositories container.Repositories
	repositories, err = container.SetupRepositories(ctx, cfg)
	defer func() {
		ylog.Info(ctx, "closing container: starting")
		if repositories == nil {
			ylog.Info(ctx, "closing container: no need to close")
			return
		}

		if _err := repositories.Close(); _err != nil {
			ylog.Error(ctx, "closing container: failed", ylog.KV("error", _err))
		}

		ylog.Info(ctx, "closing container: done")
	}()

	if err != nil {
		ylog.Error(ctx, "container preparation: failed", ylog.KV("error", err))
		return
	}

	ylog.Info(ctx, "container preparation: done")

	// ** START SERVICES using configured repositories
	ylog.Info(ctx, "services preparation: starting")
	services, err := container.SetupServices(cfg, repositories)
	if err != nil {
		ylog.Error(ctx, "services preparation: failed", ylog.KV("error", err))
		return
	}

	// ** HTTP TRANSPORT
	ylog.Info(ctx, "http transport: starting")
	serverConfig := restapi.Config{
		AppServiceName: assets.ServiceName,
		AppVersion:     "1.0.0",
		UID:            services.UIDGen(),
		AppService:     services.App(),
		AuthService:    services.Auth(),
		ProbeService:   services.Probe(),
		CompanyName:    cfg.CompanyName,
		CompanyIcon:    cfg.CompanyIcon,
	}

	server, err := restapi.NewHTTPTransport(serverConfig)
	if err != nil {
		ylog.Error(ctx, "http transport: failed", ylog.KV("error", err))
		return
	}

	httpPort := fmt.Sprintf(":%d", cfg.Port)
	h2s := &http2.Server{}
	httpServer := &http.Server{
		Addr:    httpPort,
		Handler: h2c.NewHandler(server.Server(), h2s), // HTTP/2 Cleartext handler
	}

	var apiErrChan = make(chan error, 1)
	go func() {
		ylog.Info(ctx, fmt.Sprintf("http transport: done running on port %d", cfg.Port))
		apiErrChan <- httpServer.ListenAndServe()
	}()

	ylog.Info(ctx, "system: up and running...")

	// ** listen for sigterm signal
	var signalChan = make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-signalChan:
		ylog.Info(ctx, "system: exiting...")
		ylog.Info(ctx, "http transport: exiting...")
		if _err := httpServer.Shutdown(ctx); _err != nil {
			ylog.Error(ctx, "http transport: ", ylog.KV("error", _err))
		}

	case err = <-apiErrChan:
		if err != nil {
			ylog.Info(ctx, "http transport: error", ylog.KV("error", err))
		}
	}

	return
}

// SetupLog wires the global JSON logger and injects a system tracer into the
// returned context.
func SetupLog(ctx context.Context) context.Context {

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:        "ts",
			MessageKey:     "msg",
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
			LineEnding:     zapcore.DefaultLineEnding,
			LevelKey:       "level",
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
		}),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), // pipe to multiple writer
		zapcore.DebugLevel,
	)

	zapLog := zap.New(core)

	propagateData := tracer.LogData{
		RemoteAddr: "system",
		TraceID:    uuid.NewV4().String(),
	}

	traceLog, err := ylog.NewTracer(propagateData, ylog.WithTag("tracer"))
	if err != nil {
		log.Fatalf("error prepare tracer system data: %s", err)
		return ctx
	}

	// inject context
	ctx = ylog.Inject(ctx, traceLog)

	// ** set global logger
	ylog.SetGlobalLogger(ylog.NewZap(zapLog))

	return ctx
}
