package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"storefront/internal/api"
	"storefront/internal/tracking"
	"storefront/pkg/config"
	"storefront/pkg/kafka"
	"storefront/pkg/metrics"
	"storefront/pkg/rabbitmq"

	_ "storefront/docs"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// @title           Storefront Tracking API
// @version         1.0
// @description     Ingests storefront analytics calls and forwards them to the configured sink.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.Logger("api-service"))
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("api")

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	tr := tracking.New(tracking.WithLogger(logger.Named("tracker")))

	// The sink attaches once its broker is reachable; until then calls are dropped.
	lifecycle := &sinkLifecycle{tracker: tr}
	go func() {
		pub, closer, err := connectPublisher(ctx, cfg, logger)
		if err != nil {
			logger.Error("analytics sink unavailable", zap.String("driver", cfg.SinkDriver), zap.Error(err))
			return
		}
		if pub == nil {
			logger.Info("analytics sink disabled")
			return
		}
		if !lifecycle.attach(tracking.InstrumentSink(tracking.NewPublisherSink(pub), recorder), closer) {
			logger.Info("shutdown in progress, sink discarded")
			return
		}
		logger.Info("analytics sink attached", zap.String("driver", cfg.SinkDriver))
	}()

	handler := api.NewEventHandler(tr, cfg.StoreName, recorder, logger)
	router := api.NewRouter(handler, metrics.MetricsHandler())

	srv := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	go func() {
		logger.Info("listening", zap.String("port", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	if err := lifecycle.shutdown(); err != nil {
		logger.Warn("error closing sink", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}

// sinkLifecycle attaches a sink that connects in the background and makes
// sure one arriving after shutdown is closed instead of attached.
type sinkLifecycle struct {
	mu       sync.Mutex
	tracker  *tracking.Tracker
	closer   io.Closer
	shutDown bool
}

// attach installs sink unless shutdown has begun, in which case closer is
// closed and false is returned.
func (l *sinkLifecycle) attach(sink tracking.Sink, closer io.Closer) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.shutDown {
		_ = closer.Close()
		return false
	}
	l.closer = closer
	l.tracker.Attach(sink)
	return true
}

// shutdown detaches the sink and closes its transport.
func (l *sinkLifecycle) shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.shutDown = true
	l.tracker.Attach(nil)
	if l.closer == nil {
		return nil
	}
	closer := l.closer
	l.closer = nil
	return closer.Close()
}

// connectPublisher dials the transport selected by SINK_DRIVER. A nil
// publisher with a nil error means tracking is disabled.
func connectPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (tracking.EventPublisher, io.Closer, error) {
	switch cfg.SinkDriver {
	case "rabbitmq":
		conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, logger.Named("rabbitmq"))
		if err != nil {
			return nil, nil, err
		}
		pub, err := rabbitmq.NewPublisher(conn, logger.Named("rabbitmq"))
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return pub, closeAll{pub, conn}, nil
	case "kafka":
		prod, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger.Named("kafka"))
		if err != nil {
			return nil, nil, err
		}
		return prod, prod, nil
	case "none", "":
		return nil, nil, nil
	default:
		return nil, nil, errors.New("unknown sink driver " + cfg.SinkDriver)
	}
}

// closeAll closes its members in order and returns the first error.
type closeAll []io.Closer

func (cs closeAll) Close() error {
	var first error
	for _, c := range cs {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
