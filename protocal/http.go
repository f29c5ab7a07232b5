package protocal

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"line-webhook-gateway/configs"
	httpAdapter "line-webhook-gateway/internal/adapters/input/http"
	lineAdapter "line-webhook-gateway/internal/adapters/output/line"
	"line-webhook-gateway/internal/application"
	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/pkg/telemetry"

	"github.com/fsnotify/fsnotify"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const serviceName = "line-webhook-gateway"

type config struct {
	ENV  string `mapstructure:"env"`
	Path string `mapstructure:"path"`
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.StringVar(&cfg.Path, "config", "./configs", "directory holding config files")
	flag.Parse()

	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Failed to load .env: %v", err)
	}
	conf, err := configs.Load(cfg.Path, cfg.ENV)
	if err != nil {
		return err
	}
	configureLogger(conf.App)
	logrus.Infof("Starting %s: env=%s, reply_mode=%s", serviceName, conf.App.Env, conf.Line.ReplyMode)

	if file := conf.File(); file != "" {
		watcher, err := configs.Watch(file, func(e fsnotify.Event) {
			logrus.Warnf("Config file has changed: %s (restart to apply)", e.Name)
		})
		if err != nil {
			logrus.Warnf("Config file is not watched: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	shutdownTracer := func(context.Context) error { return nil }
	if conf.App.Tracing {
		shutdownTracer = telemetry.InitTracer(serviceName, conf.App.Env)
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ErrorHandler:          httpAdapter.ErrorHandler,
		DisableStartupMessage: !conf.App.Debug,
	})
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: httpAdapter.RequestIDKey,
	}))
	// the logger wraps recover so recovered panics still get an access log line
	app.Use(httpAdapter.RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-Line-Signature",
	}))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logrus.Println("Gracefull shut down ...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("Error when shutdown server: %v", err)
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logrus.Errorf("Error when flushing traces: %v", err)
		}
	}()

	// Wire up the hexagonal architecture layers
	// Output adapter (LINE client)
	lineClient, err := lineAdapter.NewLineClientAdapter(conf.Line.ChannelAccessToken, conf.Line.APIEndpoint)
	if err != nil {
		return err
	}
	// Application services (use cases)
	lineWebhookSrv := application.NewLineWebhookService(lineClient, domain.ReplyMode(conf.Line.ReplyMode))
	zendeskWebhookSrv := application.NewZendeskWebhookService()
	// Input adapters (HTTP handlers)
	httpAdapter.RegisterRoutes(app,
		httpAdapter.New(),
		httpAdapter.NewLineWebhookHandler(lineWebhookSrv, conf.Line.ChannelSecret),
		httpAdapter.NewZendeskWebhookHandler(zendeskWebhookSrv),
	)

	logrus.Println("Listening on port: ", conf.App.Port)
	return app.Listen(":" + conf.App.Port)
}

func configureLogger(app configs.App) {
	level, err := logrus.ParseLevel(app.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if app.Debug {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if app.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
