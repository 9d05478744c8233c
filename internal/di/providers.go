package di

import (
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	chathandler "campuslink/internal/chat/handler"
	"campuslink/internal/common"
	"campuslink/internal/config"
	"campuslink/internal/dbmongo"
	"campuslink/internal/dbmysql"
	"campuslink/internal/ratelimit"
	"campuslink/internal/realtime"
	"campuslink/internal/rest"
	transporthandler "campuslink/internal/transport/handler"
	transportrepository "campuslink/internal/transport/repository"
	transportservice "campuslink/internal/transport/service"
)

// Application bundles everything main needs to run and shut down.
type Application struct {
	Config *config.Config
	Logger zerolog.Logger
	DB     *gorm.DB
	Mongo  *dbmongo.MongoClient
	Redis  *redis.Client
	Hub    *realtime.Hub
	Router *mux.Router

	Locations *dbmongo.LocationStorage
}

func ProvideLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if cfg.Logging.Format == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger
}

func ProvideRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func ProvideLimiter(cfg *config.Config, rdb *redis.Client) ratelimit.Limiter {
	return ratelimit.NewRedisLimiter(rdb, cfg.Redis.RateLimit, time.Duration(cfg.Redis.RateLimitWindow)*time.Second)
}

func ProvideVerifier(cfg *config.Config, users *dbmysql.UserDirectory) common.TokenVerifier {
	return common.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, users)
}

func ProvideHub(logger zerolog.Logger) *realtime.Hub {
	return realtime.NewHub(logger)
}

func ProvideRoomBroker(hub *realtime.Hub) realtime.RoomBroker {
	return hub
}

func ProvideTransportService(repo transportrepository.TransportRepository, broker realtime.RoomBroker, cfg *config.Config, logger zerolog.Logger) transportservice.TransportService {
	return transportservice.NewTransportService(repo, broker, cfg.Transport.MinSampleInterval, logger)
}

func ProvideTransportHandler(svc transportservice.TransportService, broker realtime.RoomBroker, logger zerolog.Logger) *transporthandler.TransportHandler {
	return transporthandler.NewTransportHandler(svc, broker, logger)
}

// ProvideDispatcher builds the handler table; every channel registers its
// events here, before the first connection is accepted.
func ProvideDispatcher(logger zerolog.Logger, chat *chathandler.ChatHandler, transport *transporthandler.TransportHandler) *realtime.Dispatcher {
	d := realtime.NewDispatcher(logger)
	chat.Register(d)
	transport.Register(d)
	return d
}

func ProvideGateway(broker realtime.RoomBroker, verifier common.TokenVerifier, dispatch *realtime.Dispatcher, limiter ratelimit.Limiter, logger zerolog.Logger) *realtime.Gateway {
	return realtime.NewGateway(broker, verifier, dispatch, limiter, logger)
}

func ProvideRouter(chat *rest.ChatHandler, transport *rest.TransportHandler, gateway *realtime.Gateway, verifier common.TokenVerifier, limiter ratelimit.Limiter, logger zerolog.Logger) *mux.Router {
	return rest.NewRouter(chat, transport, gateway, verifier, limiter, logger)
}
