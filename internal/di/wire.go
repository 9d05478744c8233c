//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	chathandler "campuslink/internal/chat/handler"
	chatrepository "campuslink/internal/chat/repository"
	chatservice "campuslink/internal/chat/service"
	"campuslink/internal/config"
	"campuslink/internal/dbmongo"
	"campuslink/internal/dbmysql"
	"campuslink/internal/rest"
	transportrepository "campuslink/internal/transport/repository"
)

// InitializeApplication assembles the realtime service. Wire generates the
// real body in wire_gen.go.
func InitializeApplication() (*Application, error) {
	wire.Build(
		config.Load,
		ProvideLogger,
		dbmysql.NewMySQL,
		dbmongo.NewMongoConnection,
		dbmongo.NewLocationStorage,
		ProvideRedis,
		ProvideLimiter,
		dbmysql.NewUserDirectory,
		ProvideVerifier,
		ProvideHub,
		ProvideRoomBroker,
		chatrepository.NewChatRepository,
		chatservice.NewChatService,
		chathandler.NewChatHandler,
		transportrepository.NewTransportRepository,
		ProvideTransportService,
		ProvideTransportHandler,
		ProvideDispatcher,
		ProvideGateway,
		rest.NewChatHandler,
		rest.NewTransportHandler,
		ProvideRouter,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
