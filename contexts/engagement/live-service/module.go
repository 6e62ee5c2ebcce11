package liveservice

import (
	"log/slog"

	httpadapter "leadrail/contexts/engagement/live-service/adapters/http"
	redisadapter "leadrail/contexts/engagement/live-service/adapters/redis"
	"leadrail/contexts/engagement/live-service/application"
	"leadrail/contexts/engagement/live-service/ports"

	"github.com/go-redis/redis/v8"
)

type Module struct {
	Hub         *application.Hub
	Broadcaster ports.Broadcaster
	Handler     httpadapter.Handler
	Bridge      *redisadapter.Bridge
}

// NewModule builds the live hub. When a Redis client is provided the
// broadcaster also relays events across API instances; the caller is
// responsible for running Module.Bridge.
func NewModule(client *redis.Client, logger *slog.Logger) Module {
	hub := application.NewHub(logger)
	module := Module{
		Hub: hub,
		Handler: httpadapter.Handler{
			Hub:    hub,
			Logger: logger,
		},
		Broadcaster: hub,
	}
	if client != nil {
		bridge := redisadapter.NewBridge(client, hub, logger)
		module.Bridge = bridge
		module.Broadcaster = bridge
	}
	return module
}
