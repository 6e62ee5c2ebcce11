package automationservice

import (
	"log/slog"

	httpadapter "leadrail/contexts/engagement/automation-service/adapters/http"
	"leadrail/contexts/engagement/automation-service/adapters/memory"
	"leadrail/contexts/engagement/automation-service/application"
	"leadrail/contexts/engagement/automation-service/ports"
)

type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Templates  ports.TemplateRepository
	Deliveries ports.DeliveryRepository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Templates:  deps.Templates,
		Deliveries: deps.Deliveries,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed memory.Seed, deps Dependencies) Module {
	store := memory.NewStore(seed)
	deps.Templates = store
	deps.Deliveries = store
	if deps.Clock == nil {
		deps.Clock = store
	}
	if deps.IDGen == nil {
		deps.IDGen = store
	}
	module := NewModule(deps)
	module.Store = store
	return module
}

// NewDeliveryWorker builds the queue drainer run by the worker binary.
func NewDeliveryWorker(deps Dependencies, alimTalk ports.AlimTalkSender, email ports.EmailSender) application.DeliveryWorker {
	return application.DeliveryWorker{
		Deliveries: deps.Deliveries,
		AlimTalk:   alimTalk,
		Email:      email,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
}
