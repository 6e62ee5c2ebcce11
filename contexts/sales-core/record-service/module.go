package recordservice

import (
	"context"
	"log/slog"

	httpadapter "leadrail/contexts/sales-core/record-service/adapters/http"
	"leadrail/contexts/sales-core/record-service/adapters/memory"
	"leadrail/contexts/sales-core/record-service/application"
	"leadrail/contexts/sales-core/record-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Plan       ports.PlanGuard
	Automation ports.AutomationDispatcher
	Broadcast  ports.Broadcaster
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:       deps.Repository,
		Plan:       deps.Plan,
		Automation: deps.Automation,
		Broadcast:  deps.Broadcast,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-memory store. The plan
// guard, automation dispatcher, and broadcaster default to no-ops unless the
// caller provides them.
func NewInMemoryModule(seed memory.Seed, deps Dependencies) Module {
	store := memory.NewStore(seed)
	deps.Repository = store
	if deps.Clock == nil {
		deps.Clock = store
	}
	if deps.IDGen == nil {
		deps.IDGen = store
	}
	if deps.Plan == nil {
		deps.Plan = unlimitedPlan{}
	}
	module := NewModule(deps)
	module.Store = store
	return module
}

type unlimitedPlan struct{}

func (unlimitedPlan) CheckLimit(_ context.Context, _ string, _ string, _ int64) (ports.PlanDecision, error) {
	return ports.PlanDecision{Allowed: true}, nil
}
