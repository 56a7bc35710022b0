package declarative

import (
	"context"

	"dogctl/datadog"
	"dogctl/resource"
)

// KindOperations binds one resource kind to the remote calls the engine
// needs: fetching a live resource, creating a new one, and updating an
// existing one by identifier.
type KindOperations struct {
	Get    func(ctx context.Context, id string) (resource.Document, error)
	Create func(ctx context.Context, body resource.Document) (resource.Document, error)
	Update func(ctx context.Context, id string, body resource.Document) (resource.Document, error)
}

// Engine reconciles local resource definitions against their remote
// counterparts, dispatching on the detected resource kind.
type Engine struct {
	operations map[resource.Kind]KindOperations
}

func NewEngine(operations map[resource.Kind]KindOperations) *Engine {
	return &Engine{operations: operations}
}

// NewEngineForClient wires every supported resource kind to the
// corresponding Datadog API family.
func NewEngineForClient(client *datadog.Client) *Engine {
	return NewEngine(map[resource.Kind]KindOperations{
		resource.KindMonitor: {
			Get:    client.Monitors.Get,
			Create: client.Monitors.Create,
			Update: client.Monitors.Update,
		},
		resource.KindDashboard: {
			Get:    client.Dashboards.Get,
			Create: client.Dashboards.Create,
			Update: client.Dashboards.Update,
		},
		resource.KindSLO: {
			Get:    client.SLOs.Get,
			Create: client.SLOs.Create,
			Update: client.SLOs.Update,
		},
		resource.KindDowntime: {
			Get:    client.Downtimes.Get,
			Create: client.Downtimes.Create,
			Update: client.Downtimes.Update,
		},
	})
}
