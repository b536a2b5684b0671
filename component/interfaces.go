package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a lifecycle-managed piece of infrastructure.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is what a component reports about itself in the startup
// summary.
type Description struct {
	// Name is the display name; Name() is used when empty.
	Name string
	// Type groups components in the summary: "server", "storage", "provider".
	Type    string
	Details string
	Port    int
}

// Describable is optionally implemented by components listed in the
// startup summary.
type Describable interface {
	Describe() Description
}

// Route is a registered HTTP route.
type Route struct {
	Method  string
	Path    string
	Handler string
}

// RouteProvider is implemented by the server component to list its routes.
type RouteProvider interface {
	Routes() []Route
}

// Overall folds component health into one status: unhealthy wins over
// degraded, degraded over healthy.
func Overall(results []Health) HealthStatus {
	status := StatusHealthy
	for _, h := range results {
		switch h.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}
