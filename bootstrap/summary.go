package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/speechkit/component"
)

var statusIcons = map[component.HealthStatus]string{
	component.StatusHealthy:   "✅",
	component.StatusDegraded:  "⚠️",
	component.StatusUnhealthy: "❌",
}

func statusIcon(s component.HealthStatus) string {
	if icon, ok := statusIcons[s]; ok {
		return icon
	}
	return "❓"
}

// Summary is the startup report printed once the application is ready:
// described components, routes and live health.
type Summary struct {
	service string
	version string
	took    time.Duration

	infrastructure []component.Description
	routes         []component.Route
	health         []component.Health
}

func NewSummary(service, version string) *Summary {
	return &Summary{service: service, version: version}
}

// SetStartupDuration records how long startup took.
func (s *Summary) SetStartupDuration(d time.Duration) { s.took = d }

// Collect replaces the report contents with the registry's current state.
func (s *Summary) Collect(ctx context.Context, registry *component.Registry) {
	s.infrastructure, s.routes, s.health = nil, nil, nil
	if registry == nil {
		return
	}
	for _, c := range registry.All() {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
			s.infrastructure = append(s.infrastructure, desc)
		}
		if rp, ok := c.(component.RouteProvider); ok {
			s.routes = append(s.routes, rp.Routes()...)
		}
	}
	s.health = registry.HealthAll(ctx)
}

// Write prints the report as indented trees.
func (s *Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "\n%s v%s started in %.2fs\n", s.service, s.version, s.took.Seconds())

	if len(s.infrastructure) == 0 {
		writeTree(w, "", []string{"No components registered"})
	} else {
		lines := make([]string, len(s.infrastructure))
		for i, d := range s.infrastructure {
			details := d.Details
			if port := fmt.Sprintf(":%d", d.Port); d.Port > 0 && !strings.Contains(details, port) {
				details += " (" + port + ")"
			}
			lines[i] = fmt.Sprintf("[%s] %s: %s", d.Type, d.Name, details)
		}
		writeTree(w, "Infrastructure", lines)
	}

	if len(s.routes) > 0 {
		lines := make([]string, len(s.routes))
		for i, r := range s.routes {
			lines[i] = fmt.Sprintf("%-7s %s -> %s", r.Method, r.Path, r.Handler)
		}
		writeTree(w, fmt.Sprintf("Routes (%d)", len(s.routes)), lines)
	}

	if len(s.health) > 0 {
		healthy := 0
		lines := make([]string, len(s.health))
		for i, h := range s.health {
			if h.Status == component.StatusHealthy {
				healthy++
			}
			lines[i] = fmt.Sprintf("%s %s (%s)", statusIcon(h.Status), h.Name, h.Status)
			if h.Message != "" {
				lines[i] += ": " + h.Message
			}
		}
		writeTree(w, "Health", lines)
		fmt.Fprintf(w, "\n%d/%d components healthy\n", healthy, len(s.health))
	}
	fmt.Fprintln(w)
}

// writeTree prints an optional title and its lines as tree branches.
func writeTree(w io.Writer, title string, lines []string) {
	fmt.Fprintln(w)
	if title != "" {
		fmt.Fprintln(w, title)
	}
	for i, line := range lines {
		branch := "├──"
		if i == len(lines)-1 {
			branch = "└──"
		}
		fmt.Fprintf(w, "   %s %s\n", branch, line)
	}
}
