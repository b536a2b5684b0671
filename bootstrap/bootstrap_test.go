package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/speechkit/component"
	"github.com/kbukum/speechkit/config"
	"github.com/kbukum/speechkit/logger"
)

// testConfig is a minimal config for testing that satisfies the Config interface.
type testConfig struct {
	config.ServiceConfig
}

// mockComponent implements component.Component for testing.
type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	m.started = true
	m.record("start " + m.name)
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	m.stopped = true
	m.record("stop " + m.name)
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) component.Health {
	return m.health
}
func (m *mockComponent) record(e string) {
	if m.events != nil {
		*m.events = append(*m.events, e)
	}
}

type mockDescribableComponent struct {
	mockComponent
	desc   component.Description
	routes []component.Route
}

func (m *mockDescribableComponent) Describe() component.Description { return m.desc }
func (m *mockDescribableComponent) Routes() []component.Route       { return m.routes }

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
		},
	}
}

func newTestApp(t *testing.T, opts ...Option) (*App[*testConfig], *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	opts = append([]Option{WithLogger(logger.NewNop()), WithSummaryOutput(out)}, opts...)
	app, err := NewApp(newTestConfig("speech-api", "1.0.0"), opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app, out
}

// canceled returns a context that is already done, so Run returns right
// after startup.
func canceled() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func healthy(name string) component.Health {
	return component.Health{Name: name, Status: component.StatusHealthy}
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)

	if app.Name != "speech-api" {
		t.Errorf("expected name 'speech-api', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Components == nil || app.Logger == nil || app.Summary == nil {
		t.Error("expected registry, logger and summary to be set")
	}
	if app.Cfg.Name != "speech-api" {
		t.Errorf("expected cfg.Name 'speech-api', got %q", app.Cfg.Name)
	}
	if app.gracefulTimeout != 15*time.Second {
		t.Errorf("expected default 15s timeout, got %v", app.gracefulTimeout)
	}
}

func TestNewAppWithLoggerBecomesGlobal(t *testing.T) {
	prev := logger.GetGlobalLogger()
	defer logger.SetGlobalLogger(prev)

	l := logger.NewNop()
	app, err := NewApp(newTestConfig("speech-api", "1.0.0"), WithLogger(l), WithGracefulTimeout(0))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Logger != l || logger.GetGlobalLogger() != l {
		t.Error("expected the custom logger to be used and shared globally")
	}
	if app.gracefulTimeout != defaultGracefulTimeout {
		t.Errorf("zero timeout must keep the default, got %v", app.gracefulTimeout)
	}
}

func TestNewAppValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  *testConfig
	}{
		{"missing name", &testConfig{ServiceConfig: config.ServiceConfig{Environment: "development"}}},
		{"bad environment", &testConfig{ServiceConfig: config.ServiceConfig{Name: "svc", Environment: "qa"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewApp(tt.cfg, WithLogger(logger.NewNop())); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestWithGracefulTimeout(t *testing.T) {
	app, _ := newTestApp(t, WithGracefulTimeout(30*time.Second))
	if app.gracefulTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", app.gracefulTimeout)
	}
}

func TestRegisterComponentDuplicate(t *testing.T) {
	app, _ := newTestApp(t)
	if err := app.RegisterComponent(&mockComponent{name: "storage"}); err != nil {
		t.Fatalf("RegisterComponent failed: %v", err)
	}
	if err := app.RegisterComponent(&mockComponent{name: "storage"}); err == nil {
		t.Error("expected error for duplicate component registration")
	}
}

func TestRunLifecycleOrder(t *testing.T) {
	app, _ := newTestApp(t)

	var events []string
	_ = app.RegisterComponent(&mockComponent{name: "storage", health: healthy("storage"), events: &events})
	_ = app.RegisterComponent(&mockComponent{name: "http-server", health: healthy("http-server"), events: &events})

	app.OnStart(func(ctx context.Context) error {
		events = append(events, "onStart")
		return nil
	})
	app.OnReady(func(ctx context.Context) error {
		events = append(events, "onReady")
		return nil
	})

	if err := app.Run(canceled()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	expected := []string{
		"start storage", "start http-server",
		"onStart", "onReady",
		"stop http-server", "stop storage",
	}
	if strings.Join(events, ",") != strings.Join(expected, ",") {
		t.Fatalf("expected %v, got %v", expected, events)
	}
}

func TestRunStartupErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(app *App[*testConfig])
		want  string
	}{
		{"component start", func(app *App[*testConfig]) {
			_ = app.RegisterComponent(&mockComponent{name: "storage", startErr: fmt.Errorf("disk full")})
		}, "initialization failed"},
		{"start hook", func(app *App[*testConfig]) {
			app.OnStart(func(context.Context) error { return fmt.Errorf("nope") })
		}, "onStart hook failed"},
		{"ready hook", func(app *App[*testConfig]) {
			app.OnReady(func(context.Context) error { return fmt.Errorf("nope") })
		}, "onReady hook failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			tt.setup(app)
			err := app.Run(canceled())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRunStopsStartedComponentsOnStartupFailure(t *testing.T) {
	app, _ := newTestApp(t)
	first := &mockComponent{name: "storage", health: healthy("storage")}
	_ = app.RegisterComponent(first)
	_ = app.RegisterComponent(&mockComponent{name: "http-server", startErr: fmt.Errorf("port in use")})

	if err := app.Run(canceled()); err == nil {
		t.Fatal("expected startup error")
	}
	if !first.stopped {
		t.Error("expected already started component to be stopped")
	}
}

func TestRunReportsStopErrors(t *testing.T) {
	app, _ := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "storage", stopErr: fmt.Errorf("stop failed"), health: healthy("storage")})
	_ = app.RegisterComponent(&mockComponent{name: "cache", stopErr: fmt.Errorf("flush failed"), health: healthy("cache")})

	err := app.Run(canceled())
	if err == nil {
		t.Fatal("expected shutdown error")
	}
	if !strings.Contains(err.Error(), "stop failed") || !strings.Contains(err.Error(), "flush failed") {
		t.Errorf("expected both errors joined, got %v", err)
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		health  []component.Health
		wantErr bool
	}{
		{"empty", nil, false},
		{"all healthy", []component.Health{healthy("a"), healthy("b")}, false},
		{"degraded", []component.Health{healthy("a"), {Name: "b", Status: component.StatusDegraded}}, true},
		{"unhealthy", []component.Health{{Name: "transcription", Status: component.StatusUnhealthy, Message: "provider parakeet unreachable"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)
			for _, h := range tt.health {
				_ = app.RegisterComponent(&mockComponent{name: h.Name, health: h})
			}
			err := app.ReadyCheck(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadyCheck error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunUnhealthyComponentDoesNotAbort(t *testing.T) {
	app, _ := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{
		name:   "transcription",
		health: component.Health{Name: "transcription", Status: component.StatusUnhealthy, Message: "provider parakeet unreachable"},
	})

	if err := app.Run(canceled()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestWaitForSignalContextCancellation(t *testing.T) {
	app, _ := newTestApp(t)
	if sig := app.WaitForSignal(canceled()); sig != nil {
		t.Errorf("expected nil signal on context cancellation, got %v", sig)
	}
}

func TestSummaryCollectAndWrite(t *testing.T) {
	registry := component.NewRegistry(logger.NewNop())
	_ = registry.Register(&mockDescribableComponent{
		mockComponent: mockComponent{name: "http-server", health: healthy("http-server")},
		desc: component.Description{
			Name:    "HTTP Server",
			Type:    "server",
			Details: "0.0.0.0:8000",
			Port:    8000,
		},
		routes: []component.Route{
			{Method: "GET", Path: "/", Handler: "Handler.Root"},
			{Method: "POST", Path: "/transcribe", Handler: "Handler.Transcribe"},
		},
	})
	_ = registry.Register(&mockComponent{
		name:   "transcription",
		health: component.Health{Name: "transcription", Status: component.StatusUnhealthy, Message: "provider parakeet unreachable"},
	})

	s := NewSummary("speech-api", "1.0.0")
	s.SetStartupDuration(120 * time.Millisecond)
	s.Collect(context.Background(), registry)

	if len(s.infrastructure) != 1 {
		t.Errorf("expected 1 infrastructure entry, got %d", len(s.infrastructure))
	}
	if len(s.routes) != 2 {
		t.Errorf("expected 2 routes, got %d", len(s.routes))
	}

	var out bytes.Buffer
	s.Write(&out)
	text := out.String()
	for _, want := range []string{
		"speech-api v1.0.0 started in 0.12s",
		"[server] HTTP Server: 0.0.0.0:8000",
		"POST    /transcribe -> Handler.Transcribe",
		"transcription (unhealthy): provider parakeet unreachable",
		"1/2 components healthy",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestSummaryNilRegistry(t *testing.T) {
	s := NewSummary("speech-api", "1.0.0")
	s.Collect(context.Background(), nil)

	var out bytes.Buffer
	s.Write(&out)
	if !strings.Contains(out.String(), "No components registered") {
		t.Errorf("unexpected summary: %s", out.String())
	}
}

func TestWriteTree(t *testing.T) {
	var out bytes.Buffer
	writeTree(&out, "Routes", []string{"GET /", "POST /transcribe"})
	want := "\nRoutes\n   ├── GET /\n   └── POST /transcribe\n"
	if out.String() != want {
		t.Errorf("writeTree = %q, want %q", out.String(), want)
	}
}

func TestStatusIcon(t *testing.T) {
	tests := map[component.HealthStatus]string{
		component.StatusHealthy:   "✅",
		component.StatusDegraded:  "⚠️",
		component.StatusUnhealthy: "❌",
		"unknown":                 "❓",
	}
	for status, want := range tests {
		if got := statusIcon(status); got != want {
			t.Errorf("statusIcon(%s) = %s, want %s", status, got, want)
		}
	}
}

func TestDisplaySummaryWritesToConfiguredOutput(t *testing.T) {
	app, out := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "storage", health: healthy("storage")})
	if err := app.Run(canceled()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "speech-api v1.0.0") {
		t.Errorf("summary not written: %q", out.String())
	}
}
