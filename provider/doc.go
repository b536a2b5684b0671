// Package provider is a small generic framework for swappable backends.
//
// A Registry maps names to factories, a Manager owns the initialized
// instances and hands one out through a default name or a Selector, and
// Middleware wraps RequestResponse providers with logging, metrics and
// tracing:
//
//	mgr := provider.NewManager(provider.NewRegistry[T](), &provider.HealthCheckSelector[T]{})
//	mgr.Register("whisper", whisper.Factory())
//	_ = mgr.Initialize(ctx, "whisper", cfg)
//	p, _ := mgr.Get(ctx)
//
// Factories receive their section of the config as a map; DecodeConfig turns
// it into a typed struct.
package provider
