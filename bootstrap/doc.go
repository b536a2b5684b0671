// Package bootstrap runs a service through its lifecycle: config defaults
// and validation, logger setup, ordered component start, lifecycle hooks, a
// ready check, a startup summary, and graceful shutdown on SIGINT/SIGTERM.
//
//	app, err := bootstrap.NewApp(cfg)
//	if err != nil {
//	    return err
//	}
//	_ = app.RegisterComponent(storageComponent)
//	_ = app.RegisterComponent(serverComponent)
//	return app.Run(ctx)
package bootstrap
