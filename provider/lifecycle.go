package provider

import "context"

// Initializable is implemented by providers that check or prepare their
// backend before serving. Manager.Initialize calls Init.
type Initializable interface {
	Init(ctx context.Context) error
}

// Closeable is implemented by providers holding resources. Manager.Close
// calls Close.
type Closeable interface {
	Close(ctx context.Context) error
}
