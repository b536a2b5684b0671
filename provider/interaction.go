package provider

import "context"

// RequestResponse is a provider that maps one input to one output.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Func adapts a plain function to RequestResponse.
func Func[I, O any](name string, available func(ctx context.Context) bool, fn func(ctx context.Context, input I) (O, error)) RequestResponse[I, O] {
	return &funcRR[I, O]{name: name, available: available, fn: fn}
}

type funcRR[I, O any] struct {
	name      string
	available func(ctx context.Context) bool
	fn        func(ctx context.Context, input I) (O, error)
}

func (f *funcRR[I, O]) Name() string { return f.name }

func (f *funcRR[I, O]) IsAvailable(ctx context.Context) bool {
	if f.available == nil {
		return true
	}
	return f.available(ctx)
}

func (f *funcRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return f.fn(ctx, input)
}
