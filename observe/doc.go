// Package observe instruments artifact construction with tracing, metrics and
// structured logging.
//
// It is a pure instrumentation library: it never builds artifacts itself.
// A cache wraps each root build with a Middleware, which opens a span, records
// duration and error counters, counts commit conflicts, and logs the outcome
// with the built type attached.
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "codecs",
//	    Tracing:     observe.TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "debug"},
//	})
//	mw, err := observe.MiddlewareFromObserver(obs)
//	c, err := cache.New(provider, factory, cache.WithMiddleware(mw))
package observe
