package observe_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/shapeops/observe"
)

func ExampleConfig_Validate() {
	cfg := observe.Config{
		ServiceName: "codecs",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "zipkin"},
	}
	err := cfg.Validate()
	fmt.Println(errors.Is(err, observe.ErrInvalidTracingExporter))
	// Output: true
}

func ExampleMiddleware_Wrap() {
	mw := observe.NewMiddleware(nil, nil, nil)
	build := mw.Wrap(func(ctx context.Context, meta observe.TypeMeta) (any, error) {
		return "artifact for " + meta.Type, nil
	})

	v, err := build(context.Background(), observe.TypeMeta{Type: "geo.Point", Kind: "object"})
	fmt.Println(v, err)
	// Output: artifact for geo.Point <nil>
}
