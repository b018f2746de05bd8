package printer_test

import (
	"context"
	"fmt"
	"os"

	"github.com/jonwraymond/shapeops/algo/printer"
	"github.com/jonwraymond/shapeops/shape/reflectshape"
)

type Config struct {
	Name  string
	Ports []int
	Env   map[string]string
	Next  *Config
}

func Example() {
	c, err := printer.New(reflectshape.New())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	cfg := Config{
		Name:  "api",
		Ports: []int{80, 443},
		Env:   map[string]string{"B": "2", "A": "1"},
	}
	if err := printer.Fprint(context.Background(), c, os.Stdout, cfg); err != nil {
		fmt.Println("error:", err)
	}
	fmt.Println()
	// Output:
	// Config{Name: "api", Ports: [80, 443], Env: {"A": "1", "B": "2"}, Next: nil}
}
