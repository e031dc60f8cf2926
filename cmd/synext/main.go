package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/seitarof/synext/internal/cli"
	"github.com/seitarof/synext/internal/generator"
	"github.com/seitarof/synext/internal/matcher"
	"github.com/seitarof/synext/internal/parser"
	"github.com/seitarof/synext/internal/resolver"
)

var version = "dev"

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}

	p := parser.New()
	im := matcher.NewItemMatcher()
	fm := matcher.NewFieldMatcher()
	gm := matcher.NewGenericMatcher()
	r := resolver.New(resolver.DefaultRules()...)
	f := generator.NewGoimportsFormatter()
	w := generator.NewFileWriter()
	g := generator.New(f, w)
	rep := generator.NewTextReporter(os.Stdout)

	runner := cli.NewRunner(p, im, fm, gm, r, g, rep)
	if !cfg.Watch {
		if err := runner.Run(cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cli.Watch(ctx, runner, cfg)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}
