package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/OCharnyshevich/worldlayers/internal/rocks"
)

func main() {
	var (
		src = flag.String("src", "", "go-getter source of the rock bundle (git::, https://, s3::, local path)")
		out = flag.String("o", "./rocks", "output dir path")
	)
	flag.Parse()

	if *src == "" {
		log.Fatal("source required")
	}
	if *out == "" {
		log.Fatal("output dir path required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Default().Printf("start downloading rocks %s", *src)

	defs, err := rocks.Load(ctx, *src, *out)
	if err != nil {
		log.Fatal(err)
	}

	log.Default().Printf("done downloading %d rocks into %s", len(defs), filepath.Join(*out, rocks.DefinitionFile))
}
