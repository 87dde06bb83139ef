package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/delaneyj/cellparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	arityCountKey = "count"
	outPathKey    = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the fixed-arity lift helpers for cells",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  arityCountKey,
				Usage: "Highest lift arity to generate",
				Value: 8,
			},
			&cli.StringFlag{
				Name:  outPathKey,
				Usage: "Path of the generated file",
				Value: "cells/lift_generated.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for cells started!")
	defer func() {
		log.Printf("Codegen for cells finished in %v", time.Since(start))
	}()

	count := cmd.Uint(arityCountKey)
	outPath := cmd.String(outPathKey)
	log.Printf("Generating Lift1..Lift%d into %s", count, outPath)

	contents := templates.LiftGen(int(count))
	return os.WriteFile(outPath, []byte(contents), 0644)
}
