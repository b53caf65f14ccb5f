package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"expenses/internal/cli"
	"expenses/internal/events"
	"expenses/internal/prompt"
	"expenses/internal/service"
	"expenses/internal/store"
)

func main() {
	os.Exit(run())
}

// run keeps deferred cleanup ahead of os.Exit so the database handle is
// released on every exit path.
func run() int {
	cli.LoadEnvFile()

	// User-facing table output owns stdout; diagnostics go to stderr.
	logger := cli.SetupLogger(os.Stderr, slog.LevelWarn)

	cfg := cli.LoadAndValidateConfig(logger)

	st, err := store.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var publisher service.Publisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			publisher = client
		}
	}

	svc := service.New(st, publisher)
	defer svc.Close()

	app := &cli.App{
		Service: svc,
		Out:     os.Stdout,
		Confirm: func(p string) (bool, error) {
			return prompt.ConfirmKeystroke(os.Stdin, os.Stdout, p)
		},
	}

	if err := app.Run(context.Background(), os.Args[1:]); err != nil {
		var uerr *cli.UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Msg)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}
