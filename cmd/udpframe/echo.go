package main

import (
	"context"
	"errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"projekt/udpframe/lib/beacon"
	"projekt/udpframe/lib/ipaddr"
	"syscall"
	"time"
)

func newEchoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "echo",
		Short: "Send every received payload back to its sender",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.echo(ctx)
		},
	}
}

func (a *app) echo(ctx context.Context) error {
	tx, err := a.open()
	if err != nil {
		return err
	}
	defer func() {
		if e := tx.Close(); e != nil {
			logrus.WithError(e).Warn("failed to close transmitter")
		}
	}()
	return echo(ctx, tx, a.cfg.Poll)
}

// echo sends every payload received through tx back to its sender until ctx is done.
func echo(ctx context.Context, tx beacon.Transmitter, poll time.Duration) error {
	b := beacon.New(tx, beacon.Config{PollInterval: poll})
	// the handler runs on the polling goroutine, so it may use tx directly
	err := b.Run(ctx, func(payload []byte, from ipaddr.Addr) {
		if _, err := tx.Send(payload); err != nil {
			logrus.WithError(err).WithField("target", from).Warn("failed to echo payload")
			return
		}
		logrus.WithFields(logrus.Fields{
			"target": from,
			"size":   len(payload),
		}).Debug("echoed payload")
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
