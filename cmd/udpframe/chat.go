package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"io"
	"os"
	"os/signal"
	"projekt/udpframe/lib/beacon"
	"projekt/udpframe/lib/ipaddr"
	"syscall"
)

var errInputClosed = errors.New("input closed")

func newChatCmd(a *app) *cobra.Command {
	var useProto bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Announce on broadcast until a peer answers, then exchange lines read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.chat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), newCodec(useProto))
		},
	}
	cmd.Flags().BoolVar(&useProto, "proto", false, "encode lines as protobuf string values")
	return cmd
}

func (a *app) chat(ctx context.Context, in io.Reader, out io.Writer, c codec) error {
	tx, err := a.open()
	if err != nil {
		return err
	}
	defer func() {
		if e := tx.Close(); e != nil {
			logrus.WithError(e).Warn("failed to close transmitter")
		}
	}()

	return chat(ctx, tx, a.beaconConfig(), in, out, c)
}

// chat runs the beacon and the input loop until the input is closed or ctx is done.
// The announcement is encoded with c, so cfg.Announce holds the plain line.
func chat(ctx context.Context, tx beacon.Transmitter, cfg beacon.Config, in io.Reader, out io.Writer, c codec) error {
	announce, err := c.encode(string(cfg.Announce))
	if err != nil {
		return err
	}
	cfg.Announce = announce
	b := beacon.New(tx, cfg)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Run(ctx, func(payload []byte, from ipaddr.Addr) {
			line, err := c.decode(payload)
			if err != nil {
				logrus.WithError(err).WithField("sender", from).Warn("failed to decode payload")
				return
			}
			fmt.Fprintf(out, "%s: %s\n", from, line)
		})
	})
	lines := readLines(in)
	g.Go(func() error {
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					return errInputClosed
				}
				payload, err := c.encode(line)
				if err != nil {
					logrus.WithError(err).Warn("failed to encode line")
					continue
				}
				if err = b.Write(ctx, payload); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
	err = g.Wait()
	if errors.Is(err, errInputClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// readLines scans in on its own goroutine, which is left blocked on read when the chat ends.
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logrus.WithError(err).Warn("failed to read input")
		}
	}()
	return lines
}
