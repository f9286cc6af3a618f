package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"projekt/udpframe/cmd/base"
	"projekt/udpframe/lib/beacon"
	"projekt/udpframe/lib/network"
	"projekt/udpframe/lib/socket"
	"projekt/udpframe/lib/transmitter"
)

type app struct {
	cfgFile string
	cfg     *base.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "udpframe",
		Short:         "Exchange magic-prefixed UDP datagrams with a peer on the local network",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			a.cfg, err = base.Load(cmd.Flags(), a.cfgFile)
			if err != nil {
				return err
			}
			base.SetupLogging(a.cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "optional YAML config file")
	base.Flags(root.PersistentFlags())
	root.AddCommand(
		newInterfacesCmd(),
		newChatCmd(a),
		newEchoCmd(a),
	)
	return root
}

func (a *app) beaconConfig() beacon.Config {
	return beacon.Config{
		Announce:         []byte(a.cfg.Announce),
		AnnounceInterval: a.cfg.Interval,
		PollInterval:     a.cfg.Poll,
	}
}

// open creates a transmitter as configured: bound, targeted and optionally filtering local senders.
func (a *app) open() (*transmitter.Transmitter, error) {
	var opts []transmitter.Option
	if a.cfg.FilterLocal {
		opts = append(opts, transmitter.WithSocketOptions(socket.WithLocalFilter(network.NewCache())))
	}
	tx, err := transmitter.New(a.cfg.Port, a.cfg.Magic, opts...)
	if err != nil {
		return nil, err
	}
	if !a.cfg.Interface.IsAny() {
		if err = tx.BindInterface(a.cfg.Interface); err != nil {
			_ = tx.Close()
			return nil, err
		}
	}
	tx.SetTarget(a.cfg.Target, a.cfg.Lock)
	logrus.WithFields(logrus.Fields{
		"port":      tx.Port(),
		"interface": tx.Interface(),
		"target":    tx.Target(),
		"state":     tx.State(),
		"locked":    tx.Locked(),
	}).Info("transmitter ready")
	return tx, nil
}
