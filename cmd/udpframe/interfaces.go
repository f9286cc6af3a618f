package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"io"
	"projekt/udpframe/lib/network"
	"text/tabwriter"
)

func newInterfacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interfaces",
		Short: "List the IPv4 networks of this host and their broadcast addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nets, err := network.Interfaces()
			if err != nil {
				return err
			}
			return printInterfaces(cmd.OutOrStdout(), nets)
		},
	}
}

func printInterfaces(out io.Writer, nets []network.Net) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tADDRESS\tNETMASK\tBROADCAST\tFLAGS")
	for i := range nets {
		n := &nets[i]
		addr, err := n.Addr()
		if err != nil {
			return err
		}
		mask, err := n.Netmask()
		if err != nil {
			return err
		}
		broadcast, err := n.Broadcast()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", n.Interface.Name, addr, mask, broadcast, n.Interface.Flags)
	}
	return w.Flush()
}
