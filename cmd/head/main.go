// Command head runs Orion's head service: the cluster coordinator nodes
// register with and clients submit tasks to.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SamarthMahendra/Orion/head"
	"github.com/SamarthMahendra/Orion/registry"
	"github.com/SamarthMahendra/Orion/transport"
	"oss.nandlabs.io/golly/l3"
)

var rootCmd = &cobra.Command{
	Use:   "head [port]",
	Short: "Run the Orion head service",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHead,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runHead(cmd *cobra.Command, args []string) error {
	port := "50050"
	if len(args) == 1 {
		port = args[0]
	}
	addr := fmt.Sprintf("0.0.0.0:%s", port)

	log := l3.Get()

	nodes := registry.New()
	client := transport.NewHTTP(nodes.Address)
	svc := head.New(nodes, client)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := svc.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	log.InfoF("head: started on %s", addr)

	select {
	case sig := <-sigCh:
		log.InfoF("head: received signal %v, shutting down", sig)
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return svc.Shutdown(shutdownCtx)
}
