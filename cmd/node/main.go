// Command node runs one Orion worker machine: it registers with a head,
// serves the node RPC surface, and executes tasks the head dispatches to it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/SamarthMahendra/Orion/functions"
	"github.com/SamarthMahendra/Orion/node"
	"github.com/SamarthMahendra/Orion/runtime"
	"oss.nandlabs.io/golly/l3"
)

var workerCount uint

var rootCmd = &cobra.Command{
	Use:   "node <head_port> <node_port> [node_id]",
	Short: "Run an Orion node",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runNode,
}

func init() {
	rootCmd.Flags().UintVar(&workerCount, "workers", 4, "number of local workers")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runNode(cmd *cobra.Command, args []string) error {
	headPort, nodePort := args[0], args[1]
	nodeID := ""
	if len(args) == 3 {
		nodeID = args[2]
	}
	if nodeID == "" {
		// No node_id given: mint one, the same way a client mints a fresh
		// identifier when it has no natural name to reuse.
		nodeID = "node-" + uuid.NewString()
	}
	headAddr := fmt.Sprintf("127.0.0.1:%s", headPort)
	selfAddr := fmt.Sprintf("0.0.0.0:%s", nodePort)

	log := l3.Get()
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rt := runtime.NewOptions(ctx, runtime.WithWorkerCount(workerCount))
	defer rt.Shutdown()

	fns := functions.Builtins()

	nr := node.New(nodeID, selfAddr, headAddr, rt, fns)
	log.InfoF("node %s: starting on %s, head at %s", nodeID, selfAddr, headAddr)
	return nr.Run(ctx)
}
