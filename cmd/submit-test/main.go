// Command submit-test drives scenario S4: submit two independent
// remote tasks (add and mul) to a running head and report whether each was
// accepted.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/SamarthMahendra/Orion/functions"
	"github.com/SamarthMahendra/Orion/transport"
)

var rootCmd = &cobra.Command{
	Use:   "submit-test [head_port]",
	Short: "Submit the add/mul smoke-test tasks to a running head",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSubmitTest,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSubmitTest(cmd *cobra.Command, args []string) error {
	port := "50050"
	if len(args) == 1 {
		port = args[0]
	}
	headAddr := fmt.Sprintf("http://127.0.0.1:%s", port)

	tasks := []transport.TaskRequest{
		{
			TaskID:       "task-A",
			FunctionName: "add",
			Args:         [][]byte{functions.EncodeInt32(3), functions.EncodeInt32(7)},
		},
		{
			TaskID:       "task-B",
			FunctionName: "mul",
			Args:         [][]byte{functions.EncodeInt32(6), functions.EncodeInt32(7)},
		},
	}

	for _, task := range tasks {
		reply, err := submit(headAddr, task)
		if err != nil {
			return fmt.Errorf("submitting %s: %w", task.TaskID, err)
		}
		fmt.Printf("%s: accepted=%v node=%s\n", task.TaskID, reply.Accepted, reply.NodeID)
	}
	return nil
}

func submit(headAddr string, task transport.TaskRequest) (transport.TaskReply, error) {
	var reply transport.TaskReply
	body, err := json.Marshal(task)
	if err != nil {
		return reply, err
	}
	resp, err := http.Post(headAddr+"/tasks", "application/json", bytes.NewReader(body))
	if err != nil {
		return reply, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return reply, fmt.Errorf("head returned status %d", resp.StatusCode)
	}
	err = json.NewDecoder(resp.Body).Decode(&reply)
	return reply, err
}
