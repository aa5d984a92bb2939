// Command taskboard runs the task server and its command-line client.
package main

import (
	"os"

	"github.com/mesh-intelligence/taskboard/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
