// primer warms the HTTP cache of a hypermedia REST API by walking every link
// reachable from a start resource, exactly once across runs.
package main

import (
	"fmt"
	"os"

	"github.com/warmstack/primer/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
