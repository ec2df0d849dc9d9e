// Command wadm queries the Werk aan de Muur catalog API and serves it as a
// JSON gateway.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
