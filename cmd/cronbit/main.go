// Command cronbit compiles and evaluates extended cron expressions, and
// can run one as a tiny standalone scheduler.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
