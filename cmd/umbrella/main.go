// Command umbrella is the interactive umbrella reminder panel.
//
// Usage:
//
//	umbrella                       # terminal panel, keys r/d/w/t toggle inputs
//	umbrella --lat 51.5 --lon -0.1 # panel driven by live weather as well
//	umbrella eval --rain --night   # one-shot evaluation
//	umbrella table                 # all sixteen input combinations
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
