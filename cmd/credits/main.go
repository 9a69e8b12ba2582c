// Command credits is the operator CLI for the credit ledger and the image
// catalog.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(openApp).Execute(); err != nil {
		os.Exit(1)
	}
}
