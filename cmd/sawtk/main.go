// Command sawtk derives namespace addresses, manages signing keys and builds
// signed batches for submission to a ledger node.
package main

import (
	"fmt"
	"io"
	"os"
)

const (
	namespaceCommand = "namespace"
	keyCommand       = "key"
	batchCommand     = "batch"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case namespaceCommand:
		err = runNamespace(args[1:], stdout, stderr)
	case keyCommand:
		err = runKey(args[1:], stdout, stderr)
	case batchCommand:
		err = runBatch(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sawtk <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  namespace -n NAME [-i k1,k2] [--ledger]      print a namespace prefix and key addresses")
	fmt.Fprintln(w, "  key gen -n NAME | --keystore PATH            generate a signing key")
	fmt.Fprintln(w, "  key load -i FILE | --keystore PATH           show the public key and wallet of a key")
	fmt.Fprintln(w, "  batch --config FILE --payload-hex HEX        build and sign a single-transaction batch list")
}
