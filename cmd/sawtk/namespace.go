package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/kigichang/sawtk/core/namespace"
)

func runNamespace(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(namespaceCommand, flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("n", "", "Namespace (family) name, or a reserved prefix with --ledger")
	keys := fs.String("i", "", "Comma separated keys to derive addresses for")
	ledger := fs.Bool("ledger", false, "Resolve reserved ledger families and use the segmented layout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*name) == "" {
		return errors.New("namespace name is required (-n)")
	}

	var ns namespace.Namespace
	if *ledger {
		ns = namespace.Ledger(*name)
	} else {
		ns = namespace.New(*name)
	}
	fmt.Fprintln(stdout, ns.String())
	for _, key := range splitList(*keys) {
		fmt.Fprintf(stdout, "%s: %s\n", key, ns.MakeAddress(key))
	}
	return nil
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
