package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hengadev/cfgx/node"
	"github.com/hengadev/cfgx/yamlnode"
)

func inspectCommand(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cfgx inspect <file.yaml | ->")
	}

	data, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		return err
	}
	n, err := yamlnode.Unmarshal(data)
	if err != nil {
		return err
	}
	printTree(stdout, n)
	return nil
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// printTree writes one line per node:
//
//	mapping (2)
//	  port: int 8080 [int64]
//	  items: sequence (1)
//	    - !float64 float 3 [float64]
func printTree(w io.Writer, n node.Node) {
	fmt.Fprintln(w, describe(n))
	printChildren(w, n, 1)
}

func printChildren(w io.Writer, n node.Node, level int) {
	pad := strings.Repeat("  ", level)
	switch v := n.(type) {
	case *node.Mapping:
		for key, child := range v.All() {
			fmt.Fprintf(w, "%s%s: %s\n", pad, key, describe(child))
			printChildren(w, child, level+1)
		}
	case *node.Sequence:
		for _, item := range v.Items() {
			tag := ""
			if item.Tag != "" {
				tag = "!" + item.Tag + " "
			}
			fmt.Fprintf(w, "%s- %s%s\n", pad, tag, describe(item.Value))
			printChildren(w, item.Value, level+1)
		}
	}
}

func describe(n node.Node) string {
	switch v := n.(type) {
	case *node.Mapping:
		return fmt.Sprintf("mapping (%d)", v.Len())
	case *node.Sequence:
		return fmt.Sprintf("sequence (%d)", v.Len())
	case *node.Scalar:
		if v.IsNumber() {
			return fmt.Sprintf("%s %s [%s]", v.Type(), v, v.NumKind())
		}
		return fmt.Sprintf("%s %s", v.Type(), v)
	default:
		return "null"
	}
}
