package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/hengadev/cfgx/store/sqlite"
	"github.com/hengadev/cfgx/yamlnode"
)

const defaultDB = "cfgx.db"

func openStore(ctx context.Context, path string) (*sqlite.Store, error) {
	s, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store %s: %w", path, err)
	}
	return s, nil
}

func getCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	dbPath := fs.String("db", defaultDB, "Path to the SQLite document store")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cfgx get [-db path] <name>")
	}

	ctx := context.Background()
	s, err := openStore(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.Load(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

// putCommand stores a document after checking it parses, so the store only
// ever holds documents the engine can read.
func putCommand(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("put", flag.ContinueOnError)
	dbPath := fs.String("db", defaultDB, "Path to the SQLite document store")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return fmt.Errorf("usage: cfgx put [-db path] <name> [file.yaml | -]")
	}
	input := "-"
	if fs.NArg() == 2 {
		input = fs.Arg(1)
	}

	data, err := readInput(input, stdin)
	if err != nil {
		return err
	}
	n, err := yamlnode.Unmarshal(data)
	if err != nil {
		return err
	}
	normalized, err := yamlnode.Marshal(n)
	if err != nil {
		return err
	}

	ctx := context.Background()
	s, err := openStore(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	name := fs.Arg(0)
	if err := s.Save(ctx, name, normalized); err != nil {
		return err
	}
	info, err := s.Stat(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s revision %d (%s)\n", info.Name, info.Revision, info.Checksum[:12])
	return nil
}

func listCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	dbPath := fs.String("db", defaultDB, "Path to the SQLite document store")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	s, err := openStore(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	docs, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range docs {
		fmt.Fprintf(stdout, "%-32s rev %-4d %s\n", d.Name, d.Revision, d.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func deleteCommand(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	dbPath := fs.String("db", defaultDB, "Path to the SQLite document store")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: cfgx delete [-db path] <name>")
	}

	ctx := context.Background()
	s, err := openStore(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(ctx, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s deleted\n", fs.Arg(0))
	return nil
}
