package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/depgen/cache"
	"github.com/wippyai/depgen/codegen"
)

func main() {
	var (
		manifestFile = flag.String("manifest", "", "Path to the YAML build manifest")
		cacheFile    = flag.String("cache", "", "Build cache file, loaded before and written after the build")
		jobs         = flag.Int("j", 0, "Parallel module workers (default: number of CPUs)")
		verbose      = flag.Bool("v", false, "Verbose logging")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *manifestFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: depgen -manifest <build.yaml> [-cache file] [-j N] [-v]")
		fmt.Fprintln(os.Stderr, "       depgen -manifest <build.yaml> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = l.Sync() }()
		codegen.SetLogger(l.Named("codegen"))
		cache.SetLogger(l.Named("cache"))
	}

	res, err := build(context.Background(), *manifestFile, *cacheFile, *jobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*manifestFile, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	report(os.Stdout, res, styled)
	if len(res.Errors) > 0 {
		os.Exit(2)
	}
}

func build(ctx context.Context, manifestFile, cacheFile string, jobs int) (*codegen.Result, error) {
	m, err := loadManifest(manifestFile)
	if err != nil {
		return nil, err
	}
	inputs, err := m.inputs()
	if err != nil {
		return nil, err
	}

	store := cache.NewMemory()
	if cacheFile != "" {
		if err := loadCache(store, cacheFile); err != nil {
			return nil, err
		}
	}

	opts := codegen.DefaultOptions()
	opts.Cache = store
	if jobs > 0 {
		opts.Concurrency = jobs
	}
	gen := codegen.New(graph(m.Resolve), chunks(m.IDs), opts)

	res, err := gen.Generate(ctx, inputs)
	if err != nil {
		return nil, err
	}

	if cacheFile != "" {
		var buf bytes.Buffer
		if err := store.Snapshot(&buf); err != nil {
			return nil, err
		}
		if err := os.WriteFile(cacheFile, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("write cache: %w", err)
		}
	}
	return res, nil
}

func loadCache(store *cache.Memory, path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer f.Close()

	// A broken cache only costs a full rebuild.
	if err := store.Load(f); err != nil {
		cache.Logger().Warn("ignoring unreadable cache file",
			zap.String("path", path),
			zap.Error(err))
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	cachedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func sortedIDs(res *codegen.Result) []string {
	ids := make([]string, 0, len(res.Outputs))
	for id := range res.Outputs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func report(w io.Writer, res *codegen.Result, styled bool) {
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	for _, id := range sortedIDs(res) {
		out := res.Outputs[id]
		header := fmt.Sprintf("// %s [%s]", id, out.Hash)
		if out.Cached {
			header += " " + render(cachedStyle, "(cached)")
		}
		fmt.Fprintln(w, render(headerStyle, header))
		if reqs := out.Requirements.Sorted(); len(reqs) > 0 {
			names := make([]string, len(reqs))
			for i, r := range reqs {
				names[i] = string(r)
			}
			fmt.Fprintf(w, "// requires: %s\n", strings.Join(names, ", "))
		}
		fmt.Fprintln(w, out.Source)
		fmt.Fprintln(w)
	}
	for _, err := range res.Errors {
		fmt.Fprintln(w, render(failStyle, "error: "+err.Error()))
	}
}
