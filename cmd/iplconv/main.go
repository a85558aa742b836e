package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-stdlog/stdlog"

	"github.com/loaderkit/ipl"
)

var (
	configPath = flag.String("config", "iplconv.toml", "Path to the tool configuration file")
	quiet      = flag.Bool("quiet", false, "Suppress log output")
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: iplconv [flags] <command> [args]

Commands:
  convert-all            Convert every binary placement file in the input
                         directory into text files in the output directory
  convert <src> [dst]    Convert a single binary placement file; dst defaults
                         to the source name with an .ipl extension
  lods                   Resolve LOD pairings across the stream and world
                         directories and write the table artifact

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "iplconv: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	models, err := loadModelTable(cfg.ModelTable)
	if err != nil {
		return err
	}

	var logger stdlog.Logger = stdlog.Discard
	if !*quiet {
		logger = stdlog.NewStd(os.Stdout)
	}

	batch := ipl.NewBatch(ipl.Config{Models: models, Logger: logger})

	switch args[0] {
	case "convert-all":
		return batch.ConvertAll(cfg.InputDir, cfg.OutputDir)
	case "convert":
		if len(args) < 2 {
			return fmt.Errorf("convert requires a source file")
		}
		src := args[1]
		dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".ipl"
		if len(args) > 2 {
			dst = args[2]
		}
		return batch.ConvertFile(src, dst)
	case "lods":
		return batch.ResolveLods(cfg.StreamDir, cfg.WorldDir, cfg.LodOutput)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}
