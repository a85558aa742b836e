package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/loaderkit/ipl"
)

type toolConfig struct {
	InputDir   string
	OutputDir  string
	StreamDir  string
	WorldDir   string
	LodOutput  string
	ModelTable string
}

func defaultToolConfig() toolConfig {
	return toolConfig{
		InputDir:  "maps-bin",
		OutputDir: "maps-txt",
		StreamDir: "streams",
		WorldDir:  "world",
		LodOutput: "obj_lod_models.txt",
	}
}

type fileConfig struct {
	InputDir   string `toml:"input_dir"`
	OutputDir  string `toml:"output_dir"`
	StreamDir  string `toml:"stream_dir"`
	WorldDir   string `toml:"world_dir"`
	LodOutput  string `toml:"lod_output"`
	ModelTable string `toml:"model_table"`
}

// loadConfig reads the tool configuration. A missing file is not an error;
// the defaults simply apply.
func loadConfig(path string) (toolConfig, error) {
	cfg := defaultToolConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return toolConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("input_dir") {
		cfg.InputDir = strings.TrimSpace(raw.InputDir)
	}
	if meta.IsDefined("output_dir") {
		cfg.OutputDir = strings.TrimSpace(raw.OutputDir)
	}
	if meta.IsDefined("stream_dir") {
		cfg.StreamDir = strings.TrimSpace(raw.StreamDir)
	}
	if meta.IsDefined("world_dir") {
		cfg.WorldDir = strings.TrimSpace(raw.WorldDir)
	}
	if meta.IsDefined("lod_output") {
		cfg.LodOutput = strings.TrimSpace(raw.LodOutput)
	}
	if meta.IsDefined("model_table") {
		cfg.ModelTable = strings.TrimSpace(raw.ModelTable)
	}

	return cfg, nil
}

type modelTableFile struct {
	Models []modelEntry `toml:"model"`
}

type modelEntry struct {
	ID   int32  `toml:"id"`
	Name string `toml:"name"`
}

// loadModelTable reads the static model-name table. An empty path yields a
// resolver that answers the placeholder for every ID.
func loadModelTable(path string) (ipl.TableResolver, error) {
	if path == "" {
		return nil, nil
	}

	var raw modelTableFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load model table: %w", err)
	}

	table := make(ipl.TableResolver, len(raw.Models))
	for _, m := range raw.Models {
		table[m.ID] = m.Name
	}
	return table, nil
}
