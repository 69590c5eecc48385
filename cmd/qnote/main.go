package main

import (
	"fmt"
	"os"

	"qnote/internal/cli"
	"qnote/internal/config"
	"qnote/internal/storage"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Database.Path, storage.Options{
		WALMode:     cfg.Database.WALMode,
		CacheSizeKB: cfg.Database.CacheSizeKB,
		Synchronous: cfg.Database.Synchronous,
		TempStore:   cfg.Database.TempStore,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := cli.Execute(store, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
