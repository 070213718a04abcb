package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/boklen/rentals/internal/config"
	"github.com/boklen/rentals/internal/domain/repository"
	"github.com/boklen/rentals/internal/schema"
	"github.com/boklen/rentals/internal/storage"
)

// boklen state: print every persisted key with its schema version.
var stateCmd = &cobra.Command{
	Use:                "state [flags]",
	Short:              "Dump the persisted device state as JSON",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		store, closeFn, err := storage.Open(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = closeFn() }()

		return dumpState(ctx, store, cmd.OutOrStdout())
	},
}

type stateEntry struct {
	Key     string          `json:"key"`
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func dumpState(ctx context.Context, store repository.KeyValueStore, w io.Writer) error {
	keys, err := store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	sort.Strings(keys)

	entries := make([]stateEntry, 0, len(keys))
	for _, key := range keys {
		raw, err := store.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		entry := stateEntry{Key: key}
		var data json.RawMessage
		version, err := schema.Decode(raw, &data)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Version = version
			entry.Data = data
		}
		entries = append(entries, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(entries)
}
