package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"datalake/internal/config"
	"datalake/internal/crtime"
	"datalake/internal/metadata"
)

// metadataFlags carries the per-file metadata options shared by push and
// enqueue.
type metadataFlags struct {
	start  string
	end    string
	where  string
	what   string
	workID string
}

func (f *metadataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "Event start: milliseconds since the epoch, 'now', or 'crtime'")
	cmd.Flags().StringVar(&f.end, "end", "", "Event end: milliseconds since the epoch, 'now', or 'crtime'")
	cmd.Flags().StringVar(&f.where, "where", "", "Origin of the file (e.g. a hostname); falls back to metadata.default_where")
	cmd.Flags().StringVar(&f.what, "what", "", "What the file contains (e.g. a log stream name)")
	cmd.Flags().StringVar(&f.workID, "work-id", "", "Identifier of the work that produced the file")
}

// resolve evaluates time words against the named file and fills the default
// origin from configuration when --where was not given.
func (f *metadataFlags) resolve(path string, cfg *config.Config) (metadata.Fields, error) {
	fields := metadata.Fields{
		Where:  strings.TrimSpace(f.where),
		What:   strings.TrimSpace(f.what),
		WorkID: strings.TrimSpace(f.workID),
	}
	if fields.Where == "" && cfg != nil {
		fields.Where = cfg.Metadata.DefaultWhere
	}

	var err error
	if fields.Start, err = evaluateTimeWord(path, f.start); err != nil {
		return metadata.Fields{}, fmt.Errorf("--start: %w", err)
	}
	if fields.End, err = evaluateTimeWord(path, f.end); err != nil {
		return metadata.Fields{}, fmt.Errorf("--end: %w", err)
	}
	return fields, nil
}

// evaluateTimeWord turns a time argument into epoch milliseconds. Besides a
// plain integer, 'now' and 'crtime' (the file's birth time) are accepted.
func evaluateTimeWord(path, value string) (*int64, error) {
	value = strings.TrimSpace(value)
	switch value {
	case "":
		return nil, nil
	case "now":
		ms := time.Now().UnixMilli()
		return &ms, nil
	case "crtime":
		created, err := crtime.Get(path)
		if err != nil {
			return nil, err
		}
		ms := created.UnixMilli()
		return &ms, nil
	}
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q: expected milliseconds since the epoch, 'now', or 'crtime'", value)
	}
	return &ms, nil
}
