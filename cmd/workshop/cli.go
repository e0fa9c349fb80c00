package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/embedder/providers"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb/engines/chromem"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb/engines/memory"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/crew"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/index"
)

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Run   RunCmd   `cmd:"" default:"withargs" help:"Run the four-stage workshop pipeline (default)"`
	Index IndexCmd `cmd:"" help:"Build the local vector index from a directory of documents"`
}

// Globals are flags shared by every command.
type Globals struct {
	Config  string `short:"c" type:"existingfile" help:"YAML config file" env:"WORKSHOP_CONFIG"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
}

// RunCmd runs the pipeline and prints the final review.
type RunCmd struct {
	Topic string `short:"t" default:"${default_topic}" help:"Workshop topic"`
	JSON  bool   `help:"Print the whole run (every stage output and token usage) as JSON"`
}

// stdout receives the final output of the run command
var stdout io.Writer = os.Stdout

func (r *RunCmd) Run(ctx context.Context, g *Globals, logger *slog.Logger) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	c, err := crew.NewWorkshopCrew(cfg, crew.WithLogger(logger))
	if err != nil {
		return err
	}
	result, err := c.Kickoff(ctx, r.Topic)
	if err != nil {
		return err
	}
	if r.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err = fmt.Fprintln(stdout, result.Raw)
	return err
}

// IndexCmd builds the vector index queried by the retrieval tool.
type IndexCmd struct {
	Source string `short:"s" required:"" help:"Directory of .md, .txt, .html and .pdf documents"`
	Dir    string `help:"Index directory, overrides the configured one"`
	DryRun bool   `help:"Chunk and embed without writing the index"`
}

func (r *IndexCmd) Run(ctx context.Context, g *Globals, logger *slog.Logger) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	if r.Dir != "" {
		cfg.Index.Dir = r.Dir
	}
	if info, err := os.Stat(r.Source); err != nil || !info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			return errs.NotFound("source directory", r.Source, "Pass a directory of workshop documents with --source.")
		}
		return err
	}
	e, err := providers.New(cfg.Index, nil)
	if err != nil {
		return err
	}
	counter, err := embedder.NewTokenCounter(cfg.Index.Tokenizer)
	if err != nil {
		return errs.Config("index.tokenizer", err.Error())
	}
	var engine vectordb.Engine
	if r.DryRun {
		engine = memory.New()
	} else if engine, err = chromem.Create(cfg.Index.Dir); err != nil {
		return err
	}
	builder := index.NewBuilder(engine, e,
		index.WithCollection(cfg.Index.Collection),
		index.WithBatchSize(cfg.Index.BatchSize),
		index.WithLogger(logger),
		index.WithChunker(embedder.NewTextChunker(
			embedder.WithChunkSize(cfg.Index.ChunkSize),
			embedder.WithChunkOverlap(cfg.Index.ChunkOverlap),
			embedder.WithTokenCounter(counter),
		)),
	)
	stats, err := builder.Build(ctx, r.Source)
	if err != nil {
		return err
	}
	count, err := engine.Count(ctx, cfg.Index.Collection)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "index built",
		slog.String("dir", cfg.Index.Dir),
		slog.Bool("dry_run", r.DryRun),
		slog.Int("files", stats.Files),
		slog.Int("skipped", stats.Skipped),
		slog.Int("chunks", stats.Chunks),
		slog.Int("documents", count),
		slog.Int64("tokens", stats.Usage.Total()),
	)
	return nil
}
