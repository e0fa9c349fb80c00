package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/components/vectordb/engines/chromem"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/config"
	"github.com/Hamjaster/AI-Agents-From-Idea-to-Deployment/errs"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("workshop"), kong.Vars{"default_topic": config.DefaultTopic})
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	kctx.BindTo(context.Background(), (*context.Context)(nil))
	return &cli, kctx
}

func TestRunIsDefaultCommand(t *testing.T) {
	cli, kctx := parse(t)
	assert.Equal(t, "run", kctx.Command())
	assert.Equal(t, config.DefaultTopic, cli.Run.Topic)

	cli, kctx = parse(t, "--topic", "Edge AI", "-v")
	assert.Equal(t, "run", kctx.Command())
	assert.Equal(t, "Edge AI", cli.Run.Topic)
	assert.True(t, cli.Verbose)
}

func TestRunWithoutAPIKey(t *testing.T) {
	t.Setenv(config.APIKeyEnv, "")
	cli, kctx := parse(t, "run", "--topic", "Edge AI")
	err := kctx.Run(&cli.Globals, quiet)
	var target *errs.ConfigurationError
	require.ErrorAs(t, err, &target)
	assert.Contains(t, err.Error(), "OPENROUTER_API_KEY is missing")
}

func TestIndexMissingSource(t *testing.T) {
	cli, kctx := parse(t, "index", "--source", filepath.Join(t.TempDir(), "nope"))
	err := kctx.Run(&cli.Globals, quiet)
	var target *errs.ResourceNotFoundError
	assert.ErrorAs(t, err, &target)
}

func TestIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Inputs []string `json:"inputs"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		ret := make([][]float64, len(req.Inputs))
		for i, in := range req.Inputs {
			ret[i] = []float64{float64(len(in)), 1, 0.5}
		}
		json.NewEncoder(w).Encode(ret)
	}))
	defer srv.Close()

	tmp := t.TempDir()
	source := filepath.Join(tmp, "docs")
	require.NoError(t, os.MkdirAll(source, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "agents.md"), []byte("# Agents\n\nPlanner agents draft milestones. Researchers cite sources."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "deploy.txt"), []byte("Deploy the crew with containers."), 0o644))

	cfgFile := filepath.Join(tmp, "workshop.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(fmt.Sprintf("index:\n  embedding_base_url: %s\n", srv.URL)), 0o644))
	indexDir := filepath.Join(tmp, "vectorstore")

	cli, kctx := parse(t, "--config", cfgFile, "index", "--source", source, "--dir", indexDir, "--dry-run")
	require.NoError(t, kctx.Run(&cli.Globals, quiet))
	_, err := os.Stat(indexDir)
	assert.True(t, os.IsNotExist(err))

	cli, kctx = parse(t, "--config", cfgFile, "index", "--source", source, "--dir", indexDir)
	require.NoError(t, kctx.Run(&cli.Globals, quiet))
	engine, err := chromem.Open(indexDir)
	require.NoError(t, err)
	count, err := engine.Count(context.Background(), config.Default().Index.Collection)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
