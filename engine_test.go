//go:build cgo

package corpusengine_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"corpusengine"
)

func writeTestDocs(t *testing.T, dir string) {
	t.Helper()
	docs := map[string]string{
		"rockets.txt": "rocket engine fuel rocket launch orbit rocket fuel launch engine",
		"bread.txt":   "bread oven flour bread bake yeast flour bake oven bread",
	}
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestEngineEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeTestDocs(t, dir)

	cfg := corpusengine.DefaultConfig()
	cfg.StoragePath = filepath.Join(t.TempDir(), "engine.db")
	cfg.NumTopics = 2
	cfg.RandomSeed = 7

	eng, err := corpusengine.NewEngine(cfg)
	require.NoError(t, err)
	defer eng.Close()

	ctx := context.Background()

	require.NoError(t, eng.IngestDirectory(ctx, "demo", dir))
	require.NoError(t, eng.Tokenize(ctx, "demo", nil, nil))

	model, err := eng.TrainTopics(ctx, "demo", 50)
	require.NoError(t, err)
	require.NotNil(t, model)

	results, err := eng.FindSimilarDocuments(ctx, nil, "rockets", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.Equal(t, "rockets", results[0].DocumentName)
}

func TestEngineTokenizeUnknownCorpusFails(t *testing.T) {
	cfg := corpusengine.DefaultConfig()
	eng, err := corpusengine.NewEngine(cfg)
	require.NoError(t, err)
	defer eng.Close()

	err = eng.Tokenize(context.Background(), "nope", nil, nil)
	require.Error(t, err)
	require.Equal(t, corpusengine.KindUnknownDocument, corpusengine.KindOf(err))
}
