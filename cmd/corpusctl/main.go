// Command corpusctl is a demo CLI over the corpusengine library: point it
// at a directory of source documents and it ingests, tokenises and trains a
// topic model, and with -search runs a similarity search against the
// result, logging each
// stage with log/slog the way the teacher repo's server command does.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"corpusengine"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	var (
		dir        = flag.String("dir", "", "directory of source documents to ingest (required)")
		corpusName = flag.String("corpus", "demo", "name of the corpus to build")
		dbPath     = flag.String("db", ":memory:", "SQLite database path ( :memory: for none)")
		numTopics  = flag.Int("topics", 10, "number of topics to train")
		iterations = flag.Int("iterations", 200, "Gibbs sampling iterations")
		searchTerm = flag.String("search", "", "optional document-name substring to search for after training")
		maxResults = flag.Int("max-results", 5, "maximum number of search results to print")
	)
	flag.Parse()

	if *dir == "" {
		slog.Error("missing required -dir flag")
		os.Exit(2)
	}

	cfg := corpusengine.DefaultConfig()
	cfg.StoragePath = *dbPath
	cfg.NumTopics = *numTopics

	eng, err := corpusengine.NewEngine(cfg)
	if err != nil {
		slog.Error("creating engine", "error", err)
		os.Exit(1)
	}
	defer eng.Close()

	ctx := context.Background()

	slog.Info("ingesting", "dir", *dir, "corpus", *corpusName)
	if err := eng.IngestDirectory(ctx, *corpusName, *dir); err != nil {
		slog.Error("ingest failed", "error", err)
		os.Exit(1)
	}

	slog.Info("tokenising", "corpus", *corpusName)
	if err := eng.Tokenize(ctx, *corpusName, nil, nil); err != nil {
		slog.Error("tokenise failed", "error", err)
		os.Exit(1)
	}

	slog.Info("training topic model", "corpus", *corpusName, "topics", *numTopics, "iterations", *iterations)
	model, err := eng.TrainTopics(ctx, *corpusName, *iterations)
	if err != nil {
		slog.Error("training failed", "error", err)
		os.Exit(1)
	}

	info := model.GetModelInfo()
	slog.Info("training complete", "vocab_size", info.UsedVocabSize, "live_topics", info.NumLiveTopics)

	if *searchTerm == "" {
		return
	}

	results, err := eng.FindSimilarDocuments(ctx, nil, *searchTerm, *maxResults)
	if err != nil {
		slog.Error("search failed", "error", err)
		os.Exit(1)
	}

	for _, r := range results {
		fmt.Printf("%s\tscore=%.4f\tmatched_by=%v\n", r.DocumentName, r.Score, r.MatchedBy)
	}
}
