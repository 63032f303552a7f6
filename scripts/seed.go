// Seed script for creating demo data in Mindfold.
// Run with: go run ./scripts/seed.go
package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mindfold-ai/mindfold/internal/config"
	"github.com/mindfold-ai/mindfold/internal/domain"
	"github.com/mindfold-ai/mindfold/internal/store"
	"github.com/mindfold-ai/mindfold/internal/tagging"
)

type exchange struct {
	question string
	answer   string
}

var demoExchanges = []exchange{
	{
		question: "Where do you want to host the new service?",
		answer:   "On my own hardware. I would rather manage a local docker setup than depend on a cloud provider.",
	},
	{
		question: "What about the vector search piece?",
		answer:   "I want to run the embedding model locally with ollama. Inference latency matters less than keeping data in-house.",
	},
	{
		question: "The CSV importer keeps crashing on malformed rows.",
		answer:   "That error again. Fix the parser to skip bad rows instead of failing the whole file, this is too fragile.",
	},
	{
		question: "How do you pick what to learn next?",
		answer:   "I study one system deeply before moving on. Right now the curriculum is storage engines, then consensus.",
	},
	{
		question: "Any thoughts on the index fund versus stock picking debate?",
		answer:   "I invest mostly in index funds but keep a small value portfolio to practice reading fundamentals.",
	},
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("load config: %v", err)
	}

	dataDir := config.DataDir()
	episodic := store.NewEpisodicStore(filepath.Join(dataDir, "episodic_log.jsonl"))
	ctx := context.Background()

	for _, ex := range demoExchanges {
		in := &domain.Interaction{
			Platform:     domain.PlatformChat,
			Question:     ex.question,
			Answer:       ex.answer,
			AuthorIsUser: true,
			Tags:         tagging.Tags(ex.question + " " + ex.answer),
			Confidence:   tagging.Confidence(ex.question, ex.answer),
		}
		if err := episodic.Append(ctx, in); err != nil {
			log.Fatalf("append: %v", err)
		}
		fmt.Printf("seeded [%s] seq=%d tags=%v\n", in.ID, in.Seq, in.Tags)
	}

	count, err := episodic.Count(ctx)
	if err != nil {
		log.Fatalf("count: %v", err)
	}
	fmt.Printf("episodic log now holds %d interactions in %s\n", count, dataDir)
	fmt.Println("next: POST /v1/reflect to extract beliefs, then /v1/synthesize")
}
