// Exports user-corrected feedback pairs as JSONL for fine-tuning
// pipelines. Only edited records are exported; the user's corrected
// message is treated as ground truth.
package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/cyberglobes/querybuilder/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "query_builder.db"
	}
	outPath := os.Getenv("CORRECTIONS_OUTPUT")
	if outPath == "" {
		outPath = "corrections.jsonl"
	}

	feedback, err := store.NewFeedbackStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open feedback store: %v", err)
	}
	defer feedback.Close()

	pairs, err := feedback.ExportCorrections()
	if err != nil {
		log.Fatalf("Failed to export corrections: %v", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", outPath, err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	for _, pair := range pairs {
		if err := enc.Encode(pair); err != nil {
			log.Fatalf("Failed to write pair: %v", err)
		}
	}

	log.Printf("Exported %d correction pairs to %s", len(pairs), outPath)
}
