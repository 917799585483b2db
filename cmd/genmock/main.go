// Command genmock writes the truth-table fixture used by the pipeline tests
// and by cmd/validate. It evaluates every input combination with the domain
// package so the fixture always matches the running evaluator.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/truth_table.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/umbrella-gate/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/mock/truth_table.json", "output path for the truth-table fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rows := domain.TruthTable()
	if err := writeJSON(*out, rows); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d rows to %s", len(rows), *out)

	printStats(rows)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(rows []domain.TruthTableRow) {
	var reminder, risk, hazard, consistent int
	for _, r := range rows {
		if r.Result.ReminderOn {
			reminder++
		}
		if r.Result.OrRisk {
			risk++
		}
		if r.Result.Hazard {
			hazard++
		}
		if r.Result.XnorConsistent {
			consistent++
		}
	}
	log.Printf("reminder on: %d/%d", reminder, len(rows))
	log.Printf("rain risk: %d, hazard: %d, time/wind consistent: %d", risk, hazard, consistent)
}
