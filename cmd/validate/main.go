// Command validate checks the gate network and the truth-table fixture for
// consistency: primitive gate truth tables, the structural identities the
// reminder relies on, and parity between the fixture and the live evaluator.
//
// Usage:
//
//	go run ./cmd/validate -fixture data/mock/truth_table.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/umbrella-gate/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	fixture := flag.String("fixture", "data/mock/truth_table.json", "path to the truth-table fixture")
	flag.Parse()

	if *fixture == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*fixture); code != 0 {
		os.Exit(code)
	}
}

func run(fixturePath string) int {
	fmt.Println("=== Umbrella Gate Validation ===")
	fmt.Println()

	rows, err := loadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
		return 1
	}

	phases := []*phase{
		validatePrimitives(),
		validateIdentities(),
		validateFixture(rows),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d fixture, %d combinations\n", len(rows), len(domain.AllInputStates()))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadFixture(path string) ([]domain.TruthTableRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []domain.TruthTableRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return rows, nil
}

// ── Phase 1: primitive gates ──

func validatePrimitives() *phase {
	p := &phase{name: "Phase 1: Primitive gate truth tables"}

	want := map[domain.GateType][4]bool{
		// a,b = 00, 01, 10, 11
		domain.AND:  {false, false, false, true},
		domain.OR:   {false, true, true, true},
		domain.NOR:  {true, false, false, false},
		domain.XNOR: {true, false, false, true},
	}
	for g, outs := range want {
		for i, exp := range outs {
			a, b := i&2 != 0, i&1 != 0
			if got := g.Apply(a, b); got != exp {
				p.errorf("%s(%t, %t) = %t, want %t", g, a, b, got, exp)
			}
		}
	}
	return p
}

// ── Phase 2: structural identities ──

func validateIdentities() *phase {
	p := &phase{name: "Phase 2: Structural identities"}

	for _, in := range domain.AllInputStates() {
		r := domain.Evaluate(in)
		if r.NorNoRain != !r.OrRisk {
			p.errorf("%+v: nor_no_rain=%t but or_risk=%t", in, r.NorNoRain, r.OrRisk)
		}
		if r.ReminderOn != (r.OrRisk && !r.Hazard) {
			p.errorf("%+v: reminder_on=%t, want or_risk AND NOT hazard", in, r.ReminderOn)
		}
		if want := (in.Rain || in.Drizzle) && !(in.Drizzle && in.Wind); r.ReminderOn != want {
			p.errorf("%+v: reminder_on=%t, want %t", in, r.ReminderOn, want)
		}

		// Flipping time must never change the reminder.
		flipped := domain.Evaluate(in.Toggle(domain.InputTime))
		if flipped.ReminderOn != r.ReminderOn {
			p.errorf("%+v: reminder depends on time", in)
		}
		if r.XnorConsistent != (in.Time == in.Wind) {
			p.errorf("%+v: xnor_consistent=%t, want time == wind", in, r.XnorConsistent)
		}
	}
	return p
}

// ── Phase 3: fixture parity ──

func validateFixture(rows []domain.TruthTableRow) *phase {
	p := &phase{name: "Phase 3: Fixture parity"}

	states := domain.AllInputStates()
	if len(rows) != len(states) {
		p.errorf("fixture has %d rows, want %d", len(rows), len(states))
	}

	seen := make(map[domain.InputState]bool, len(rows))
	for i, row := range rows {
		if seen[row.Inputs] {
			p.errorf("row %d: duplicate inputs %+v", i, row.Inputs)
		}
		seen[row.Inputs] = true

		if got := domain.Evaluate(row.Inputs); got != row.Result {
			p.errorf("row %d: %+v fixture=%+v evaluator=%+v", i, row.Inputs, row.Result, got)
		}
	}
	for _, in := range states {
		if !seen[in] {
			p.errorf("missing combination %+v", in)
		}
	}
	return p
}
