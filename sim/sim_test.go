package sim

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/garage/core/garage"
	"github.com/kilianp07/garage/infra/storage"
)

func newGarage() *garage.Garage {
	return garage.New(storage.NewMemory(0))
}

func TestScenarioFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no scenario files found")
	}
	for _, f := range files {
		sc, err := Load(f)
		if err != nil {
			t.Fatalf("load %s: %v", f, err)
		}
		t.Run(sc.Name, func(t *testing.T) {
			res, err := NewRunner(newGarage(), nil).Run(context.Background(), sc)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, msg := range res.Failures {
				t.Error(msg)
			}
		})
	}
}

func writeScenario(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestRunReportsUnmetExpectations(t *testing.T) {
	path := writeScenario(t, `name: "wrong"
vehicles:
  - kind: "car"
    model: "Corolla"
    color: "blue"
steps:
  - op: "turn_on"
    vehicle: "car"
expected:
  - vehicle: "car"
    speed: 99
`)
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	res, err := NewRunner(newGarage(), nil).Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.OK() {
		t.Fatal("expected a failing result")
	}
	if len(res.Failures) != 1 {
		t.Fatalf("failures = %v, want 1", res.Failures)
	}
}

func TestRunFlagsUnexpectedOutcomes(t *testing.T) {
	path := writeScenario(t, `name: "outcomes"
vehicles:
  - kind: "car"
    model: "Corolla"
    color: "blue"
steps:
  - op: "accelerate"
    vehicle: "car"
  - op: "turn_on"
    vehicle: "car"
    want_error: true
`)
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	res, err := NewRunner(newGarage(), nil).Run(context.Background(), sc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// Both steps misbehave: the first is rejected, the second succeeds while
	// the scenario expected a rejection.
	if len(res.Failures) != 2 {
		t.Fatalf("failures = %v, want 2", res.Failures)
	}
}

func TestRunRejectsStructuralMistakes(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"no vehicles", "name: \"x\"\n"},
		{"bad kind", "name: \"x\"\nvehicles:\n  - kind: \"boat\"\n    model: \"S\"\n    color: \"white\"\n"},
		{"unknown op", "name: \"x\"\nvehicles:\n  - kind: \"car\"\n    model: \"C\"\n    color: \"blue\"\nsteps:\n  - op: \"fly\"\n    vehicle: \"car\"\n"},
		{"unknown vehicle", "name: \"x\"\nvehicles:\n  - kind: \"car\"\n    model: \"C\"\n    color: \"blue\"\nsteps:\n  - op: \"turn_on\"\n    vehicle: \"truck\"\n"},
		{"record missing", "name: \"x\"\nvehicles:\n  - kind: \"car\"\n    model: \"C\"\n    color: \"blue\"\nsteps:\n  - op: \"add_maintenance\"\n    vehicle: \"car\"\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sc, err := Load(writeScenario(t, c.data))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if _, err := NewRunner(newGarage(), nil).Run(context.Background(), sc); err == nil {
				t.Fatal("expected a structural error")
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load("no-file.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := Load(writeScenario(t, "{")); err == nil {
		t.Fatal("expected unmarshal error")
	}
	if _, err := Load(writeScenario(t, "description: \"unnamed\"\n")); err == nil {
		t.Fatal("expected missing name error")
	}
}
