package tradewar

import (
	"os"
	"path/filepath"
	"testing"
)

const testCatalogJSON = `{
  "profiles": {
    "Hawkish": {
      "description": "Aggressive opener",
      "phases": {"p1": [0, 20], "p2": [21, 120], "p3": [121, 199]},
      "phase_percentages": {"p1": 0.1, "p2": 0.5, "p3": 0.4},
      "dominant_probabilities": {"p1": 0.9, "p2": 0.7, "p3": 0.5},
      "epsilon_schedule": {"type": "decay", "base": 0.5, "floor": 0.05, "tau": 30},
      "security_level": {"trigger": {"user_dominant": true}, "prob": 0.8},
      "mixed_strategy": {"refresh_every": 15},
      "num_rounds": 200
    },
    "Dovish": {
      "description": "Exploration-heavy",
      "phases": {"p1": [0, 10], "p2": [11, 50], "p3": [51, 99]},
      "dominant_probabilities": {"p1": 0.3, "p2": 0.3, "p3": 0.3},
      "epsilon_schedule": {"type": "constant", "value": 0.2},
      "security_level": {"trigger": {}, "prob": 0},
      "mixed_strategy": {}
    }
  }
}`

func writeTestCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProfiles(t *testing.T) {
	catalog, err := LoadProfiles(writeTestCatalog(t, testCatalogJSON))
	if err != nil {
		t.Fatal(err)
	}

	hawkish := catalog.Get("Hawkish")
	if hawkish == nil {
		t.Fatal("Hawkish profile missing")
	}
	if hawkish.Phases.P2.Start != 21 || hawkish.Phases.P2.End != 120 {
		t.Errorf("P2 bounds = %+v, want [21,120]", hawkish.Phases.P2)
	}
	if hawkish.Epsilon.Kind != EpsilonDecay || hawkish.Epsilon.Tau != 30 {
		t.Errorf("epsilon schedule = %+v, want decay with tau 30", hawkish.Epsilon)
	}
	if !hawkish.Security.TriggerUserDominant || hawkish.Security.Prob != 0.8 {
		t.Errorf("security = %+v, want user_dominant trigger at 0.8", hawkish.Security)
	}
	if hawkish.MixedStrategy.RefreshEvery != 15 {
		t.Errorf("refresh_every = %d, want 15", hawkish.MixedStrategy.RefreshEvery)
	}
	if got := hawkish.DominantProbability(0); got != 0.9 {
		t.Errorf("DominantProbability(0) = %v, want 0.9", got)
	}

	dovish := catalog.Get("Dovish")
	if dovish == nil {
		t.Fatal("Dovish profile missing")
	}
	// num_rounds omitted: derived from the last phase bound.
	if dovish.NumRounds != 100 {
		t.Errorf("NumRounds = %d, want 100", dovish.NumRounds)
	}
}

func TestLoadProfilesMissingPhase(t *testing.T) {
	broken := `{"profiles": {"Bad": {
		"phases": {"p1": [0, 10], "p2": [11, 50]},
		"epsilon_schedule": {"type": "constant", "value": 0.1},
		"security_level": {"trigger": {}, "prob": 0},
		"mixed_strategy": {}
	}}}`
	if _, err := LoadProfiles(writeTestCatalog(t, broken)); err == nil {
		t.Error("expected error for catalog with missing p3")
	}
}

func TestLoadProfilesUnknownEpsilonType(t *testing.T) {
	catalog, err := LoadProfiles(writeTestCatalog(t, `{"profiles": {"Odd": {
		"phases": {"p1": [0, 10], "p2": [11, 50], "p3": [51, 99]},
		"epsilon_schedule": {"type": "sinusoidal"},
		"security_level": {"trigger": {}, "prob": 0},
		"mixed_strategy": {}
	}}}`))
	if err != nil {
		t.Fatal(err)
	}
	p := catalog.Get("Odd")
	if got := p.EpsilonAt(42); got != defaultEpsilon {
		t.Errorf("unknown schedule type should degrade to %v, got %v", defaultEpsilon, got)
	}
}

func TestLoadProfilesMissingFileUsesDefaults(t *testing.T) {
	catalog, err := LoadProfiles(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(catalog.Names()) == 0 {
		t.Error("default catalog is empty")
	}
}

func TestDefaultProfiles(t *testing.T) {
	catalog := DefaultProfiles()
	for _, name := range catalog.Names() {
		p := catalog.Get(name)
		if p.NumRounds <= 0 {
			t.Errorf("profile %s has no round count", name)
		}
		if p.Phases.P1.Start != 0 {
			t.Errorf("profile %s P1 does not start at round 0", name)
		}
		if p.Phases.P3.End != p.NumRounds-1 {
			t.Errorf("profile %s phases do not cover all rounds: %+v", name, p.Phases)
		}
	}
}
