package tradewar

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// profilesFile mirrors the on-disk profile catalog layout.
type profilesFile struct {
	Profiles map[string]profileJSON `json:"profiles"`
}

type profileJSON struct {
	Description           string             `json:"description"`
	Phases                map[string][2]int  `json:"phases"`
	PhasePercentages      *PhasePercentages  `json:"phase_percentages,omitempty"`
	DominantProbabilities map[string]float64 `json:"dominant_probabilities"`
	EpsilonSchedule       epsilonJSON        `json:"epsilon_schedule"`
	SecurityLevel         securityJSON       `json:"security_level"`
	Retaliation           *retaliationJSON   `json:"retaliation,omitempty"`
	MixedStrategy         mixedStrategyJSON  `json:"mixed_strategy"`
	NumRounds             int                `json:"num_rounds"`
}

type epsilonJSON struct {
	Type        string             `json:"type"`
	Value       float64            `json:"value,omitempty"`
	Start       float64            `json:"start,omitempty"`
	End         float64            `json:"end,omitempty"`
	EndRound    int                `json:"end_round,omitempty"`
	Base        float64            `json:"base,omitempty"`
	Floor       float64            `json:"floor,omitempty"`
	Tau         float64            `json:"tau,omitempty"`
	Values      map[string]float64 `json:"values,omitempty"`
	SwitchRound int                `json:"switch_round,omitempty"`
}

type securityJSON struct {
	Trigger map[string]bool `json:"trigger"`
	Prob    float64         `json:"prob"`
}

type retaliationJSON struct {
	UserDefectedPrev *struct {
		Prob float64 `json:"prob"`
	} `json:"user_defected_prev,omitempty"`
	UserCoopStreakGE *struct {
		Streak            int     `json:"streak"`
		OneshotDefectProb float64 `json:"oneshot_defect_prob"`
	} `json:"user_coop_streak_ge,omitempty"`
	UserDefectedFirst *struct {
		Prob float64 `json:"prob"`
	} `json:"user_defected_first,omitempty"`
	UserDefectedLast2 *struct {
		Prob float64 `json:"prob"`
	} `json:"user_defected_last_2,omitempty"`
}

type mixedStrategyJSON struct {
	RefreshEvery int `json:"refresh_every"`
}

// ProfileCatalog is the set of computer personas available to new games.
type ProfileCatalog struct {
	profiles map[string]*Profile
}

// LoadProfiles reads a profile catalog from a JSON file. If the file does not
// exist the compiled-in defaults are returned.
func LoadProfiles(path string) (*ProfileCatalog, error) {
	if path == "" {
		return DefaultProfiles(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		glog.Warningf("profile catalog %s not found, using defaults", path)
		return DefaultProfiles(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading profile catalog %s", path)
	}

	var file profilesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "parsing profile catalog %s", path)
	}

	catalog := &ProfileCatalog{profiles: make(map[string]*Profile, len(file.Profiles))}
	for name, pj := range file.Profiles {
		profile, err := pj.toProfile(name)
		if err != nil {
			return nil, errors.Wrapf(err, "profile %q", name)
		}
		catalog.profiles[name] = profile
	}

	glog.Infof("loaded %d profiles from %s", len(catalog.profiles), path)
	return catalog, nil
}

func (pj profileJSON) toProfile(name string) (*Profile, error) {
	p1, ok1 := pj.Phases["p1"]
	p2, ok2 := pj.Phases["p2"]
	p3, ok3 := pj.Phases["p3"]
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.New("phases must define p1, p2 and p3")
	}

	dominant := map[Phase]float64{
		Phase1: pj.DominantProbabilities["p1"],
		Phase2: pj.DominantProbabilities["p2"],
		Phase3: pj.DominantProbabilities["p3"],
	}

	epsilon, err := pj.EpsilonSchedule.toSchedule()
	if err != nil {
		return nil, err
	}

	numRounds := pj.NumRounds
	if numRounds <= 0 {
		numRounds = p3[1] + 1
	}

	profile := &Profile{
		Name:        name,
		Description: pj.Description,
		Phases: Phases{
			P1: PhaseBounds{p1[0], p1[1]},
			P2: PhaseBounds{p2[0], p2[1]},
			P3: PhaseBounds{p3[0], p3[1]},
		},
		PhasePercentages:      pj.PhasePercentages,
		DominantProbabilities: dominant,
		Epsilon:               epsilon,
		Security: SecurityLevel{
			TriggerUserDominant: pj.SecurityLevel.Trigger["user_dominant"],
			Prob:                pj.SecurityLevel.Prob,
		},
		Retaliation:   pj.Retaliation.toRetaliation(),
		MixedStrategy: MixedStrategyConfig{RefreshEvery: pj.MixedStrategy.RefreshEvery},
		NumRounds:     numRounds,
	}
	return profile, nil
}

func (ej epsilonJSON) toSchedule() (EpsilonSchedule, error) {
	switch ej.Type {
	case "constant":
		return EpsilonSchedule{Kind: EpsilonConstant, Value: ej.Value}, nil
	case "linear":
		return EpsilonSchedule{Kind: EpsilonLinear, Start: ej.Start, End: ej.End, EndRound: ej.EndRound}, nil
	case "decay":
		return EpsilonSchedule{Kind: EpsilonDecay, Base: ej.Base, Floor: ej.Floor, Tau: ej.Tau}, nil
	case "piecewise":
		return EpsilonSchedule{
			Kind:        EpsilonPiecewise,
			Early:       ej.Values["early"],
			Late:        ej.Values["late"],
			SwitchRound: ej.SwitchRound,
		}, nil
	case "linear_decay":
		return EpsilonSchedule{Kind: EpsilonLinearDecay, Start: ej.Start, End: ej.End, EndRound: ej.EndRound}, nil
	}
	// Unknown schedule types degrade to the defensive constant rather than
	// failing the catalog load.
	glog.Warningf("unknown epsilon schedule type %q, using constant %.2f", ej.Type, defaultEpsilon)
	return EpsilonSchedule{Kind: epsilonUnknown}, nil
}

func (rj *retaliationJSON) toRetaliation() *Retaliation {
	if rj == nil {
		return nil
	}
	r := &Retaliation{}
	if rj.UserDefectedPrev != nil {
		r.UserDefectedPrevProb = rj.UserDefectedPrev.Prob
	}
	if rj.UserCoopStreakGE != nil {
		r.CoopStreakLength = rj.UserCoopStreakGE.Streak
		r.CoopStreakDefectProb = rj.UserCoopStreakGE.OneshotDefectProb
	}
	if rj.UserDefectedFirst != nil {
		r.UserDefectedFirstProb = rj.UserDefectedFirst.Prob
	}
	if rj.UserDefectedLast2 != nil {
		r.UserDefectedLast2Prob = rj.UserDefectedLast2.Prob
	}
	return r
}

// DefaultProfiles returns the compiled-in profile catalog.
func DefaultProfiles() *ProfileCatalog {
	aggressive := &Profile{
		Name:        "Aggressive",
		Description: "Leans on dominant play early and explores little",
		Phases: Phases{
			P1: PhaseBounds{0, 20},
			P2: PhaseBounds{21, 120},
			P3: PhaseBounds{121, 199},
		},
		DominantProbabilities: map[Phase]float64{Phase1: 0.8, Phase2: 0.6, Phase3: 0.4},
		Epsilon:               EpsilonSchedule{Kind: EpsilonLinearDecay, Start: 0.3, End: 0.05, EndRound: 120},
		Security:              SecurityLevel{TriggerUserDominant: true, Prob: 0.8},
		MixedStrategy:         MixedStrategyConfig{RefreshEvery: defaultRefreshEvery},
		NumRounds:             200,
	}

	balanced := &Profile{
		Name:        "Balanced",
		Description: "Default computer behavior",
		Phases: Phases{
			P1: PhaseBounds{0, 20},
			P2: PhaseBounds{21, 120},
			P3: PhaseBounds{121, 199},
		},
		DominantProbabilities: map[Phase]float64{Phase1: 0.6, Phase2: 0.4, Phase3: 0.2},
		Epsilon:               EpsilonSchedule{Kind: EpsilonConstant, Value: 0.3},
		Security:              SecurityLevel{TriggerUserDominant: true, Prob: 0.5},
		MixedStrategy:         MixedStrategyConfig{RefreshEvery: defaultRefreshEvery},
		NumRounds:             200,
	}

	cautious := &Profile{
		Name:        "Cautious",
		Description: "Explores heavily early, settles into equalizing play",
		Phases: Phases{
			P1: PhaseBounds{0, 15},
			P2: PhaseBounds{16, 100},
			P3: PhaseBounds{101, 199},
		},
		DominantProbabilities: map[Phase]float64{Phase1: 0.4, Phase2: 0.3, Phase3: 0.1},
		Epsilon:               EpsilonSchedule{Kind: EpsilonDecay, Base: 0.5, Floor: 0.1, Tau: 40},
		Security:              SecurityLevel{TriggerUserDominant: true, Prob: 0.3},
		MixedStrategy:         MixedStrategyConfig{RefreshEvery: defaultRefreshEvery},
		NumRounds:             200,
	}

	return &ProfileCatalog{profiles: map[string]*Profile{
		aggressive.Name: aggressive,
		balanced.Name:   balanced,
		cautious.Name:   cautious,
	}}
}

// Get returns the named profile, or nil if it is not in the catalog.
func (c *ProfileCatalog) Get(name string) *Profile {
	return c.profiles[name]
}

// Names lists the available profile names in sorted order.
func (c *ProfileCatalog) Names() []string {
	names := make([]string, 0, len(c.profiles))
	for name := range c.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
