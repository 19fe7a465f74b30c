package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Interest is one member of the closed set of planning interests.
type Interest uint8

const (
	InterestCoffee Interest = iota
	InterestFood
	InterestHistory
	InterestArt
	InterestArchitecture
	InterestShopping
	InterestMuseums
	InterestParks
	InterestTheatre
	InterestMusic
	InterestMarkets
	InterestNightlife
	InterestPhotography
	InterestSightseeing
	InterestHiddenGems
	InterestLocalExperience
	InterestEntertainment
	InterestBlackHistoryMonth

	interestCount
)

var interestNames = [interestCount]string{
	InterestCoffee:            "coffee",
	InterestFood:              "food",
	InterestHistory:           "history",
	InterestArt:               "art",
	InterestArchitecture:      "architecture",
	InterestShopping:          "shopping",
	InterestMuseums:           "museums",
	InterestParks:             "parks",
	InterestTheatre:           "theatre",
	InterestMusic:             "music",
	InterestMarkets:           "markets",
	InterestNightlife:         "nightlife",
	InterestPhotography:       "photography",
	InterestSightseeing:       "sightseeing",
	InterestHiddenGems:        "hiddenGems",
	InterestLocalExperience:   "localExperience",
	InterestEntertainment:     "entertainment",
	InterestBlackHistoryMonth: "blackHistoryMonth",
}

// interestLookup maps the normalised form of every canonical name to its Interest.
var interestLookup = func() map[string]Interest {
	m := make(map[string]Interest, interestCount)
	for i, name := range interestNames {
		m[normaliseInterest(name)] = Interest(i)
	}
	return m
}()

func normaliseInterest(s string) string {
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

func (i Interest) String() string {
	if i >= interestCount {
		return fmt.Sprintf("Interest(%d)", uint8(i))
	}
	return interestNames[i]
}

// ParseInterest accepts canonical names as well as UI labels such as "Hidden Gems"
// or "black_history_month".
func ParseInterest(s string) (Interest, error) {
	i, ok := interestLookup[normaliseInterest(s)]
	if !ok {
		return 0, fmt.Errorf("unknown interest %q", s)
	}
	return i, nil
}

// AllInterests returns every known interest in declaration order.
func AllInterests() []Interest {
	all := make([]Interest, 0, interestCount)
	for i := Interest(0); i < interestCount; i++ {
		all = append(all, i)
	}
	return all
}

// Interests is a set of Interest flags stored as a bitfield.
type Interests uint32

func NewInterests(in ...Interest) Interests {
	var s Interests
	for _, i := range in {
		s = s.With(i)
	}
	return s
}

func (s Interests) Has(i Interest) bool {
	return i < interestCount && s&(1<<i) != 0
}

func (s Interests) With(i Interest) Interests {
	if i >= interestCount {
		return s
	}
	return s | 1<<i
}

func (s Interests) IsEmpty() bool { return s == 0 }

// List returns the members in declaration order.
func (s Interests) List() []Interest {
	var out []Interest
	for i := Interest(0); i < interestCount; i++ {
		if s.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

func (s Interests) Names() []string {
	names := make([]string, 0, interestCount)
	for _, i := range s.List() {
		names = append(names, i.String())
	}
	return names
}

func (s Interests) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *Interests) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("interests must be an array of strings: %w", err)
	}
	var set Interests
	for _, name := range names {
		i, err := ParseInterest(name)
		if err != nil {
			return err
		}
		set = set.With(i)
	}
	*s = set
	return nil
}
