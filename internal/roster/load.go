package roster

import (
	"fmt"
	"os"

	"github.com/ultitrack/recorder/pkg/core"
	"gopkg.in/yaml.v3"
)

// file is the on-disk layout of a roster file.
//
//	home:
//	  name: Sharks
//	  players:
//	    - {id: h1, name: Alex K., number: "12", gender: M}
type file struct {
	Home team `yaml:"home"`
	Away team `yaml:"away"`
}

type team struct {
	Name    string        `yaml:"name"`
	Players []core.Player `yaml:"players"`
}

// Teams is a loaded roster plus the team names it declared.
type Teams struct {
	HomeName string
	AwayName string
	Roster   core.Roster
}

// Load reads a YAML roster file. An empty path yields the built-in teams.
func Load(path string) (Teams, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Teams{}, fmt.Errorf("failed to read roster file: %w", err)
	}
	return Parse(data)
}

// Parse decodes roster YAML.
func Parse(data []byte) (Teams, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Teams{}, fmt.Errorf("failed to parse roster: %w", err)
	}
	if len(f.Home.Players) == 0 || len(f.Away.Players) == 0 {
		return Teams{}, fmt.Errorf("roster must list players for both teams")
	}

	t := Teams{
		HomeName: f.Home.Name,
		AwayName: f.Away.Name,
		Roster:   core.Roster{Home: f.Home.Players, Away: f.Away.Players},
	}
	if t.HomeName == "" {
		t.HomeName = "Home"
	}
	if t.AwayName == "" {
		t.AwayName = "Away"
	}
	return t, nil
}

// Marshal encodes teams in the same layout Parse reads.
func Marshal(t Teams) ([]byte, error) {
	return yaml.Marshal(file{
		Home: team{Name: t.HomeName, Players: t.Roster.Home},
		Away: team{Name: t.AwayName, Players: t.Roster.Away},
	})
}
