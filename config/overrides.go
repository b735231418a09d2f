package config

import (
	"os"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// overrideFile mirrors the tunable sections of the global configuration.
// Sections are pre-filled with the current values so a file only needs to
// name the fields it changes.
type overrideFile struct {
	Combat  CombatConfig         `yaml:"combat"`
	Cue     CueConfig            `yaml:"cue"`
	Physics PhysicsConfig        `yaml:"physics"`
	Hazard  HazardConfig         `yaml:"hazard"`
	Plug    PlugConfig           `yaml:"plug"`
	Server  ServerConfig         `yaml:"server"`
	Actors  map[string]yaml.Node `yaml:"actors"`
}

// LoadOverrides applies a YAML tuning file on top of the current configuration.
func LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
	}
	return ApplyOverrides(data)
}

// ApplyOverrides applies YAML tuning data on top of the current configuration.
// Nothing is changed when the data fails to decode.
func ApplyOverrides(data []byte) error {
	file := overrideFile{
		Combat:  Combat,
		Cue:     Cue,
		Physics: Physics,
		Hazard:  Hazard,
		Plug:    Plug,
		Server:  Server,
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "decode overrides").Wrap(err)
	}

	kinds := make(map[string]ActorKindConfig, len(Actors.Kinds))
	for name, k := range Actors.Kinds {
		kinds[name] = k
	}
	for name, node := range file.Actors {
		k, ok := kinds[name]
		if !ok {
			return oops.Code("CONFIG_INVALID").With("kind", name).Errorf("unknown actor kind %q", name)
		}
		if err := node.Decode(&k); err != nil {
			return oops.Code("CONFIG_INVALID").With("kind", name).Wrap(err)
		}
		k.Kind = name
		kinds[name] = k
	}

	Combat = file.Combat
	Cue = file.Cue
	Physics = file.Physics
	Hazard = file.Hazard
	Plug = file.Plug
	Server = file.Server
	Actors = ActorsConfig{Kinds: kinds}
	return nil
}
