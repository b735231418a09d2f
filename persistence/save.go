// Package persistence stores player progress and settings between runs.
package persistence

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
	"github.com/samber/oops"
)

const (
	// SaveKey is the gdata item holding the save file.
	SaveKey       = "save"
	backupKey     = "save_corrupted"
	SchemaVersion = 1
)

// LevelProgress is the best result recorded for one level.
type LevelProgress struct {
	Unlocked   bool  `json:"unlocked"`
	Stars      int   `json:"stars"`
	BestTimeMs int64 `json:"bestTimeMs"` // -1 until a run is finished
	BestScore  int   `json:"bestScore"`
}

func NewLevelProgress() LevelProgress {
	return LevelProgress{BestTimeMs: -1}
}

// SaveData is the whole save file.
type SaveData struct {
	SchemaVersion int                        `json:"schemaVersion"`
	Version       string                     `json:"version"`
	Settings      map[string]json.RawMessage `json:"settings"`
	Levels        map[string]LevelProgress   `json:"levels"`
	Extra         map[string]json.RawMessage `json:"extra"`
}

// Default builds a fresh save. The first of levels starts unlocked.
func Default(version string, levels ...string) *SaveData {
	data := &SaveData{
		SchemaVersion: SchemaVersion,
		Version:       version,
		Settings:      map[string]json.RawMessage{},
		Levels:        map[string]LevelProgress{},
		Extra:         map[string]json.RawMessage{},
	}
	data.Settings["musicVolume"] = json.RawMessage(`0.8`)
	data.Settings["sfxVolume"] = json.RawMessage(`0.8`)
	data.Settings["language"] = json.RawMessage(`"en"`)

	for i, name := range levels {
		p := NewLevelProgress()
		p.Unlocked = i == 0
		data.Levels[name] = p
	}
	return data
}

// ItemStore is the slice of gdata.Manager the accessor needs.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

var _ ItemStore = (*gdata.Manager)(nil)

// Accessor owns the loaded save and writes it back on every change.
// A nil store keeps everything in memory.
type Accessor struct {
	store   ItemStore
	version string
	levels  []string
	data    *SaveData
}

// Open creates an accessor backed by gdata storage for appName.
func Open(appName, version string, levels ...string) (*Accessor, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return NewAccessor(nil, version, levels...), oops.Code("PERSISTENCE_UNAVAILABLE").With("app", appName).Wrap(err)
	}
	return NewAccessor(m, version, levels...), nil
}

func NewAccessor(store ItemStore, version string, levels ...string) *Accessor {
	return &Accessor{store: store, version: version, levels: levels}
}

// Load reads the save. A missing save is created; an unreadable one is
// backed up and replaced with defaults.
func (a *Accessor) Load() *SaveData {
	a.data = Default(a.version, a.levels...)
	if a.store == nil {
		return a.data
	}

	raw, err := a.store.LoadItem(SaveKey)
	if err != nil {
		log.Printf("Warning: Could not load save data: %v", err)
		return a.data
	}
	if raw == nil {
		_ = a.Save()
		return a.data
	}

	var loaded SaveData
	if err := json.Unmarshal(raw, &loaded); err != nil {
		log.Printf("Warning: Could not parse save data, starting fresh: %v", err)
		if err := a.store.SaveItem(backupKey, raw); err != nil {
			log.Printf("Warning: Could not back up save data: %v", err)
		}
		_ = a.Save()
		return a.data
	}

	a.merge(&loaded)
	return a.data
}

// merge lays loaded on top of the defaults, so levels and settings added
// since the save was written still show up.
func (a *Accessor) merge(loaded *SaveData) {
	if loaded.SchemaVersion != 0 {
		a.data.SchemaVersion = loaded.SchemaVersion
	}
	if loaded.Version != "" {
		a.data.Version = loaded.Version
	}
	for k, v := range loaded.Settings {
		a.data.Settings[k] = v
	}
	for k, v := range loaded.Levels {
		a.data.Levels[k] = v
	}
	for k, v := range loaded.Extra {
		a.data.Extra[k] = v
	}
}

// Data returns the loaded save, loading it first if needed.
func (a *Accessor) Data() *SaveData {
	if a.data == nil {
		return a.Load()
	}
	return a.data
}

func (a *Accessor) Save() error {
	if a.store == nil {
		return nil
	}
	raw, err := json.MarshalIndent(a.Data(), "", "  ")
	if err != nil {
		return oops.Code("SAVE_ENCODE_FAILED").Wrap(err)
	}
	if err := a.store.SaveItem(SaveKey, raw); err != nil {
		log.Printf("Warning: Could not save data: %v", err)
		return oops.Code("SAVE_WRITE_FAILED").With("key", SaveKey).Wrap(err)
	}
	return nil
}

func (a *Accessor) progress(level string) LevelProgress {
	if p, ok := a.Data().Levels[level]; ok {
		return p
	}
	return NewLevelProgress()
}

func (a *Accessor) UnlockLevel(level string) error {
	p := a.progress(level)
	if p.Unlocked {
		return nil
	}
	p.Unlocked = true
	a.data.Levels[level] = p
	return a.Save()
}

// RecordResult stores a finished run, keeping the best of each figure.
func (a *Accessor) RecordResult(level string, stars int, timeMs int64, score int) error {
	p := a.progress(level)
	p.Unlocked = true
	if stars > p.Stars {
		p.Stars = stars
	}
	if timeMs >= 0 && (p.BestTimeMs < 0 || timeMs < p.BestTimeMs) {
		p.BestTimeMs = timeMs
	}
	if score > p.BestScore {
		p.BestScore = score
	}
	a.data.Levels[level] = p
	return a.Save()
}

func (a *Accessor) SetSetting(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return oops.Code("SAVE_ENCODE_FAILED").With("setting", key).Wrap(err)
	}
	a.Data().Settings[key] = raw
	return a.Save()
}

// Setting decodes the setting at key into out. It reports false when the
// key is missing or does not fit out.
func (a *Accessor) Setting(key string, out any) bool {
	raw, ok := a.Data().Settings[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
