package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default file names inside an assets directory.
const (
	GameFile  = "game_config.json"
	RulesFile = "rules.yaml"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadAll reads the game config and the rules catalog from dir. Either file
// may be absent; the missing one falls back to its defaults.
func LoadAll(dir string) (*Game, *Rules, error) {
	game, err := LoadGame(filepath.Join(dir, GameFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, err
	}
	rules, err := LoadRules(filepath.Join(dir, RulesFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, err
	}
	return game, rules, nil
}
