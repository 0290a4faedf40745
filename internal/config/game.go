package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"skirmish/internal/fault"
)

const (
	MinPlayers           = 1
	MaxPlayers           = 4
	MinStartingResources = 100
	MinMapSide           = 5
	MaxMapSide           = 20
)

// Difficulty levels accepted by the config.
var Difficulties = []string{"easy", "normal", "hard", "expert"}

type MapSize struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Game is the persisted settings record. Only MapSize and
// StartingResources are consumed by the match setup.
type Game struct {
	Title             string  `json:"game_title" yaml:"game_title"`
	MaxPlayers        int     `json:"max_players" yaml:"max_players"`
	StartingResources int     `json:"starting_resources" yaml:"starting_resources"`
	MapSize           MapSize `json:"map_size" yaml:"map_size"`
	Difficulty        string  `json:"difficulty" yaml:"difficulty"`
	Version           string  `json:"game_version" yaml:"game_version"`
	AutoSave          bool    `json:"auto_save" yaml:"auto_save"`
}

func DefaultGame() Game {
	return Game{
		Title:             "Strategy Game",
		MaxPlayers:        2,
		StartingResources: 1000,
		MapSize:           MapSize{Width: 10, Height: 10},
		Difficulty:        "normal",
		Version:           "1.0",
		AutoSave:          true,
	}
}

func (g *Game) SetTitle(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("game_title must be a non-empty string: %w", fault.ErrInvalidArgument)
	}
	g.Title = v
	return nil
}

func (g *Game) SetMaxPlayers(v int) error {
	if v < MinPlayers || v > MaxPlayers {
		return fmt.Errorf("max_players must be between %d and %d, got %d: %w", MinPlayers, MaxPlayers, v, fault.ErrInvalidArgument)
	}
	g.MaxPlayers = v
	return nil
}

func (g *Game) SetStartingResources(v int) error {
	if v < MinStartingResources {
		return fmt.Errorf("starting_resources must be at least %d, got %d: %w", MinStartingResources, v, fault.ErrInvalidArgument)
	}
	g.StartingResources = v
	return nil
}

func (g *Game) SetMapSize(width, height int) error {
	if width < MinMapSide || width > MaxMapSide || height < MinMapSide || height > MaxMapSide {
		return fmt.Errorf("map_size must be between %dx%d and %dx%d, got %dx%d: %w",
			MinMapSide, MinMapSide, MaxMapSide, MaxMapSide, width, height, fault.ErrInvalidArgument)
	}
	g.MapSize = MapSize{Width: width, Height: height}
	return nil
}

func (g *Game) SetDifficulty(v string) error {
	for _, d := range Difficulties {
		if d == v {
			g.Difficulty = v
			return nil
		}
	}
	return fmt.Errorf("difficulty must be one of %s, got %q: %w", strings.Join(Difficulties, "|"), v, fault.ErrInvalidArgument)
}

func (g *Game) SetVersion(v string) error {
	if v == "" {
		return fmt.Errorf("game_version must be a non-empty string: %w", fault.ErrInvalidArgument)
	}
	g.Version = v
	return nil
}

func (g *Game) SetAutoSave(v bool) { g.AutoSave = v }

// Set applies a textual value to the named key, validating it the same way
// the typed setters do. Map size takes "WxH".
func (g *Game) Set(key, value string) error {
	switch key {
	case "game_title", "title":
		return g.SetTitle(value)
	case "max_players", "players":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_players %q: %w", value, fault.ErrInvalidArgument)
		}
		return g.SetMaxPlayers(n)
	case "starting_resources", "resources":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("starting_resources %q: %w", value, fault.ErrInvalidArgument)
		}
		return g.SetStartingResources(n)
	case "map_size", "size":
		w, h, ok := strings.Cut(strings.ToLower(value), "x")
		if !ok {
			return fmt.Errorf("map_size %q must look like 10x10: %w", value, fault.ErrInvalidArgument)
		}
		width, errW := strconv.Atoi(strings.TrimSpace(w))
		height, errH := strconv.Atoi(strings.TrimSpace(h))
		if errW != nil || errH != nil {
			return fmt.Errorf("map_size %q: %w", value, fault.ErrInvalidArgument)
		}
		return g.SetMapSize(width, height)
	case "difficulty":
		return g.SetDifficulty(value)
	case "game_version", "version":
		return g.SetVersion(value)
	case "auto_save", "autosave":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_save %q: %w", value, fault.ErrInvalidArgument)
		}
		g.SetAutoSave(b)
		return nil
	default:
		return fmt.Errorf("unknown config key %q: %w", key, fault.ErrInvalidArgument)
	}
}

// Validate runs every setter rule against the current values.
func (g Game) Validate() error {
	var probe Game
	return errors.Join(
		probe.SetTitle(g.Title),
		probe.SetMaxPlayers(g.MaxPlayers),
		probe.SetStartingResources(g.StartingResources),
		probe.SetMapSize(g.MapSize.Width, g.MapSize.Height),
		probe.SetDifficulty(g.Difficulty),
		probe.SetVersion(g.Version),
	)
}

// LoadGame reads a JSON or YAML config file. Keys missing from the file keep
// their defaults. A missing file returns the defaults together with an error
// wrapping fs.ErrNotExist.
func LoadGame(path string) (*Game, error) {
	g := DefaultGame()
	if err := loadYAML(path, &g); err != nil {
		d := DefaultGame()
		return &d, fmt.Errorf("load game config %s: %w", path, err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("load game config %s: %w", path, err)
	}
	return &g, nil
}

// Save writes the config as YAML for .yaml/.yml paths and as indented JSON
// otherwise.
func (g Game) Save(path string) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("save game config %s: %w", path, err)
	}
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(g)
	default:
		data, err = json.MarshalIndent(g, "", "    ")
	}
	if err != nil {
		return fmt.Errorf("save game config %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}
