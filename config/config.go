// Package config loads the editor's font and colors from a YAML file merged
// over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownKey is returned for any key the configuration does not define.
	ErrUnknownKey = errors.New("unrecognised item")
	// ErrInvalidValue is returned for a known key holding a value of the wrong
	// type or range.
	ErrInvalidValue = errors.New("invalid value")
)

// DefaultPath is where the configuration is looked for when none is given.
const DefaultPath = "cfg/config.yaml"

type Font struct {
	Family  string
	Size    int
	TabStop int
}

// Highlighting holds the color of each class of token, as "#rrggbb".
type Highlighting struct {
	Keyword    string
	Comment    string
	Definition string
	String     string
	Builtin    string
}

type Colors struct {
	Background   string
	Text         string
	Highlighting Highlighting
}

type Config struct {
	Font   Font
	Colors Colors
}

// Default returns the configuration used for every key a file leaves out.
func Default() Config {
	return Config{
		Font: Font{
			Family:  "Terminal",
			Size:    10,
			TabStop: 4,
		},
		Colors: Colors{
			Background: "#ffffff",
			Text:       "#000000",
			Highlighting: Highlighting{
				Keyword:    "#ff3355",
				Comment:    "#ffffff",
				Definition: "#eeeeee",
				String:     "#ff0000",
				Builtin:    "#00ffff",
			},
		},
	}
}

// ColorString converts an integer 0xRRGGBB into "#rrggbb".
func ColorString(v int64) (string, error) {
	if v < 0 || v > 0xffffff {
		return "", fmt.Errorf("%w: color %d is not within 0x000000 and 0xffffff", ErrInvalidValue, v)
	}
	return fmt.Sprintf("#%06x", v), nil
}

// Load reads the configuration at `path` from the filesystem. When the file
// does not exist, the defaults are returned if `mustExist` is false.
func Load(fsys afero.Fs, path string, mustExist bool) (Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if !mustExist && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse merges the YAML document in `data` over the defaults. Every key must be
// one the configuration defines.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if len(doc.Content) == 0 { // Empty document
		return cfg, nil
	}

	err := walkMapping(doc.Content[0], "", map[string]func(*yaml.Node, string) error{
		"font": func(n *yaml.Node, path string) error {
			return walkMapping(n, path, map[string]func(*yaml.Node, string) error{
				"family":  stringField(&cfg.Font.Family),
				"size":    positiveField(&cfg.Font.Size),
				"tabstop": positiveField(&cfg.Font.TabStop),
			})
		},
		"colors": func(n *yaml.Node, path string) error {
			return walkMapping(n, path, map[string]func(*yaml.Node, string) error{
				"bg":  colorField(&cfg.Colors.Background),
				"txt": colorField(&cfg.Colors.Text),
				"highlighting": func(n *yaml.Node, path string) error {
					h := &cfg.Colors.Highlighting
					return walkMapping(n, path, map[string]func(*yaml.Node, string) error{
						"kwd":        colorField(&h.Keyword),
						"comment":    colorField(&h.Comment),
						"definition": colorField(&h.Definition),
						"string":     colorField(&h.String),
						"builtin":    colorField(&h.Builtin),
					})
				},
			})
		},
	})
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// walkMapping calls the field function of every key of the mapping `n`. A null
// node is an empty mapping.
func walkMapping(n *yaml.Node, path string, fields map[string]func(*yaml.Node, string) error) error {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: %s must be a mapping (line %d)", ErrInvalidValue, describe(path), n.Line)
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		keyPath := key.Value
		if path != "" {
			keyPath = path + "." + key.Value
		}

		field, ok := fields[key.Value]
		if !ok {
			return fmt.Errorf("%w: %s (line %d)", ErrUnknownKey, keyPath, key.Line)
		}
		if err := field(value, keyPath); err != nil {
			return err
		}
	}
	return nil
}

func describe(path string) string {
	if path == "" {
		return "the document"
	}
	return path
}

func scalar(n *yaml.Node, tag, path string) error {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tag {
		return fmt.Errorf("%w: %s must be of type %s (line %d)", ErrInvalidValue, path, tag[2:], n.Line)
	}
	return nil
}

func stringField(dst *string) func(*yaml.Node, string) error {
	return func(n *yaml.Node, path string) error {
		if err := scalar(n, "!!str", path); err != nil {
			return err
		}
		*dst = n.Value
		return nil
	}
}

func positiveField(dst *int) func(*yaml.Node, string) error {
	return func(n *yaml.Node, path string) error {
		if err := scalar(n, "!!int", path); err != nil {
			return err
		}
		var v int
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("%w: %s: %s", ErrInvalidValue, path, err.Error())
		}
		if v < 1 {
			return fmt.Errorf("%w: %s must be positive (line %d)", ErrInvalidValue, path, n.Line)
		}
		*dst = v
		return nil
	}
}

func colorField(dst *string) func(*yaml.Node, string) error {
	return func(n *yaml.Node, path string) error {
		if err := scalar(n, "!!int", path); err != nil {
			return err
		}
		var v int64
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("%w: %s: %s", ErrInvalidValue, path, err.Error())
		}
		color, err := ColorString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		*dst = color
		return nil
	}
}
