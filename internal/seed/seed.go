// Package seed loads the activity catalog the registry starts from.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed activities.yaml
var defaultCatalog []byte

var ErrInvalidSeed = errors.New("invalid seed")

type Activity struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}

type catalog struct {
	Activities []Activity `yaml:"activities"`
}

// Load reads the catalog from path, or the embedded one when path is empty.
func Load(path string) ([]Activity, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

func Default() ([]Activity, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

func LoadFile(path string) ([]Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func Parse(r io.Reader) ([]Activity, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty catalog", ErrInvalidSeed)
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if err := validate(c.Activities); err != nil {
		return nil, err
	}
	return c.Activities, nil
}

func validate(list []Activity) error {
	if len(list) == 0 {
		return fmt.Errorf("%w: no activities", ErrInvalidSeed)
	}

	names := make(map[string]struct{}, len(list))
	for i, a := range list {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: activity #%d has no name", ErrInvalidSeed, i)
		}
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("%w: duplicate activity %q", ErrInvalidSeed, a.Name)
		}
		names[a.Name] = struct{}{}

		if a.MaxParticipants <= 0 {
			return fmt.Errorf("%w: %q: max_participants must be positive", ErrInvalidSeed, a.Name)
		}
		if len(a.Participants) > a.MaxParticipants {
			return fmt.Errorf("%w: %q: %d participants exceed capacity %d",
				ErrInvalidSeed, a.Name, len(a.Participants), a.MaxParticipants)
		}

		seen := make(map[string]struct{}, len(a.Participants))
		for _, email := range a.Participants {
			if strings.TrimSpace(email) == "" {
				return fmt.Errorf("%w: %q: empty participant email", ErrInvalidSeed, a.Name)
			}
			if _, dup := seen[email]; dup {
				return fmt.Errorf("%w: %q: duplicate participant %q", ErrInvalidSeed, a.Name, email)
			}
			seen[email] = struct{}{}
		}
	}
	return nil
}
