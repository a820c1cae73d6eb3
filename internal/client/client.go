// internal/client/client.go
//
// Clients are the studio's customers. The roster lives in a single yaml
// file; a client's short name is the sanitized token inserted into project
// names created for them.

package client

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andfors/slate/internal/naming"
)

// ErrDuplicate reports a client whose name or short name is already taken.
var ErrDuplicate = errors.New("client: client with same name already exists")

// Client is one roster entry. Field names are the wire contract.
type Client struct {
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
}

// Load reads the roster at path.
func Load(path string) ([]Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("client: read %s: %w", path, err)
	}
	var clients []Client
	if err := yaml.Unmarshal(data, &clients); err != nil {
		return nil, fmt.Errorf("client: parse %s: %w", path, err)
	}
	return clients, nil
}

// Save overwrites the roster at path.
func Save(path string, clients []Client) error {
	data, err := yaml.Marshal(clients)
	if err != nil {
		return fmt.Errorf("client: encode roster: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("client: write %s: %w", path, err)
	}
	return nil
}

// Add sanitizes shortName, rejects duplicates on either field, and appends
// the new client to the roster file.
func Add(path, name, shortName string) error {
	clients, err := Load(path)
	if err != nil {
		return err
	}
	next := Client{Name: name, ShortName: naming.Sanitize(shortName)}
	for _, c := range clients {
		if c.Name == next.Name || c.ShortName == next.ShortName {
			return fmt.Errorf("%w: %s", ErrDuplicate, next.Name)
		}
	}
	return Save(path, append(clients, next))
}

// Remove deletes every roster entry with the given display name.
func Remove(path, name string) error {
	clients, err := Load(path)
	if err != nil {
		return err
	}
	kept := clients[:0]
	for _, c := range clients {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	return Save(path, kept)
}
