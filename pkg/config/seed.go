package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactbook/pkg/model"
)

// SeedFile is the YAML layout of a contact seed file used for snapshots.
type SeedFile struct {
	Contacts model.ContactList `yaml:"contacts"`
}

// LoadContacts reads the contacts listed in a seed file, in file order. Unlike
// Load, a missing file is an error: the caller asked for it explicitly.
func LoadContacts(path string) (model.ContactList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var seed SeedFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return seed.Contacts, nil
}
