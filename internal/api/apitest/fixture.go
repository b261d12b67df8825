package apitest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/idilsaglam/todolists/internal/model"
)

// Fixture is the seed state of a server, readable from a JSON file.
type Fixture struct {
	Lists []model.ListAttrs `json:"todo_lists"`
	Tasks []model.TaskAttrs `json:"tasks"`
}

// LoadFixture reads a fixture file. A missing file is an empty fixture.
func LoadFixture(path string) (Fixture, error) {
	var f Fixture
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("read file: %w", err)
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return f, fmt.Errorf("json unmarshal: %w", err)
	}
	return f, nil
}

// FromFile starts a server seeded from the fixture at path.
func FromFile(path string) (*Server, error) {
	f, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}
	return New(f.Lists, f.Tasks), nil
}
