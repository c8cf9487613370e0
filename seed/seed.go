package seed

import (
	"fmt"
	"log"
	"os"

	"github.com/abefas/tasktracker/models"
	"github.com/abefas/tasktracker/store"
	"gopkg.in/yaml.v3"
)

// Fixture describes one task to create at startup.
type Fixture struct {
	Title     string `yaml:"title"`
	Completed bool   `yaml:"completed"`
}

type fixtureFile struct {
	Tasks []Fixture `yaml:"tasks"`
}

// Defaults returns the built-in demo tasks.
func Defaults() []Fixture {
	return []Fixture{
		{Title: "Learn Go"},
		{Title: "Build a task API"},
	}
}

// LoadFile reads fixtures from a YAML file of the form `tasks: [{title, completed}]`.
func LoadFile(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}

	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	return f.Tasks, nil
}

// Apply creates each fixture through the store, so the usual title
// validation applies. It stops at the first fixture the store rejects.
func Apply(st *store.Store, fixtures []Fixture) ([]models.Task, error) {
	created := make([]models.Task, 0, len(fixtures))
	for i, fx := range fixtures {
		t, err := st.Create(fx.Title)
		if err != nil {
			return created, fmt.Errorf("failed to seed fixture %d: %w", i, err)
		}
		if fx.Completed {
			if t, err = st.Complete(t.ID); err != nil {
				return created, fmt.Errorf("failed to complete fixture %d: %w", i, err)
			}
		}
		created = append(created, t)
	}

	log.Printf("Seeded %d tasks", len(created))
	return created, nil
}
