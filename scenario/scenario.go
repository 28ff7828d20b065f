// Package scenario loads YAML drag scenarios and replays them against the
// engine with a manual clock. A scenario declares containers, a sequence of
// input steps and, optionally, the callbacks it expects.
//
// Example:
//
//	containers:
//	  - id: A
//	    group: g
//	    items: [{id: "1", text: item 1}, {id: "2", text: item 2}]
//	steps:
//	  - begin: {container: A, item: "1"}
//	  - hover: {container: A, index: 1}
//	  - end: true
//	expect:
//	  - {event: drag_start, container: A, item: "1", index: 0}
//	  - {event: drag_end, container: A, item: "1", index: 0}
//	  - {event: drop, item: "1", from: A, removed_index: 0, to: A, added_index: 1}
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/sortable/core"
	"github.com/hupe1980/sortable/engine"
)

// ErrInvalidScenario is returned for scenarios that fail validation.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is the root of a scenario file.
type Scenario struct {
	Name       string          `yaml:"name"`
	Engine     engine.Config   `yaml:"engine"`
	Containers []ContainerSpec `yaml:"containers"`
	// ApplyDrops makes the replay apply every drop result to the registry,
	// as the owning collaborator would.
	ApplyDrops bool    `yaml:"apply_drops"`
	Steps      []Step  `yaml:"steps"`
	Expect     []Event `yaml:"expect"`
	// ExpectFinal optionally lists the final item order per container.
	ExpectFinal map[string][]string `yaml:"expect_final"`
}

// ContainerSpec declares a container.
type ContainerSpec struct {
	ID     string        `yaml:"id"`
	Group  string        `yaml:"group"`
	Delay  time.Duration `yaml:"delay"`
	Portal bool          `yaml:"portal"`
	// Locked item ids cannot be dragged.
	Locked []string    `yaml:"locked"`
	Items  []core.Item `yaml:"items"`
}

// Target addresses an item or a container slot.
type Target struct {
	Container string `yaml:"container"`
	Item      string `yaml:"item"`
	Index     int    `yaml:"index"`
}

// ReorderStep drags Removed onto the slot of Added.
type ReorderStep struct {
	Removed string `yaml:"removed"`
	Added   string `yaml:"added"`
}

// Step is one input event. Exactly one field must be set.
type Step struct {
	Press      *Target        `yaml:"press"`
	Move       *Target        `yaml:"move"`
	Release    bool           `yaml:"release"`
	Begin      *Target        `yaml:"begin"`
	Hover      *Target        `yaml:"hover"`
	End        bool           `yaml:"end"`
	Cancel     bool           `yaml:"cancel"`
	Wait       time.Duration  `yaml:"wait"`
	Register   *ContainerSpec `yaml:"register"`
	Unregister string         `yaml:"unregister"`
	Reorder    *ReorderStep   `yaml:"reorder"`
}

// Kind names the populated field.
func (s Step) Kind() string {
	kinds := s.kinds()
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

func (s Step) kinds() []string {
	var k []string
	if s.Press != nil {
		k = append(k, "press")
	}
	if s.Move != nil {
		k = append(k, "move")
	}
	if s.Release {
		k = append(k, "release")
	}
	if s.Begin != nil {
		k = append(k, "begin")
	}
	if s.Hover != nil {
		k = append(k, "hover")
	}
	if s.End {
		k = append(k, "end")
	}
	if s.Cancel {
		k = append(k, "cancel")
	}
	if s.Wait > 0 {
		k = append(k, "wait")
	}
	if s.Register != nil {
		k = append(k, "register")
	}
	if s.Unregister != "" {
		k = append(k, "unregister")
	}
	if s.Reorder != nil {
		k = append(k, "reorder")
	}
	return k
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sc, nil
}

// Parse decodes and validates a scenario. Unknown keys are rejected.
func Parse(data []byte) (*Scenario, error) {
	sc := &Scenario{Engine: engine.DefaultConfig}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return sc, nil
}

// Validate checks static structure: container ids, item ids and that every
// step sets exactly one action.
func (s *Scenario) Validate() error {
	seen := map[string]struct{}{}
	for i, c := range s.Containers {
		if err := c.config().Validate(); err != nil {
			return fmt.Errorf("container %d: %w: %w", i, err, ErrInvalidScenario)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("container %q declared twice: %w", c.ID, ErrInvalidScenario)
		}
		seen[c.ID] = struct{}{}
	}

	for i, st := range s.Steps {
		kinds := st.kinds()
		if len(kinds) != 1 {
			return fmt.Errorf("step %d: want exactly one action, got %v: %w", i, kinds, ErrInvalidScenario)
		}
		switch kinds[0] {
		case "press", "begin":
			t := st.Press
			if t == nil {
				t = st.Begin
			}
			if t.Item == "" {
				return fmt.Errorf("step %d: %s needs an item: %w", i, kinds[0], ErrInvalidScenario)
			}
		case "move", "hover":
			t := st.Move
			if t == nil {
				t = st.Hover
			}
			if t.Container == "" && t.Item == "" {
				return fmt.Errorf("step %d: %s needs a container or item: %w", i, kinds[0], ErrInvalidScenario)
			}
		case "reorder":
			if st.Reorder.Removed == "" || st.Reorder.Added == "" {
				return fmt.Errorf("step %d: reorder needs removed and added: %w", i, ErrInvalidScenario)
			}
		case "register":
			if err := st.Register.config().Validate(); err != nil {
				return fmt.Errorf("step %d: %w: %w", i, err, ErrInvalidScenario)
			}
		}
	}

	return nil
}

func (c ContainerSpec) config() core.ContainerConfig {
	cfg := core.ContainerConfig{
		ID:        c.ID,
		GroupName: c.Group,
		Items:     core.CloneItems(c.Items),
		Delay:     c.Delay,
		UsePortal: c.Portal,
	}
	if len(c.Locked) > 0 {
		locked := make(map[string]struct{}, len(c.Locked))
		for _, id := range c.Locked {
			locked[id] = struct{}{}
		}
		cfg.CanDrag = func(it core.Item, _ int) bool {
			_, no := locked[it.ID]
			return !no
		}
	}
	return cfg
}
