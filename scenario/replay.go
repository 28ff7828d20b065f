package scenario

import (
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hupe1980/sortable/clock"
	"github.com/hupe1980/sortable/core"
	"github.com/hupe1980/sortable/engine"
	"github.com/hupe1980/sortable/logging"
	"github.com/hupe1980/sortable/registry"
	"github.com/hupe1980/sortable/testbackend"
)

// Event is one container callback observed during a replay. Container is the
// container whose callback fired.
type Event struct {
	Event        string `yaml:"event" json:"event"`
	Container    string `yaml:"container,omitempty" json:"container,omitempty"`
	Item         string `yaml:"item,omitempty" json:"item,omitempty"`
	Index        int    `yaml:"index,omitempty" json:"index,omitempty"`
	From         string `yaml:"from,omitempty" json:"from,omitempty"`
	RemovedIndex int    `yaml:"removed_index,omitempty" json:"removed_index,omitempty"`
	To           string `yaml:"to,omitempty" json:"to,omitempty"`
	AddedIndex   int    `yaml:"added_index,omitempty" json:"added_index,omitempty"`

	// Payload is the raw callback argument (core.DragPayload or core.DropResult).
	Payload any `yaml:"-" json:"payload,omitempty"`
}

// Transcript is the outcome of a replay.
type Transcript struct {
	Events []Event `json:"events"`
	// Final is the item order per registered container after the last step.
	Final map[string][]string `json:"final"`
}

// ReplayOptions configures a replay.
type ReplayOptions struct {
	Logger    logging.Logger
	Callbacks []engine.Callback
	Start     time.Time
}

// Replay runs the scenario against a fresh registry and engine driven by a
// manual clock. Step failures (a duplicate registration, an unknown item) are
// returned with the step index; drag outcomes never are.
func (s *Scenario) Replay(optFns ...func(o *ReplayOptions)) (*Transcript, error) {
	opts := ReplayOptions{Logger: logging.NoOpLogger{}, Start: time.Unix(0, 0).UTC()}
	for _, fn := range optFns {
		fn(&opts)
	}

	r := &replayer{
		scenario: s,
		reg:      registry.NewInMemoryRegistry(),
		clock:    clock.NewManual(opts.Start),
	}
	r.eng = engine.New(func(o *engine.Options) {
		o.Config = s.Engine
		o.Registry = r.reg
		o.Clock = r.clock
		o.Logger = opts.Logger
		o.Callbacks = opts.Callbacks
	})
	r.backend = testbackend.New(r.eng, r.reg)

	for _, c := range s.Containers {
		if err := r.register(c); err != nil {
			return nil, err
		}
	}

	for i, st := range s.Steps {
		if err := r.step(st); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, st.Kind(), err)
		}
	}

	t := &Transcript{Events: r.events, Final: map[string][]string{}}
	for _, id := range r.reg.IDs() {
		c, _ := r.reg.Resolve(id)
		order := make([]string, len(c.Items))
		for i, it := range c.Items {
			order[i] = it.ID
		}
		t.Final[id] = order
	}

	return t, nil
}

// Check compares a transcript with the scenario's expectations and returns a
// human readable diff, empty when they match.
func (s *Scenario) Check(t *Transcript) string {
	var diff string
	if s.Expect != nil {
		if d := cmp.Diff(s.Expect, t.Events, cmpopts.IgnoreFields(Event{}, "Payload"), cmpopts.EquateEmpty()); d != "" {
			diff += "events (-want +got):\n" + d
		}
	}
	if s.ExpectFinal != nil {
		final := make(map[string][]string, len(s.ExpectFinal))
		for id := range s.ExpectFinal {
			final[id] = t.Final[id]
		}
		if d := cmp.Diff(s.ExpectFinal, final, cmpopts.EquateEmpty()); d != "" {
			diff += "final order (-want +got):\n" + d
		}
	}
	return diff
}

type replayer struct {
	scenario *Scenario
	reg      *registry.InMemoryRegistry
	eng      *engine.Engine
	backend  *testbackend.Backend
	clock    *clock.Manual
	events   []Event
}

func (r *replayer) register(c ContainerSpec) error {
	cfg := c.config()
	id := c.ID
	cfg.OnDragStart = func(p core.DragPayload) { r.record("drag_start", id, p) }
	cfg.OnDragEnd = func(p core.DragPayload) { r.record("drag_end", id, p) }
	cfg.OnDrop = func(d core.DropResult) { r.drop(id, d) }
	return r.reg.Register(cfg)
}

func (r *replayer) record(kind, owner string, p core.DragPayload) {
	r.events = append(r.events, Event{
		Event:     kind,
		Container: owner,
		Item:      p.ID,
		Index:     p.Index,
		Payload:   p,
	})
}

func (r *replayer) drop(owner string, d core.DropResult) {
	r.events = append(r.events, Event{
		Event:        "drop",
		Container:    owner,
		Item:         d.Payload.ID,
		From:         d.RemovedFromContainerID,
		RemovedIndex: d.RemovedIndex,
		To:           d.AddedToContainerID,
		AddedIndex:   d.AddedIndex,
		Payload:      d,
	})

	if !r.scenario.ApplyDrops {
		return
	}
	if err := engine.Apply(r.reg, d); err != nil {
		r.events = append(r.events, Event{Event: "apply_error", Container: owner, Item: d.Payload.ID, Payload: err.Error()})
	}
}

func (r *replayer) resolve(t *Target) (string, int, error) {
	if t.Item == "" {
		return t.Container, t.Index, nil
	}
	if t.Container != "" {
		c, ok := r.reg.Resolve(t.Container)
		if !ok {
			return "", 0, fmt.Errorf("container %q: %w", t.Container, core.ErrContainerNotFound)
		}
		idx := core.IndexOf(c.Items, t.Item)
		if idx < 0 {
			return "", 0, fmt.Errorf("item %q in %q: %w", t.Item, t.Container, core.ErrInvalidItem)
		}
		return t.Container, idx, nil
	}
	id, idx, ok := r.reg.FindItem(t.Item)
	if !ok {
		return "", 0, fmt.Errorf("item %q: %w", t.Item, core.ErrInvalidItem)
	}
	return id, idx, nil
}

func (r *replayer) step(st Step) error {
	switch st.Kind() {
	case "press":
		id, _, err := r.resolve(st.Press)
		if err != nil {
			return err
		}
		r.eng.Press(id, st.Press.Item)
	case "move":
		id, idx, err := r.resolve(st.Move)
		if err != nil {
			return err
		}
		r.eng.Move(id, idx)
	case "release":
		r.eng.Release()
	case "begin":
		id, _, err := r.resolve(st.Begin)
		if err != nil {
			return err
		}
		r.eng.BeginDrag(id, st.Begin.Item)
	case "hover":
		id, idx, err := r.resolve(st.Hover)
		if err != nil {
			return err
		}
		r.eng.UpdateHover(id, idx)
	case "end":
		r.eng.EndDrag()
	case "cancel":
		r.eng.Cancel()
	case "wait":
		r.clock.Advance(st.Wait)
	case "register":
		return r.register(*st.Register)
	case "unregister":
		return r.reg.Unregister(st.Unregister)
	case "reorder":
		_, _, err := r.backend.Reorder(st.Reorder.Removed, st.Reorder.Added)
		return err
	default:
		return ErrInvalidScenario
	}
	return nil
}
