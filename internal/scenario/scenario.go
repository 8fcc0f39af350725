// Package scenario replays a scripted session against a scene.World without a
// window. A scenario file lists colour points, volumes and a sequence of
// frames, each with the input events that arrive before it.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/tetraview/internal/input"
	"github.com/philipparndt/tetraview/internal/scene"
	"github.com/philipparndt/tetraview/pkg/metric"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every structural problem in a scenario file
var ErrInvalid = errors.New("invalid scenario")

// Scenario is the root of a scenario file
type Scenario struct {
	Name   string     `yaml:"name"`
	Aspect float64    `yaml:"aspect,omitempty"`
	Points []PointDef `yaml:"points"`
	Shapes []ShapeDef `yaml:"shapes,omitempty"`
	Frames []FrameDef `yaml:"frames"`
}

// PointDef places a colour by its metric
type PointDef struct {
	ID     string              `yaml:"id"`
	Metric metric.ColourMetric `yaml:",inline"`
}

// ShapeDef is a volume around loaded points or explicit metrics
type ShapeDef struct {
	ID       string                `yaml:"id"`
	Points   []string              `yaml:"points,omitempty"`
	Vertices []metric.ColourMetric `yaml:"vertices,omitempty"`
}

// FrameDef is one or more frames of dt seconds
type FrameDef struct {
	DT     float64    `yaml:"dt"`
	Repeat int        `yaml:"repeat,omitempty"` // events are sent before the first repetition only
	Events []EventDef `yaml:"events,omitempty"`
}

// EventDef is an input edge in file form
type EventDef struct {
	Action string  `yaml:"action"`
	Edge   string  `yaml:"edge,omitempty"` // defaults to start
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
}

// Event resolves the names into an input event
func (e EventDef) Event() (input.Event, error) {
	action, err := input.ParseAction(e.Action)
	if err != nil {
		return input.Event{}, err
	}
	edge := input.Started
	if e.Edge != "" {
		if edge, err = input.ParseEdge(e.Edge); err != nil {
			return input.Event{}, err
		}
	}
	return input.Event{Action: action, Edge: edge, X: e.X, Y: e.Y}, nil
}

// Load reads a .yaml or .yml scenario file
func Load(path string) (*Scenario, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("%w: unsupported file type %s", ErrInvalid, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario document
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the frame script. Point and shape data is checked when it is
// loaded into a world so that one bad item does not discard the file.
func (s *Scenario) Validate() error {
	if s.Aspect < 0 {
		return fmt.Errorf("%w: aspect must not be negative", ErrInvalid)
	}
	for i, f := range s.Frames {
		if f.DT < 0 {
			return fmt.Errorf("%w: frame %d: negative dt", ErrInvalid, i)
		}
		if f.Repeat < 0 {
			return fmt.Errorf("%w: frame %d: negative repeat", ErrInvalid, i)
		}
		for j, e := range f.Events {
			if _, err := e.Event(); err != nil {
				return fmt.Errorf("%w: frame %d event %d: %v", ErrInvalid, i, j, err)
			}
		}
	}
	return nil
}

// FrameCount returns the number of ticks Run performs
func (s *Scenario) FrameCount() int {
	n := 0
	for _, f := range s.Frames {
		n += max(f.Repeat, 1)
	}
	return n
}

// Report summarizes a run
type Report struct {
	Frames    int
	Rejected  []error
	Unclaimed []input.Event
}

// Populate replaces the points and shapes of w with those of the scenario.
// Rejected items are collected, the rest still load.
func (s *Scenario) Populate(w *scene.World) []error {
	w.Clear()
	var rejected []error
	for _, p := range s.Points {
		if err := w.AddPoint(p.ID, p.Metric); err != nil {
			rejected = append(rejected, err)
		}
	}
	for _, sh := range s.Shapes {
		var err error
		switch {
		case len(sh.Points) > 0 && len(sh.Vertices) > 0:
			err = fmt.Errorf("shape %q: %w: both points and vertices given", sh.ID, ErrInvalid)
		case len(sh.Points) > 0:
			err = w.AddShapeFromPoints(sh.ID, sh.Points)
		default:
			err = w.AddShape(sh.ID, sh.Vertices)
		}
		if err != nil {
			rejected = append(rejected, err)
		}
	}
	return rejected
}

// Run populates w and plays the frames. visit, if not nil, sees every frame
// with its zero-based index.
func (s *Scenario) Run(w *scene.World, visit func(i int, f scene.Frame)) Report {
	report := Report{Rejected: s.Populate(w)}
	if s.Aspect > 0 {
		w.SetAspect(s.Aspect)
	}

	for _, f := range s.Frames {
		for _, e := range f.Events {
			ev, _ := e.Event()
			if !w.Dispatch(ev) {
				report.Unclaimed = append(report.Unclaimed, ev)
			}
		}
		for range max(f.Repeat, 1) {
			frame := w.Tick(f.DT)
			if visit != nil {
				visit(report.Frames, frame)
			}
			report.Frames++
		}
	}
	return report
}
