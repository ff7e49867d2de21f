package stage

import (
	"fmt"

	"github.com/vk/pipecut/internal/config"
)

// Pipeline is a materialized stage graph: live stages wired by reference,
// with a single sink stage as the output.
type Pipeline struct {
	// Name is the pipeline's declared name.
	Name string

	// Sink is the unique output stage; the whole graph is reachable from it
	// by following Inputs.
	Sink *Stage

	// Workers is the replica count the plan should carry. Always >= 1.
	Workers int

	// Stages lists every declared stage in declaration order.
	Stages []*Stage
}

// FromConfig materializes a config model into live, reference-wired stages.
// It resolves input names to stage pointers, determines the sink (explicit
// `output`, or inferred as the single unconsumed stage), and applies the
// worker-count default. Input references may form cycles; that is a
// supported topology and is not validated against here.
func FromConfig(m *config.Model) (*Pipeline, error) {
	if len(m.Stages) == 0 {
		return nil, fmt.Errorf("pipeline %q declares no stages", m.Name)
	}

	byName := make(map[string]*Stage, len(m.Stages))
	stages := make([]*Stage, 0, len(m.Stages))
	for _, sc := range m.Stages {
		if _, ok := byName[sc.Name]; ok {
			return nil, fmt.Errorf("duplicate stage name %q", sc.Name)
		}
		s := New(Kind(sc.Kind), sc.Name)
		s.Args = sc.Arguments
		byName[sc.Name] = s
		stages = append(stages, s)
	}

	// Second pass so stages may reference inputs declared after themselves.
	consumed := make(map[string]bool, len(m.Stages))
	for i, sc := range m.Stages {
		for _, name := range sc.Inputs {
			src, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("stage %q references undefined input %q", sc.Name, name)
			}
			stages[i].Inputs = append(stages[i].Inputs, src)
			consumed[name] = true
		}
	}

	sink, err := resolveSink(m, byName, stages, consumed)
	if err != nil {
		return nil, err
	}

	workers := m.Workers
	if workers < 1 {
		workers = 1
	}

	return &Pipeline{Name: m.Name, Sink: sink, Workers: workers, Stages: stages}, nil
}

// resolveSink picks the pipeline's output stage: the explicitly named one,
// or the single stage nothing else consumes.
func resolveSink(m *config.Model, byName map[string]*Stage, stages []*Stage, consumed map[string]bool) (*Stage, error) {
	if m.Output != "" {
		sink, ok := byName[m.Output]
		if !ok {
			return nil, fmt.Errorf("pipeline %q declares undefined output stage %q", m.Name, m.Output)
		}
		return sink, nil
	}

	var candidates []*Stage
	for _, s := range stages {
		if !consumed[s.Name] {
			candidates = append(candidates, s)
		}
	}
	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return nil, fmt.Errorf("pipeline %q has no unconsumed stage; set output explicitly", m.Name)
	default:
		return nil, fmt.Errorf("pipeline %q has %d unconsumed stages; set output explicitly", m.Name, len(candidates))
	}
}
