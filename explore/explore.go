package explore

import (
	"errors"

	"github.com/coffee-fueled-dev/statespace-sub000/codex"
	"github.com/coffee-fueled-dev/statespace-sub000/markov"
	"github.com/coffee-fueled-dev/statespace-sub000/neighbor"
)

// frontierItem pairs a hash with the state it denotes, so the driver never
// has to decode a hash back into a state mid-loop.
type frontierItem struct {
	hash  codex.Hash
	state interface{}
}

// walker encapsulates one exploration run's mutable state, mirroring
// `bfs.walker`.
type walker struct {
	gen     *neighbor.Generator
	cfg     config
	graph   *markov.Graph
	queue   []frontierItem
	visited map[codex.Hash]bool
	profile Profile
}

// Driver is the reusable entry point spec §6 calls the "Explorer
// operations" surface: Neighbors is independently callable, Explore runs
// the full frontier-driven search. A Driver holds no per-run state of its
// own — every run of Explore constructs a fresh walker — so one Driver may
// be reused, even concurrently, across many studies (spec §5: the
// ExecutableSystem and Codec are immutable and shareable).
type Driver struct {
	gen   *neighbor.Generator
	codec codex.Codec
}

// NewDriver returns a Driver over the given neighbor generator and codec.
func NewDriver(gen *neighbor.Generator, codec codex.Codec) *Driver {
	return &Driver{gen: gen, codec: codec}
}

// Neighbors returns every successful successor of state, satisfying the
// `neighbors(state) → [Success]` operation of spec §6 as a first-class
// call independent of a full Explore run.
func (d *Driver) Neighbors(state interface{}) ([]neighbor.Successor, error) {
	return d.gen.Generate(state)
}

// Explore runs the exploration driver of spec §4.I: a FIFO frontier over
// codex-hashed states, recording every transition into a fresh Markov
// graph, until the frontier empties or a limit is hit.
func (d *Driver) Explore(initialState interface{}, opts ...Option) (*markov.Graph, Profile, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	h0, err := d.codec.Encode(initialState)
	if err != nil {
		return nil, Profile{}, err
	}

	graph := markov.New()
	graph.AddNode(h0, initialState)

	w := &walker{
		gen:     d.gen,
		cfg:     cfg,
		graph:   graph,
		queue:   []frontierItem{{hash: h0, state: initialState}},
		visited: map[codex.Hash]bool{h0: true},
	}

	reason, err := w.loop()
	if err != nil {
		return graph, w.profile, err
	}
	w.profile.ExitReason = reason
	w.profile.TotalStates = graph.Size()
	w.profile.TotalTransitions = graph.TransitionCount()
	return graph, w.profile, nil
}

func (w *walker) loop() (ExitReason, error) {
	for len(w.queue) > 0 {
		select {
		case <-w.cfg.ctx.Done():
			return ExitUserCancelled, nil
		default:
		}

		if w.cfg.limits.MaxIterations > 0 && w.profile.Iterations >= w.cfg.limits.MaxIterations {
			return ExitMaxIterations, nil
		}

		current := w.dequeue()
		w.profile.Iterations++

		successors, err := w.gen.Generate(current.state)
		if err != nil {
			return ExitCompleted, err
		}

		for _, succ := range successors {
			if w.cfg.limits.MaxStates > 0 && len(w.visited) >= w.cfg.limits.MaxStates && !w.visited[succ.Hash] {
				return ExitMaxStates, nil
			}

			isNew := !w.visited[succ.Hash]
			if !isNew {
				w.cfg.hooks.OnCycleDetected(current.hash, succ.Hash, succ.RuleName)
			}

			err := w.cfg.hooks.OnTransition(TransitionEvent{
				FromHash: current.hash,
				ToHash:   succ.Hash,
				RuleName: succ.RuleName,
				Cost:     succ.Cost,
				Metadata: succ.Metadata,
				IsNew:    isNew,
			})
			if errors.Is(err, Cancel) {
				return ExitUserCancelled, nil
			}
			if err != nil {
				return ExitCompleted, err
			}

			if isNew {
				w.graph.AddNode(succ.Hash, succ.State)
			}
			w.graph.AddEdge(current.hash, succ.Hash, markov.Edge{
				RuleName: succ.RuleName,
				Cost:     succ.Cost,
				Metadata: succ.Metadata,
			})

			if isNew {
				w.visited[succ.Hash] = true
				w.enqueue(succ.Hash, succ.State)
			}
		}
	}
	return ExitCompleted, nil
}

func (w *walker) dequeue() frontierItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	return item
}

func (w *walker) enqueue(hash codex.Hash, state interface{}) {
	w.queue = append(w.queue, frontierItem{hash: hash, state: state})
}
