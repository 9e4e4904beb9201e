// Package statespace is a state-space exploration engine: given a
// declarative description of a stateful system — a schema over structured
// data plus a set of transition rules with constraints, effects, and costs
// — it enumerates reachable states, builds a transition graph (a Markov
// graph of states and the rules that connect them), and answers
// pathfinding queries (shortest, optimal, any, cycle) over that graph.
//
// The engine is organized bottom-up, each subpackage compiling the layer
// below it into something the next layer can drive:
//
//	pathway/    — dot/bracket path addressing into structured state
//	schema/     — declarative validation clauses compiled into validators
//	codex/      — stable content hashing and named codec registry
//	constraint/ — declarative gating predicates over a transition event
//	effect/     — declarative, ordered state mutation instructions
//	transition/ — the evaluator: gate → mutate → revalidate → gate
//	neighbor/   — the successors of one state under a fixed rule list
//	markov/     — the graph of visited states and recorded transitions
//	explore/    — the frontier-driven exploration driver
//	study/      — pathfinding and cycle-detection plug-ins over a driver
//	system/     — the single compile entrypoint tying the rest together
//
// A declarative system is compiled once into an ExecutableSystem; a study
// then drives that system's neighbor generator from an initial state to
// answer whichever question it was built for.
package statespace
