package system

import "github.com/coffee-fueled-dev/statespace-sub000/explore"

// NewDriver returns an exploration driver over the compiled system,
// completing spec §6's "explorer operations" surface (Neighbors, Explore)
// from an ExecutableSystem without the caller wiring neighbor.Generator and
// codex.Codec together by hand.
func (s *ExecutableSystem) NewDriver() *explore.Driver {
	return explore.NewDriver(s.Generator(), s.Codec)
}
