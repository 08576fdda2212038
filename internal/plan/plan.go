package plan

import (
	"fmt"

	"github.com/koskimas/msggen/internal/model"
)

// Plan is everything a rendering backend needs to generate the codec of a
// single struct.
type Plan struct {
	Struct       *model.Struct
	Fingerprint  uint64
	Encode       []Op
	Decode       []Op
	Init         []MemberInit
	Constants    []ConstInit
	Dependencies []model.TypeRef
}

// Build creates the plan of `s`. The fingerprint of `s` must have been
// computed before.
func Build(s *model.Struct) (*Plan, error) {
	fp := s.Fingerprint()
	if fp == 0 {
		return nil, fmt.Errorf(`fingerprint of "%s" has not been computed`, s.FullName())
	}

	consts, err := Constants(s)
	if err != nil {
		return nil, fmt.Errorf(`invalid constant in "%s": %w`, s.FullName(), err)
	}

	return &Plan{
		Struct:       s,
		Fingerprint:  fp,
		Encode:       Encode(s),
		Decode:       Decode(s),
		Init:         Init(s),
		Constants:    consts,
		Dependencies: Dependencies(s),
	}, nil
}

// Dependencies returns the distinct struct types referenced by the members
// of `s`, excluding `s` itself, in order of first use.
func Dependencies(s *model.Struct) []model.TypeRef {
	deps := make([]model.TypeRef, 0)
	seen := map[string]bool{s.FullName(): true}

	for _, m := range s.Members {
		if m.Type.IsPrimitive() || seen[m.Type.FullName()] {
			continue
		}

		seen[m.Type.FullName()] = true
		deps = append(deps, m.Type)
	}

	return deps
}
