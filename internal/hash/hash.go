package hash

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"

	"github.com/koskimas/msggen/internal/model"
)

// Calculator computes structural fingerprints for the structs of a catalog.
// Fingerprints are cached on the structs themselves. A Calculator is not safe
// for concurrent use; hash a catalog fully before sharing its structs.
type Calculator struct {
	catalog *model.Catalog
	reach   map[string]map[string]bool
	cut     map[string]uint64
}

func New(catalog *model.Catalog) *Calculator {
	return &Calculator{
		catalog: catalog,
		reach:   make(map[string]map[string]bool),
		cut:     make(map[string]uint64),
	}
}

// Fingerprint returns the structural hash of `s`, incorporating the hashes
// of every struct it references.
func (c *Calculator) Fingerprint(s *model.Struct) (uint64, error) {
	fp, err := c.recursive(s, nil)
	if err != nil {
		return 0, fmt.Errorf(`failed to hash "%s": %w`, s.FullName(), err)
	}

	return fp, nil
}

// All computes the fingerprint of every struct in the catalog.
func (c *Calculator) All() error {
	for _, s := range c.catalog.Structs {
		if _, err := c.Fingerprint(s); err != nil {
			return err
		}
	}

	return nil
}

// recursive hashes `s` while the structs in `ancestors` are being hashed
// higher up the call chain. A struct that is already an ancestor contributes
// 0, which terminates recursive and mutually recursive schemas.
//
// When `s` can reach one of its ancestors the result depends on where the
// cycles get cut. It is then cached under the ancestors `s` can reach
// instead of on the struct.
func (c *Calculator) recursive(s *model.Struct, ancestors []string) (uint64, error) {
	name := s.FullName()
	if slices.Contains(ancestors, name) {
		return 0, nil
	}

	key, err := c.cutKey(s, ancestors)
	if err != nil {
		return 0, err
	}

	if key == "" {
		if fp := s.Fingerprint(); fp != 0 {
			return fp, nil
		}
	} else if fp, ok := c.cut[key]; ok {
		return fp, nil
	}

	v := Shape(s)
	var parents []string

	for i := range s.Members {
		m := &s.Members[i]
		if m.Type.IsPrimitive() {
			continue
		}

		target, err := c.catalog.Resolve(m.Type)
		if err != nil {
			return 0, fmt.Errorf(`member "%s": %w`, m.Name, err)
		}

		if parents == nil {
			parents = append(slices.Clone(ancestors), name)
		}

		h, err := c.recursive(target, parents)
		if err != nil {
			return 0, err
		}

		v += h
	}

	v = bits.RotateLeft64(v, 1)

	if key == "" {
		s.SetFingerprint(v)
	} else {
		c.cut[key] = v
	}

	return v, nil
}

// cutKey identifies `s` together with the ancestors it can reach. Only those
// ancestors affect the hash of `s`. The key is empty when there are none.
func (c *Calculator) cutKey(s *model.Struct, ancestors []string) (string, error) {
	if len(ancestors) == 0 {
		return "", nil
	}

	reach, err := c.reachable(s)
	if err != nil {
		return "", err
	}

	var cut []string
	for _, a := range ancestors {
		if reach[a] {
			cut = append(cut, a)
		}
	}

	if len(cut) == 0 {
		return "", nil
	}

	slices.Sort(cut)
	return s.FullName() + "\x00" + strings.Join(cut, "\x00"), nil
}

// reachable returns the full names of every struct reachable from `s`
// through composite members. `s` itself is included only if it lies on a
// cycle.
func (c *Calculator) reachable(s *model.Struct) (map[string]bool, error) {
	if r, ok := c.reach[s.FullName()]; ok {
		return r, nil
	}

	r := make(map[string]bool)
	queue := []*model.Struct{s}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for i := range cur.Members {
			m := &cur.Members[i]
			if m.Type.IsPrimitive() || r[m.Type.FullName()] {
				continue
			}

			target, err := c.catalog.Resolve(m.Type)
			if err != nil {
				return nil, fmt.Errorf(`member "%s": %w`, m.Name, err)
			}

			r[target.FullName()] = true
			queue = append(queue, target)
		}
	}

	c.reach[s.FullName()] = r
	return r, nil
}
