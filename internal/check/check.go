package check

import (
	"errors"
	"slices"
	"strings"

	"github.com/koskimas/msggen/internal/model"
)

// Catalog validates every struct of the catalog and returns all shape errors
// joined together.
func Catalog(cat *model.Catalog) error {
	errs := make([]error, 0)

	for _, s := range cat.Structs {
		errs = append(errs, Struct(cat, s)...)
	}

	errs = append(errs, unboundedRecursion(cat)...)

	return errors.Join(errs...)
}

// Struct validates the members and constants of a single struct.
func Struct(cat *model.Catalog, s *model.Struct) []error {
	errs := make([]error, 0)
	seen := make(map[string]bool)

	for i := range s.Members {
		m := &s.Members[i]
		path := memberPath(s, m.Name)

		if seen[m.Name] {
			errs = append(errs, model.ShapeErrorf(path, `duplicate member "%s"`, m.Name))
		}

		if !m.Type.IsPrimitive() {
			if _, err := cat.Resolve(m.Type); err != nil {
				errs = append(errs, model.ShapeErrorf(path, `unknown type "%s"`, m.Type.FullName()))
			}
		}

		for _, d := range m.Dimensions {
			if err := dimension(s, seen, path, d); err != nil {
				errs = append(errs, err)
			}
		}

		seen[m.Name] = true
	}

	for i := range s.Constants {
		c := &s.Constants[i]
		path := memberPath(s, c.Name)

		if seen[c.Name] {
			errs = append(errs, model.ShapeErrorf(path, `duplicate member "%s"`, c.Name))
		}

		if _, err := c.Value(); err != nil {
			var shapeErr *model.ShapeError
			if errors.As(err, &shapeErr) {
				errs = append(errs, model.ShapeErrorf(path, "%s", shapeErr.Message))
			} else {
				errs = append(errs, err)
			}
		}

		seen[c.Name] = true
	}

	return errs
}

// dimension checks that a variable dimension names an integer scalar member
// declared before the array.
func dimension(s *model.Struct, declared map[string]bool, path string, d model.Dimension) error {
	if d.Mode == model.DimConstant {
		if d.Size < 0 {
			return model.ShapeErrorf(path, `negative array size %d`, d.Size)
		}

		return nil
	}

	if !declared[d.Member] {
		return model.ShapeErrorf(path, `array size "%s" must be a member declared before the array`, d.Member)
	}

	sizeMember := s.Member(d.Member)

	if sizeMember.IsArray() || !sizeMember.Type.Primitive.IsInteger() {
		return model.ShapeErrorf(path, `array size "%s" must be an integer scalar`, d.Member)
	}

	return nil
}

// unboundedRecursion rejects structs that contain themselves through members
// that always hold at least one element. Such a message can't be constructed
// or encoded in finite space.
func unboundedRecursion(cat *model.Catalog) []error {
	errs := make([]error, 0)

	for _, s := range cat.Structs {
		if path := findRequiredCycle(cat, s, s, nil, make(map[string]bool)); path != nil {
			errs = append(errs, model.ShapeErrorf(
				s.FullName(),
				`struct contains itself without a variable size array (through %s)`,
				strings.Join(path, " -> "),
			))
		}
	}

	return errs
}

func findRequiredCycle(cat *model.Catalog, root *model.Struct, s *model.Struct, path []string, visited map[string]bool) []string {
	visited[s.FullName()] = true

	for i := range s.Members {
		m := &s.Members[i]
		if m.Type.IsPrimitive() || !alwaysPopulated(m) {
			continue
		}

		target, err := cat.Resolve(m.Type)
		if err != nil {
			continue
		}

		next := append(slices.Clone(path), memberPath(s, m.Name))

		if target == root {
			return next
		}

		if visited[target.FullName()] {
			continue
		}

		if found := findRequiredCycle(cat, root, target, next, visited); found != nil {
			return found
		}
	}

	return nil
}

func alwaysPopulated(m *model.Member) bool {
	for _, d := range m.Dimensions {
		if d.Mode == model.DimVariable || d.Size == 0 {
			return false
		}
	}

	return true
}

func memberPath(s *model.Struct, member string) string {
	return s.FullName() + "." + member
}
