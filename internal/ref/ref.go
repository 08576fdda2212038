package ref

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/koskimas/msggen/internal/model"
)

// Resolve turns a type name as written inside package `pkg` into a type
// reference. Primitive names win, dotted names are fully qualified and a bare
// name is looked up in `pkg` first and in the root package second.
func Resolve(cat *model.Catalog, pkg string, name string) (model.TypeRef, error) {
	if p, ok := model.ParsePrimitive(name); ok {
		return model.PrimitiveRef(p), nil
	}

	if dot := strings.LastIndexByte(name, '.'); dot != -1 {
		t := model.StructRef(name[:dot], name[dot+1:])

		if cat.Lookup(t.FullName()) == nil {
			return model.TypeRef{}, fmt.Errorf(`could not resolve type "%s"`, name)
		}

		return t, nil
	}

	if pkg != "" {
		if s := cat.Lookup(pkg + "." + name); s != nil {
			return s.Ref(), nil
		}
	}

	if s := cat.Lookup(name); s != nil {
		return s.Ref(), nil
	}

	if pkg != "" {
		return model.TypeRef{}, fmt.Errorf(`could not resolve type "%s" in package "%s"`, name, pkg)
	}

	return model.TypeRef{}, fmt.Errorf(`could not resolve type "%s"`, name)
}

// ToGo converts a schema identifier like `num_points` or `MAX_COUNT` into an
// exported Go identifier like `NumPoints` or `MaxCount`.
func ToGo(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' })
	upper := strings.ToUpper(name) == name

	var b strings.Builder
	for _, p := range parts {
		if upper {
			p = strings.ToLower(p)
		}

		b.WriteString(toGoProp(p))
	}

	if b.Len() == 0 {
		return "X"
	}

	id := b.String()
	if unicode.IsDigit(rune(id[0])) {
		id = "X" + id
	}

	return id
}

// TypeToGo converts a struct name into a Go type name, dropping the
// conventional `_t` suffix.
func TypeToGo(name string) string {
	if trimmed := strings.TrimSuffix(name, "_t"); trimmed != "" {
		name = trimmed
	}

	return ToGo(name)
}

// PackageToGo returns the Go package name for a dotted schema package.
func PackageToGo(pkg string) string {
	if dot := strings.LastIndexByte(pkg, '.'); dot != -1 {
		pkg = pkg[dot+1:]
	}

	return strings.ToLower(strings.ReplaceAll(pkg, "_", ""))
}

func toGoProp(modelProp string) string {
	return strings.ToUpper(modelProp[0:1]) + modelProp[1:]
}
