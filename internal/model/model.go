package model

import (
	"strconv"
	"strings"
)

type DimensionMode int

const (
	DimConstant DimensionMode = iota
	DimVariable
)

// Dimension is one array dimension of a member. Constant dimensions carry a
// literal size, variable dimensions name an integer sibling member whose
// runtime value is the extent.
type Dimension struct {
	Mode   DimensionMode
	Size   int
	Member string
}

func ConstDim(size int) Dimension {
	return Dimension{Mode: DimConstant, Size: size}
}

func VarDim(member string) Dimension {
	return Dimension{Mode: DimVariable, Member: member}
}

// Text is the size as written in the schema: the literal or the member name.
func (d Dimension) Text() string {
	if d.Mode == DimVariable {
		return d.Member
	}

	return strconv.Itoa(d.Size)
}

// TypeRef refers either to a primitive type or to a struct by its package
// qualified name.
type TypeRef struct {
	Primitive PrimitiveType
	Package   string
	Name      string
}

func PrimitiveRef(p PrimitiveType) TypeRef {
	return TypeRef{Primitive: p, Name: p.String()}
}

func StructRef(pkg string, name string) TypeRef {
	return TypeRef{Package: pkg, Name: name}
}

func (t TypeRef) IsPrimitive() bool {
	return t.Primitive != NotPrimitive
}

func (t TypeRef) FullName() string {
	if t.IsPrimitive() || t.Package == "" {
		return t.Name
	}

	return t.Package + "." + t.Name
}

type Member struct {
	Name       string
	Type       TypeRef
	Dimensions []Dimension
	Comment    string
}

func (m *Member) IsArray() bool {
	return len(m.Dimensions) > 0
}

type Constant struct {
	Name    string
	Type    PrimitiveType
	Literal string
	Comment string

	// FixedPoint means Literal is an unsigned bit pattern that is
	// reinterpreted as Type instead of being parsed as a literal of Type.
	FixedPoint bool
}

type Struct struct {
	Package   string
	Name      string
	Members   []Member
	Constants []Constant
	Comment   string

	// fingerprint caches the structural hash. Zero means not computed.
	fingerprint uint64
}

func (s *Struct) FullName() string {
	if s.Package == "" {
		return s.Name
	}

	return s.Package + "." + s.Name
}

// PackagePath returns the package as a slash separated path.
func (s *Struct) PackagePath() string {
	return strings.ReplaceAll(s.Package, ".", "/")
}

func (s *Struct) Ref() TypeRef {
	return StructRef(s.Package, s.Name)
}

func (s *Struct) Member(name string) *Member {
	for i := range s.Members {
		if s.Members[i].Name == name {
			return &s.Members[i]
		}
	}

	return nil
}

// Fingerprint returns the cached structural hash or 0 if it hasn't been
// computed yet.
func (s *Struct) Fingerprint() uint64 {
	return s.fingerprint
}

func (s *Struct) SetFingerprint(fp uint64) {
	s.fingerprint = fp
}

// Catalog holds every loaded struct in load order.
type Catalog struct {
	Structs []*Struct
	byName  map[string]*Struct
}

func NewCatalog(structs ...*Struct) *Catalog {
	c := &Catalog{
		Structs: make([]*Struct, 0, len(structs)),
		byName:  make(map[string]*Struct, len(structs)),
	}

	for _, s := range structs {
		c.Add(s)
	}

	return c
}

func (c *Catalog) Add(s *Struct) {
	c.byName[s.FullName()] = s
	c.Structs = append(c.Structs, s)
}

func (c *Catalog) Lookup(fullName string) *Struct {
	return c.byName[fullName]
}

// Resolve returns the struct a composite type reference points to.
func (c *Catalog) Resolve(t TypeRef) (*Struct, error) {
	if t.IsPrimitive() {
		return nil, ShapeErrorf(t.Name, `"%s" is a primitive type`, t.Name)
	}

	s := c.byName[t.FullName()]
	if s == nil {
		return nil, ShapeErrorf(t.FullName(), `unknown type "%s"`, t.FullName())
	}

	return s, nil
}
