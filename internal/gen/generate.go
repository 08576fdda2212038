package gen

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/koskimas/msggen/internal/model"
	"github.com/koskimas/msggen/internal/plan"
	"github.com/koskimas/msggen/internal/ref"
	"go.uber.org/zap"
)

const (
	wirePackage = "github.com/koskimas/msggen/wire"

	idRecv   = "m"
	idWriter = "w"
	idReader = "r"
	idData   = "data"
	idOut    = "out"

	idFuncEncode      = "Encode"
	idFuncEncodeOne   = "EncodeOne"
	idFuncDecode      = "Decode"
	idFuncDecodeOne   = "DecodeOne"
	idFuncFingerprint = "Fingerprint"

	idConstFingerprintSuffix = "Fingerprint"
	idFuncNewPrefix          = "New"
)

var (
	// Fields can't share a name with a generated method.
	reservedFields = map[string]bool{
		idFuncEncode:      true,
		idFuncEncodeOne:   true,
		idFuncDecode:      true,
		idFuncDecodeOne:   true,
		idFuncFingerprint: true,
	}
)

// Generator renders plans into Go files below `dir`, which is importable as
// `importPath`. Every schema package becomes a Go package in the
// corresponding subdirectory.
type Generator struct {
	dir        string
	importPath string
}

func New(dir string, importPath string) *Generator {
	return &Generator{
		dir:        dir,
		importPath: strings.TrimSuffix(importPath, "/"),
	}
}

// ImportPath returns the Go import path of a schema package.
func (g *Generator) ImportPath(pkg string) string {
	if pkg == "" {
		return g.importPath
	}

	return g.importPath + "/" + strings.ReplaceAll(pkg, ".", "/")
}

// PackageName returns the Go package name of a schema package.
func (g *Generator) PackageName(pkg string) string {
	if pkg == "" {
		return ref.PackageToGo(strings.ReplaceAll(path.Base(g.importPath), "-", ""))
	}

	return ref.PackageToGo(pkg)
}

// FilePath returns the path of the file `s` is rendered to.
func (g *Generator) FilePath(s *model.Struct) string {
	return filepath.Join(g.dir, filepath.FromSlash(s.PackagePath()), s.Name+".go")
}

// CheckNames makes sure the generated identifiers don't collide. Types,
// constructors, fingerprints and constants share the scope of their package
// and fields share the scope of their struct.
func (g *Generator) CheckNames(cat *model.Catalog) error {
	type owner struct {
		what string
		s    *model.Struct
	}

	seen := make(map[string]owner, 3*len(cat.Structs))

	declare := func(s *model.Struct, what string, id string) error {
		key := g.ImportPath(s.Package) + "." + id

		if prev, ok := seen[key]; ok {
			return fmt.Errorf(`%s of struct "%s" and %s of struct "%s" both map to the Go identifier "%s"`,
				prev.what, prev.s.FullName(), what, s.FullName(), key)
		}

		seen[key] = owner{what: what, s: s}
		return nil
	}

	for _, s := range cat.Structs {
		t := s.Ref()

		if err := declare(s, "the type", typeName(t)); err != nil {
			return err
		}

		if err := declare(s, "the constructor", idFuncNewPrefix+typeName(t)); err != nil {
			return err
		}

		if err := declare(s, "the fingerprint", fingerprintName(t)); err != nil {
			return err
		}

		for _, c := range s.Constants {
			if err := declare(s, fmt.Sprintf(`constant "%s"`, c.Name), constName(t, c.Name)); err != nil {
				return err
			}
		}

		if err := checkFields(s); err != nil {
			return err
		}
	}

	return nil
}

func checkFields(s *model.Struct) error {
	fields := make(map[string]string, len(s.Members))

	for _, m := range s.Members {
		name := fieldName(m.Name)

		if prev, ok := fields[name]; ok {
			return fmt.Errorf(`members "%s" and "%s" of struct "%s" both map to the Go field "%s"`, prev, m.Name, s.FullName(), name)
		}

		fields[name] = m.Name
	}

	return nil
}

// File builds the Go file of a single struct.
func (g *Generator) File(p *plan.Plan) *jen.File {
	s := p.Struct
	f := jen.NewFilePathName(g.ImportPath(s.Package), g.PackageName(s.Package))
	f.HeaderComment("Code generated by msggen. DO NOT EDIT.")

	genStruct(g, f, p)
	genConstants(f, p)
	genFingerprint(f, p)
	genNewFunc(g, f, p)
	genEncodeFuncs(g, f, p)
	genDecodeFuncs(g, f, p)

	return f
}

// Render returns the formatted Go source of a single struct.
func (g *Generator) Render(p *plan.Plan) ([]byte, error) {
	var buf bytes.Buffer

	if err := g.File(p).Render(&buf); err != nil {
		return nil, fmt.Errorf(`failed to render "%s": %w`, p.Struct.FullName(), err)
	}

	return buf.Bytes(), nil
}

// Write renders `p` and writes it to its file. It returns the file path.
func (g *Generator) Write(p *plan.Plan) (string, error) {
	src, err := g.Render(p)
	if err != nil {
		return "", err
	}

	filePath := g.FilePath(p.Struct)

	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return "", err
	}

	if err := os.WriteFile(filePath, src, 0600); err != nil {
		return "", err
	}

	Logger().Debug("wrote struct",
		zap.String("struct", p.Struct.FullName()),
		zap.String("file", filePath),
		zap.Int("bytes", len(src)),
	)

	return filePath, nil
}

func genStruct(g *Generator, f *jen.File, p *plan.Plan) {
	s := p.Struct
	name := typeName(s.Ref())

	if s.Comment != "" {
		genComment(f.Group, s.Comment)
	} else {
		f.Commentf("%s is the `%s` message.", name, s.FullName())
	}

	f.Type().Id(name).StructFunc(func(sg *jen.Group) {
		for _, m := range s.Members {
			if m.Comment != "" {
				genComment(sg, m.Comment)
			}

			sg.Id(fieldName(m.Name)).Add(g.goType(m.Type, len(m.Dimensions)))
		}
	})
	f.Line()
}

func genFingerprint(f *jen.File, p *plan.Plan) {
	name := typeName(p.Struct.Ref())

	f.Commentf("%s is the structural hash every encoded `%s` message starts with.", fingerprintName(p.Struct.Ref()), name)
	f.Const().Id(fingerprintName(p.Struct.Ref())).Uint64().Op("=").Id(fmt.Sprintf("0x%016x", p.Fingerprint))
	f.Line()

	f.Func().Params(
		jen.Id(idRecv).Op("*").Id(name),
	).Id(idFuncFingerprint).Params().Uint64().Block(
		jen.Return(jen.Id(fingerprintName(p.Struct.Ref()))),
	)
	f.Line()
}

func genComment(g *jen.Group, comment string) {
	for _, l := range strings.Split(comment, "\n") {
		g.Comment(l)
	}
}

func (g *Generator) goType(t model.TypeRef, dims int) *jen.Statement {
	s := jen.Null()
	for i := 0; i < dims; i++ {
		s = s.Index()
	}

	if t.IsPrimitive() {
		return s.Add(primitiveType(t.Primitive))
	}

	return s.Qual(g.ImportPath(t.Package), typeName(t))
}

func primitiveType(p model.PrimitiveType) *jen.Statement {
	switch p {
	case model.Int8:
		return jen.Int8()
	case model.Int16:
		return jen.Int16()
	case model.Int32:
		return jen.Int32()
	case model.Int64:
		return jen.Int64()
	case model.Byte:
		return jen.Byte()
	case model.Float32:
		return jen.Float32()
	case model.Float64:
		return jen.Float64()
	case model.String:
		return jen.String()
	case model.Boolean:
		return jen.Bool()
	case model.NotPrimitive:
		return jen.Null()
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(p)))
}

// wireSuffix is the suffix of the `wire` read and write methods of a type.
func wireSuffix(p model.PrimitiveType) string {
	switch p {
	case model.Int8:
		return "Int8"
	case model.Int16:
		return "Int16"
	case model.Int32:
		return "Int32"
	case model.Int64:
		return "Int64"
	case model.Byte:
		return "Uint8"
	case model.Float32:
		return "Float32"
	case model.Float64:
		return "Float64"
	case model.String:
		return "String"
	case model.Boolean:
		return "Bool"
	case model.NotPrimitive:
		return ""
	}

	panic(fmt.Sprintf("unknown primitive type %d", int(p)))
}

func typeName(t model.TypeRef) string {
	return ref.TypeToGo(t.Name)
}

func fingerprintName(t model.TypeRef) string {
	return typeName(t) + idConstFingerprintSuffix
}

func fieldName(member string) string {
	name := ref.ToGo(member)

	if reservedFields[name] {
		name += "_"
	}

	return name
}

func constName(t model.TypeRef, constant string) string {
	return typeName(t) + ref.ToGo(constant)
}

func loopVar(depth int) string {
	return fmt.Sprintf("i%d", depth)
}

func extentVar(member string) string {
	return "n" + ref.ToGo(member)
}
