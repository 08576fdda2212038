package zcm

import (
	"fmt"
	"os"

	"github.com/koskimas/msggen/internal/model"
	"github.com/koskimas/msggen/internal/ref"
)

type FilePath = string

type context struct {
	catalog *model.Catalog
	files   []*fileContext
}

type fileContext struct {
	File    *File
	Structs map[*StructDef]*model.Struct
}

// ReadStructs reads and parses every `.zcm` file and resolves the type
// references between them.
func ReadStructs(filePaths []FilePath) (*model.Catalog, error) {
	files := make([]*File, 0, len(filePaths))

	for _, p := range filePaths {
		fileData, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf(`failed to read schema file "%s": %w`, p, err)
		}

		f, err := Parse(p, string(fileData))
		if err != nil {
			return nil, fmt.Errorf(`failed to parse schema file "%s": %w`, p, err)
		}

		files = append(files, f)
	}

	return Catalog(files...)
}

// Catalog turns parsed files into a catalog. All structs are declared before
// any member type is resolved so files may reference each other in any order.
func Catalog(files ...*File) (*model.Catalog, error) {
	ctx := &context{
		catalog: model.NewCatalog(),
	}

	for _, f := range files {
		if err := declareFile(ctx, f); err != nil {
			return nil, err
		}
	}

	for _, fileCtx := range ctx.files {
		if err := resolveFile(ctx, fileCtx); err != nil {
			return nil, err
		}
	}

	return ctx.catalog, nil
}

func declareFile(ctx *context, f *File) error {
	fileCtx := &fileContext{
		File:    f,
		Structs: make(map[*StructDef]*model.Struct, len(f.Structs)),
	}

	for _, def := range f.Structs {
		s := &model.Struct{
			Package: f.PackageName(),
			Name:    def.Name,
			Comment: f.docComment(def.Pos),
		}

		if prev := ctx.catalog.Lookup(s.FullName()); prev != nil {
			return fmt.Errorf(`%s: struct "%s" is declared more than once`, def.Pos, s.FullName())
		}

		ctx.catalog.Add(s)
		fileCtx.Structs[def] = s
	}

	ctx.files = append(ctx.files, fileCtx)
	return nil
}

func resolveFile(ctx *context, fileCtx *fileContext) error {
	for _, def := range fileCtx.File.Structs {
		if err := resolveStruct(ctx, fileCtx, def); err != nil {
			return err
		}
	}

	return nil
}

func resolveStruct(ctx *context, fileCtx *fileContext, def *StructDef) error {
	s := fileCtx.Structs[def]

	for _, item := range def.Items {
		if item.Const != nil {
			constants, err := resolveConst(fileCtx, item.Const)
			if err != nil {
				return err
			}

			s.Constants = append(s.Constants, constants...)
			continue
		}

		members, err := resolveMember(ctx, fileCtx, item.Member)
		if err != nil {
			return err
		}

		s.Members = append(s.Members, members...)
	}

	return nil
}

func resolveMember(ctx *context, fileCtx *fileContext, def *MemberDef) ([]model.Member, error) {
	t, err := ref.Resolve(ctx.catalog, fileCtx.File.PackageName(), def.Type)
	if err != nil {
		return nil, fmt.Errorf(`%s: %w`, def.Pos, err)
	}

	comment := fileCtx.File.docComment(def.Pos)
	members := make([]model.Member, 0, len(def.Names))

	for _, n := range def.Names {
		m := model.Member{
			Name:    n.Name,
			Type:    t,
			Comment: comment,
		}

		for _, d := range n.Dims {
			m.Dimensions = append(m.Dimensions, resolveDim(d))
		}

		members = append(members, m)
	}

	return members, nil
}

func resolveDim(d *DimDef) model.Dimension {
	if d.Member != nil {
		return model.VarDim(*d.Member)
	}

	return model.ConstDim(*d.Size)
}

func resolveConst(fileCtx *fileContext, def *ConstDef) ([]model.Constant, error) {
	t, ok := model.ParsePrimitive(def.Type)
	if !ok {
		return nil, fmt.Errorf(`%s: constant type "%s" is not a primitive type`, def.Pos, def.Type)
	}

	comment := fileCtx.File.docComment(def.Pos)
	constants := make([]model.Constant, 0, len(def.Values))

	for _, v := range def.Values {
		constants = append(constants, model.Constant{
			Name:       v.Name,
			Type:       t,
			Literal:    v.Literal(),
			Comment:    comment,
			FixedPoint: v.Hex != nil && (t == model.Float32 || t == model.Float64),
		})
	}

	return constants, nil
}
