package zcm

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var zcmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*[\s\S]*?\*/`},
	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
	{Name: "Float", Pattern: `[-+]?(\d+\.\d*|\.\d+)([eE][-+]?\d+)?|[-+]?\d+[eE][-+]?\d+`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Punct", Pattern: `[;{}\[\],.=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(zcmLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

type File struct {
	Name    string
	Package []string     `parser:"('package' @Ident ('.' @Ident)* ';')?"`
	Structs []*StructDef `parser:"@@*"`

	lines []string
}

func (f *File) PackageName() string {
	return strings.Join(f.Package, ".")
}

type StructDef struct {
	Pos   lexer.Position
	Name  string     `parser:"'struct' @Ident '{'"`
	Items []*ItemDef `parser:"@@* '}'"`
}

type ItemDef struct {
	Const  *ConstDef  `parser:"  @@"`
	Member *MemberDef `parser:"| @@"`
}

type ConstDef struct {
	Pos    lexer.Position
	Type   string           `parser:"'const' @Ident"`
	Values []*ConstValueDef `parser:"@@ (',' @@)* ';'"`
}

type ConstValueDef struct {
	Pos    lexer.Position
	Name   string  `parser:"@Ident '='"`
	Hex    *string `parser:"( @Hex"`
	Number *string `parser:"| @(Float | Int)"`
	Ident  *string `parser:"| @Ident )"`
}

func (c *ConstValueDef) Literal() string {
	switch {
	case c.Hex != nil:
		return *c.Hex
	case c.Number != nil:
		return *c.Number
	case c.Ident != nil:
		return *c.Ident
	}

	return ""
}

type MemberDef struct {
	Pos   lexer.Position
	Type  string           `parser:"@Ident (@'.' @Ident)*"`
	Names []*MemberNameDef `parser:"@@ (',' @@)* ';'"`
}

type MemberNameDef struct {
	Pos  lexer.Position
	Name string    `parser:"@Ident"`
	Dims []*DimDef `parser:"('[' @@ ']')*"`
}

type DimDef struct {
	Size   *int    `parser:"  @Int"`
	Member *string `parser:"| @Ident"`
}

// Parse parses the source of a single `.zcm` file.
func Parse(fileName string, content string) (*File, error) {
	f, err := parser.ParseString(fileName, content)
	if err != nil {
		return nil, err
	}

	f.Name = fileName
	f.lines = strings.Split(content, "\n")

	return f, nil
}

// docComment returns the comment block that ends on the line right above
// `pos`, with comment markers removed.
func (f *File) docComment(pos lexer.Position) string {
	end := pos.Line - 2
	if end < 0 || end >= len(f.lines) {
		return ""
	}

	if strings.HasSuffix(strings.TrimSpace(f.lines[end]), "*/") {
		return f.blockComment(end)
	}

	start := end + 1
	for start > 0 && strings.HasPrefix(strings.TrimSpace(f.lines[start-1]), "//") {
		start--
	}

	out := make([]string, 0, end-start+1)
	for _, l := range f.lines[start : end+1] {
		l = strings.TrimPrefix(strings.TrimSpace(l), "//")
		out = append(out, strings.TrimPrefix(l, " "))
	}

	return strings.Join(out, "\n")
}

func (f *File) blockComment(end int) string {
	start := end
	for start > 0 && !strings.Contains(f.lines[start], "/*") {
		start--
	}

	// A trailing comment of a preceding declaration is not a doc comment.
	if !strings.HasPrefix(strings.TrimSpace(f.lines[start]), "/*") {
		return ""
	}

	out := make([]string, 0, end-start+1)
	for i, l := range f.lines[start : end+1] {
		l = strings.TrimSpace(l)
		if i == 0 {
			l = l[strings.Index(l, "/*")+2:]
		}

		l = strings.TrimSuffix(l, "*/")
		l = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(l), "*"), " ")
		l = strings.TrimSpace(l)

		if l != "" {
			out = append(out, l)
		}
	}

	return strings.Join(out, "\n")
}
