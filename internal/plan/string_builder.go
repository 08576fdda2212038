package plan

import (
	"fmt"
	"strings"
)

// stringBuilder renders plans as indented text, one node per line.
type stringBuilder struct {
	strings.Builder
	newLine bool
	indent  int
}

// Block writes `header` and renders `body` one level deeper. `footer` closes
// the block unless it is empty.
func (s *stringBuilder) Block(header string, footer string, body func()) {
	s.WriteLine(header)

	s.indent++
	body()
	s.indent--

	if footer != "" {
		s.WriteLine(footer)
	}
}

func (s *stringBuilder) WriteNewLine() {
	_ = s.Builder.WriteByte('\n')
	s.newLine = true
}

func (s *stringBuilder) WriteString(str string) {
	if s.newLine {
		s.newLine = false
		_, _ = s.Builder.WriteString(strings.Repeat("  ", s.indent))
	}

	_, _ = s.Builder.WriteString(str)
}

func (s *stringBuilder) WriteLine(str string) {
	s.WriteString(str)
	s.WriteNewLine()
}

func (s *stringBuilder) Linef(format string, args ...any) {
	s.WriteLine(fmt.Sprintf(format, args...))
}
