package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/chazu/rant/vm"
)

// ParseLiteral parses a value literal as written on the command line:
//
//	no                 the absent value
//	true, false        booleans
//	3.5, -2, 1E+15     numbers
//	"quoted text"      strings (Go escape rules)
//	$'code'            templates
//	(a, b, (c))        lists, nestable; () is the empty list
//
// Anything else is taken verbatim as a string.
func ParseLiteral(src string) (vm.Value, error) {
	p := &literalParser{src: src}
	v, err := p.value(false)
	if err != nil {
		return vm.No, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return vm.No, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos:], p.pos)
	}
	return v, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *literalParser) value(inList bool) (vm.Value, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		if inList {
			return vm.No, fmt.Errorf("unterminated list")
		}
		return vm.FromString(""), nil
	}
	switch c := p.src[p.pos]; {
	case c == '(':
		return p.list()
	case c == '"':
		return p.quoted()
	case c == '$' && strings.HasPrefix(p.src[p.pos:], "$'"):
		return p.template()
	}
	return p.atom(inList), nil
}

func (p *literalParser) list() (vm.Value, error) {
	p.pos++ // (
	items := []vm.Value{}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ')' {
		p.pos++
		return vm.FromList(items), nil
	}

	for {
		item, err := p.value(true)
		if err != nil {
			return vm.No, err
		}
		items = append(items, item)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return vm.No, fmt.Errorf("unterminated list")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return vm.FromList(items), nil
		default:
			return vm.No, fmt.Errorf("expected , or ) at offset %d", p.pos)
		}
	}
}

func (p *literalParser) quoted() (vm.Value, error) {
	start := p.pos
	p.pos++ // opening quote
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case '"':
			p.pos++
			s, err := strconv.Unquote(p.src[start:p.pos])
			if err != nil {
				return vm.No, fmt.Errorf("bad string %s: %w", p.src[start:p.pos], err)
			}
			return vm.FromString(s), nil
		}
		p.pos++
	}
	return vm.No, fmt.Errorf("unterminated string starting at offset %d", start)
}

// template reads $'code'. A quote inside the code is written \'.
func (p *literalParser) template() (vm.Value, error) {
	start := p.pos
	p.pos += 2 // $'
	var code strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\\' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
			code.WriteByte('\'')
			p.pos += 2
			continue
		}
		if c == '\'' {
			p.pos++
			return vm.FromTemplate(vm.SourceTemplate(code.String())), nil
		}
		code.WriteByte(c)
		p.pos++
	}
	return vm.No, fmt.Errorf("unterminated template starting at offset %d", start)
}

// atom reads a bare word. Inside a list it stops at , or ); at the top level
// it takes the rest of the input.
func (p *literalParser) atom(inList bool) vm.Value {
	start := p.pos
	for p.pos < len(p.src) {
		if c := p.src[p.pos]; inList && (c == ',' || c == ')') {
			break
		}
		p.pos++
	}
	word := strings.TrimSpace(p.src[start:p.pos])

	switch word {
	case "no":
		return vm.No
	case "true":
		return vm.FromBool(true)
	case "false":
		return vm.FromBool(false)
	}
	if n, ok := vm.ParseNumber(word); ok {
		return vm.FromNumber(n)
	}
	return vm.FromString(word)
}

// FormatLiteral renders v so that ParseLiteral reads it back as the same
// kind. Strings are always quoted.
func FormatLiteral(v vm.Value) string {
	switch v.Kind() {
	case vm.StringKind:
		s, _ := v.Text()
		return strconv.Quote(s)
	case vm.TemplateKind:
		return "$'" + strings.ReplaceAll(v.Template().Code(), "'", `\'`) + "'"
	case vm.ListKind:
		parts := make([]string, v.Len())
		for i, item := range v.List() {
			parts[i] = FormatLiteral(item)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return v.String()
}

// splitArgs splits a REPL line into arguments on white space, keeping
// quoted strings, templates and parenthesised lists together.
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	depth := 0
	var quote byte

	flush := func() {
		if cur.Len() > 0 {
			args = append(args, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				i++
				cur.WriteByte(line[i])
			} else if c == quote {
				quote = 0
			}
		case c == '"':
			quote = '"'
			cur.WriteByte(c)
		case c == '\'' && cur.Len() > 0 && strings.HasSuffix(cur.String(), "$"):
			quote = '\''
			cur.WriteByte(c)
		case c == '(':
			depth++
			cur.WriteByte(c)
		case c == ')':
			depth--
			cur.WriteByte(c)
		case depth == 0 && unicode.IsSpace(rune(c)):
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote")
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	flush()
	return args, nil
}
