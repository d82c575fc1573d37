// Package lpfile reads models from a small lp_solve-flavored text format:
//
//	/* objective */
//	max: 3x + 2y;
//	c1: x + y <= 4;
//	c2: x + 3y <= 6;
//	x <= 3;        // unnamed single-variable rows become bounds
//	int x;
//	bin y;
//	free z;
//
// Statements end with a semicolon. Variables are declared implicitly on
// first use with the lp_solve default bounds [0, +inf); "free" lifts the
// lower bound. Relations <, <=, >, >= and = are accepted, with < and >
// meaning their inclusive forms.
package lpfile

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lpsleuth/lpsleuth/mip"
)

// ParseFile reads a model from a file, naming it after the file.
func ParseFile(path string) (*mip.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(f, name)
}

// Parse reads a model from r.
func Parse(r io.Reader, name string) (*mip.Model, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	p := &parser{
		model: mip.NewModel(name),
		vars:  make(map[string]*mip.Variable),
	}

	for _, stmt := range splitStatements(stripComments(string(raw))) {
		if err := p.statement(stmt); err != nil {
			return nil, fmt.Errorf("lpfile: %w", err)
		}
	}
	return p.model, nil
}

type parser struct {
	model *mip.Model
	vars  map[string]*mip.Variable
	nrows int
}

// variables default to the lp_solve bound convention of [0, +inf).
func (p *parser) variable(name string) *mip.Variable {
	if v, ok := p.vars[name]; ok {
		return v
	}
	v := p.model.AddVariable(name)
	v.SetBounds(0, math.Inf(1))
	p.vars[name] = v
	return v
}

func (p *parser) statement(stmt string) error {
	toks, err := lex(stmt)
	if err != nil {
		return fmt.Errorf("%q: %w", stmt, err)
	}
	if len(toks) == 0 {
		return nil
	}

	if toks[0].kind == tokIdent {
		switch strings.ToLower(toks[0].text) {
		case "max", "min":
			if len(toks) > 1 && toks[1].kind == tokColon {
				return p.objective(strings.ToLower(toks[0].text) == "max", toks[2:], stmt)
			}
		case "int", "bin", "free":
			return p.declaration(strings.ToLower(toks[0].text), toks[1:], stmt)
		}
	}

	return p.constraint(toks, stmt)
}

func (p *parser) objective(maximize bool, toks []token, stmt string) error {
	expr, rest, err := p.expression(toks)
	if err != nil {
		return fmt.Errorf("%q: %w", stmt, err)
	}
	if len(rest) != 0 {
		return fmt.Errorf("%q: trailing input after objective", stmt)
	}
	p.model.SetObjective(expr, maximize)
	return nil
}

func (p *parser) declaration(kind string, toks []token, stmt string) error {
	if len(toks) == 0 {
		return fmt.Errorf("%q: empty %s declaration", stmt, kind)
	}
	for _, t := range toks {
		if t.kind != tokIdent {
			return fmt.Errorf("%q: expected variable name, got %q", stmt, t.text)
		}
		v := p.variable(t.text)
		switch kind {
		case "int":
			v.SetInteger(true)
		case "bin":
			v.SetBinary()
		case "free":
			v.SetBounds(math.Inf(-1), math.Inf(1))
		}
	}
	return nil
}

func (p *parser) constraint(toks []token, stmt string) error {
	var name string
	if len(toks) > 1 && toks[0].kind == tokIdent && toks[1].kind == tokColon {
		name = toks[0].text
		toks = toks[2:]
	}

	lhs, rest, err := p.expression(toks)
	if err != nil {
		return fmt.Errorf("%q: %w", stmt, err)
	}
	if len(rest) == 0 || rest[0].kind != tokRel {
		return fmt.Errorf("%q: expected a relation (<=, >=, =)", stmt)
	}
	sense := rest[0].sense
	rhs, rest, err := p.expression(rest[1:])
	if err != nil {
		return fmt.Errorf("%q: %w", stmt, err)
	}
	if len(rest) != 0 {
		return fmt.Errorf("%q: trailing input after constraint", stmt)
	}

	// move everything variable to the left, everything constant to the right.
	terms := lhs.Terms
	for _, t := range rhs.Terms {
		terms = append(terms, mip.Term{Coef: -t.Coef, Var: t.Var})
	}
	value := rhs.Constant - lhs.Constant

	// unnamed single-variable unit rows are bounds, per lp_solve.
	if name == "" && len(terms) == 1 {
		v := terms[0].Var
		coef := terms[0].Coef
		if coef != 0 {
			bound := value / coef
			if coef < 0 {
				sense = flip(sense)
			}
			switch sense {
			case mip.LessThan:
				v.SetUpper(bound)
			case mip.GreaterThan:
				v.SetLower(bound)
			case mip.EqualTo:
				v.SetBounds(bound, bound)
			}
			return nil
		}
	}

	if name == "" {
		p.nrows++
		name = fmt.Sprintf("R%d", p.nrows)
	}
	p.model.AddConstraint(name, mip.LinExpr{Terms: terms}, sense, value)
	return nil
}

func flip(s mip.Sense) mip.Sense {
	switch s {
	case mip.LessThan:
		return mip.GreaterThan
	case mip.GreaterThan:
		return mip.LessThan
	}
	return s
}

// expression parses a sum of optionally signed terms, stopping at the first
// token that cannot continue the sum.
func (p *parser) expression(toks []token) (mip.LinExpr, []token, error) {
	var expr mip.LinExpr
	first := true

	for len(toks) > 0 {
		sign := 1.0
		switch toks[0].kind {
		case tokPlus:
			toks = toks[1:]
		case tokMinus:
			sign = -1.0
			toks = toks[1:]
		default:
			if !first {
				return expr, toks, nil
			}
		}
		first = false

		coef := sign
		haveNum := false
		if len(toks) > 0 && toks[0].kind == tokNum {
			coef = sign * toks[0].value
			haveNum = true
			toks = toks[1:]
			// optional multiplication sign between coefficient and name.
			if len(toks) > 0 && toks[0].kind == tokStar {
				toks = toks[1:]
			}
		}

		if len(toks) > 0 && toks[0].kind == tokIdent {
			expr.Terms = append(expr.Terms, mip.Term{Coef: coef, Var: p.variable(toks[0].text)})
			toks = toks[1:]
			continue
		}

		if haveNum {
			expr.Constant += coef
			continue
		}
		return expr, toks, fmt.Errorf("expected a term")
	}

	return expr, toks, nil
}

type tokKind int

const (
	tokNum tokKind = iota
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokColon
	tokRel
)

type token struct {
	kind  tokKind
	text  string
	value float64
	sense mip.Sense
}

func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case c == '+':
			toks = append(toks, token{kind: tokPlus, text: "+"})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, text: "-"})
			i++
		case c == '*':
			toks = append(toks, token{kind: tokStar, text: "*"})
			i++
		case c == ':':
			toks = append(toks, token{kind: tokColon, text: ":"})
			i++
		case c == '<' || c == '>' || c == '=':
			j := i + 1
			if j < len(s) && s[j] == '=' {
				j++
			}
			sense := mip.EqualTo
			if c == '<' {
				sense = mip.LessThan
			} else if c == '>' {
				sense = mip.GreaterThan
			}
			toks = append(toks, token{kind: tokRel, text: s[i:j], sense: sense})
			i = j
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.' || s[j] == 'e' || s[j] == 'E' ||
				((s[j] == '+' || s[j] == '-') && j > i && (s[j-1] == 'e' || s[j-1] == 'E'))) {
				j++
			}
			v, err := strconv.ParseFloat(s[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q", s[i:j])
			}
			toks = append(toks, token{kind: tokNum, text: s[i:j], value: v})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: s[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", string(c))
		}
	}
	return toks, nil
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

func stripComments(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], "/*") {
			if end := strings.Index(s[i+2:], "*/"); end >= 0 {
				i += 2 + end + 2
				continue
			}
			// unterminated block comment swallows the rest.
			break
		}
		if strings.HasPrefix(s[i:], "//") {
			if end := strings.IndexByte(s[i:], '\n'); end >= 0 {
				i += end
				continue
			}
			break
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func splitStatements(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
