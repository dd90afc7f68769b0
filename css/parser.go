package css

import (
	"bytes"
	"errors"
	"io"
	"maps"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser reads stylesheets renderers embed into their output. Only plain
// rulesets and @page are understood, everything else is skipped with a
// warning.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet, source (optional) names the
// stylesheet in debug logs.
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	r := &reader{
		log:   p.log,
		sheet: &Stylesheet{},
		css:   css.NewParser(parse.NewInput(bytes.NewReader(data)), false),
	}
	if len(source) > 0 && source[0] != "" {
		r.log = p.log.With(zap.String("source", source[0]))
		r.log.Debug("Parsing stylesheet", zap.Int("bytes", len(data)))
	}
	r.run()
	return r.sheet
}

type reader struct {
	log   *zap.Logger
	sheet *Stylesheet
	css   *css.Parser
}

func (r *reader) warn(msg string) {
	r.log.Debug("Stylesheet warning", zap.String("details", msg))
	r.sheet.Warnings = append(r.sheet.Warnings, msg)
}

func (r *reader) run() {
	for {
		gt, _, data := r.css.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := r.css.Err(); err != nil && !errors.Is(err, io.EOF) {
				r.warn("parse error: " + err.Error())
			}
			return
		case css.BeginAtRuleGrammar:
			if name := string(data); name == "@page" {
				r.sheet.Rules = append(r.sheet.Rules, Rule{Selector: name, Properties: r.declarations()})
			} else {
				r.skip()
				r.warn("unsupported at-rule: " + name)
			}
		case css.AtRuleGrammar:
			r.warn("unsupported at-rule: " + string(data))
		case css.BeginRulesetGrammar:
			selectors := selectorList(data, r.css.Values())
			props := r.declarations()
			for _, sel := range selectors {
				r.sheet.Rules = append(r.sheet.Rules, Rule{Selector: sel, Properties: maps.Clone(props)})
			}
		}
	}
}

// declarations collects properties up to the end of current block. Custom
// properties are not used by renderers and are dropped.
func (r *reader) declarations() map[string]Value {
	props := make(map[string]Value)
	for {
		gt, _, data := r.css.Next()
		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar, css.EndAtRuleGrammar:
			return props
		case css.DeclarationGrammar:
			if v, ok := valueOf(r.css.Values()); ok {
				props[strings.ToLower(string(data))] = v
			}
		}
	}
}

// skip consumes nested blocks of unsupported at-rule.
func (r *reader) skip() {
	for depth := 1; depth > 0; {
		switch gt, _, _ := r.css.Next(); gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

func selectorList(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// valueOf converts declaration tokens. Raw form is normalized (single spaces,
// no spaces around commas, "!important" dropped) so stylesheets differing in
// formatting only compare equal.
func valueOf(tokens []css.Token) (Value, bool) {
	var (
		parts []css.Token
		raw   strings.Builder
		blank bool
	)
loop:
	for _, t := range tokens {
		switch {
		case t.TokenType == css.WhitespaceToken:
			blank = true
			continue
		case t.TokenType == css.DelimToken && string(t.Data) == "!":
			// only "!important" may follow
			break loop
		case t.TokenType == css.CommaToken:
		case blank && raw.Len() > 0 && !strings.HasSuffix(raw.String(), ","):
			raw.WriteByte(' ')
		}
		blank = false
		raw.Write(t.Data)
		parts = append(parts, t)
	}
	if len(parts) == 0 {
		return Value{}, false
	}

	val := Value{Raw: raw.String()}
	if len(parts) > 1 {
		val.Keyword = val.Raw
		return val, true
	}

	t := parts[0]
	switch t.TokenType {
	case css.DimensionToken:
		val.Value, val.Unit = splitDimension(string(t.Data))
	case css.PercentageToken:
		val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
		val.Unit = "%"
	case css.NumberToken:
		val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
	case css.IdentToken:
		val.Keyword = strings.ToLower(string(t.Data))
	case css.StringToken:
		val.Keyword = unquote(string(t.Data))
	default:
		val.Keyword = val.Raw
	}
	return val, true
}

// splitDimension separates "11.5pt" into number and lowercase unit.
func splitDimension(s string) (float64, string) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+'
	})
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, ""
	}
	num, _ := strconv.ParseFloat(s[:end], 64)
	return num, strings.ToLower(s[end:])
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
