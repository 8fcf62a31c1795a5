package syntax

import (
	"fmt"
	"strconv"
	"strings"

	pc "github.com/shibukawa/parsercombinator"
)

const (
	tokenDigit  = "digit"
	tokenNumber = "number"
	tokenChar   = "char"
)

func runeToken(typeName string, want func(rune) bool) pc.Parser[rune] {
	return func(pctx *pc.ParseContext[rune], tokens []pc.Token[rune]) (int, []pc.Token[rune], error) {
		if len(tokens) > 0 && tokens[0].Type == typeName && want(tokens[0].Val) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func char(r rune) pc.Parser[rune] {
	return runeToken(tokenChar, func(v rune) bool { return v == r })
}

var (
	digit = runeToken(tokenDigit, func(rune) bool { return true })

	// number joins consecutive digits into one token
	number = pc.Trans(
		pc.Seq(digit, pc.ZeroOrMore("digits", digit)),
		func(pctx *pc.ParseContext[rune], src []pc.Token[rune]) ([]pc.Token[rune], error) {
			var raw strings.Builder
			for _, t := range src {
				raw.WriteString(t.Raw)
			}

			return []pc.Token[rune]{{Type: tokenNumber, Pos: src[0].Pos, Raw: raw.String()}}, nil
		},
	)

	// braces recognises {m}, {m,}, {,n} and {m,n}
	braces = pc.Seq(
		char('{'),
		pc.Optional(number),
		pc.Optional(pc.Seq(char(','), pc.Optional(number))),
		char('}'),
	)
)

func toBoundTokens(src []rune, offset int) []pc.Token[rune] {
	tokens := make([]pc.Token[rune], 0, len(src))

	for i, r := range src {
		typeName := tokenChar
		if isDigit(r) {
			typeName = tokenDigit
		}

		tokens = append(tokens, pc.Token[rune]{
			Type: typeName,
			Pos:  &pc.Pos{Line: 1, Col: offset + i + 1, Index: offset + i},
			Val:  r,
			Raw:  string(r),
		})

		if r == '}' {
			break
		}
	}

	return tokens
}

// parseBraces parses a {m,n} quantifier starting at '{'
func (p *parser) parseBraces() (Repetition, error) {
	start := p.pos

	consumed, parsed, err := braces(pc.NewParseContext[rune](), toBoundTokens(p.src[start:], start))
	if err != nil {
		return Repetition{}, p.errorAt(start, fmt.Errorf("%w: expected {m}, {m,}, {,n} or {m,n}", ErrInvalidRepetition))
	}

	var (
		low, high       string
		hasLow, hasHigh bool
		comma           bool
	)

	for _, t := range parsed {
		switch {
		case t.Type == tokenNumber && !comma:
			low, hasLow = t.Raw, true
		case t.Type == tokenNumber:
			high, hasHigh = t.Raw, true
		case t.Type == tokenChar && t.Val == ',':
			comma = true
		}
	}

	rep := Repetition{}

	switch {
	case !comma && !hasLow:
		return Repetition{}, p.errorAt(start, fmt.Errorf("%w: empty braces", ErrInvalidRepetition))
	case comma && !hasLow && !hasHigh:
		return Repetition{}, p.errorAt(start, fmt.Errorf("%w: missing bound after comma", ErrInvalidRepetition))
	}

	if hasLow {
		rep.Min, err = parseBound(low)
		if err != nil {
			return Repetition{}, p.errorAt(start, err)
		}
	}

	switch {
	case !comma:
		rep.Max = rep.Min
	case hasHigh:
		rep.Max, err = parseBound(high)
		if err != nil {
			return Repetition{}, p.errorAt(start, err)
		}
	default:
		rep.Max = Unbounded
	}

	if rep.Min > rep.Max {
		return Repetition{}, p.errorAt(start, fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidRepetition, rep.Min, rep.Max))
	}

	p.pos += consumed

	return rep, nil
}

func parseBound(s string) (int, error) {
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("%w: leading zero in '%s'", ErrInvalidRepetition, s)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s' out of range", ErrInvalidRepetition, s)
	}

	return n, nil
}
