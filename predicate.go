package peggle

import (
	"fmt"
	"math"
	"regexp"

	"github.com/google/cel-go/cel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nathaniel-bennett/peggle/record"
	"github.com/nathaniel-bennett/peggle/schema"
)

// recordVariable holds every field of the record being checked
const recordVariable = "record"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var celReserved = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "else": true,
	"false": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "let": true, "loop": true, "package": true, "namespace": true,
	"null": true, "return": true, "true": true, "var": true, "void": true,
	"while": true, recordVariable: true,
}

// predicate is a compiled where expression
type predicate struct {
	source  string
	program cel.Program
	direct  []string
}

// variableNames returns the field names usable as bare CEL identifiers
func variableNames(s *schema.Schema) []string {
	var names []string

	for _, name := range s.Names() {
		if identifierPattern.MatchString(name) && !celReserved[name] {
			names = append(names, name)
		}
	}

	return names
}

func compilePredicate(source string, s *schema.Schema) (*predicate, error) {
	direct := variableNames(s)

	envOpts := []cel.EnvOption{
		cel.Variable(recordVariable, cel.MapType(cel.StringType, cel.DynType)),
	}
	for _, name := range direct {
		envOpts = append(envOpts, cel.Variable(name, cel.DynType))
	}

	env, err := cel.NewEnv(envOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPredicate, err)
	}

	ast, issues := env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: `%s`: %w", ErrInvalidPredicate, source, issues.Err())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: `%s`: %w", ErrInvalidPredicate, source, err)
	}

	return &predicate{source: source, program: program, direct: direct}, nil
}

func (p *predicate) eval(r *record.Record) (bool, error) {
	fields, _ := celValue(r.AsMap()).(map[string]any)

	activation := make(map[string]any, len(p.direct)+1)
	activation[recordVariable] = fields

	for _, name := range p.direct {
		activation[name] = fields[name]
	}

	out, _, err := p.program.Eval(activation)
	if err != nil {
		return false, fmt.Errorf("where `%s`: %w", p.source, err)
	}

	ok, isBool := out.Value().(bool)
	if !isBool {
		return false, fmt.Errorf("%w: `%s` returned %v", ErrPredicateNotBool, p.source, out.Type())
	}

	return ok, nil
}

// celValue converts captured values into the types CEL understands natively.
// Integers and chars widen to int64 (uint64 above MaxInt64). Decimals become
// doubles and UUIDs their canonical text.
func celValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = celValue(item)
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = celValue(item)
		}

		return out
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint:
		return unsigned(uint64(v))
	case uint64:
		return unsigned(v)
	case decimal.Decimal:
		return v.InexactFloat64()
	case uuid.UUID:
		return v.String()
	default:
		return v
	}
}

func unsigned(v uint64) any {
	if v > math.MaxInt64 {
		return v
	}

	return int64(v)
}
