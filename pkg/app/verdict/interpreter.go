package verdict

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/NeuralTrust/ComplianceHawk/pkg/config"
	"github.com/NeuralTrust/ComplianceHawk/pkg/domain/audit"
	"github.com/valyala/fastjson"
)

const (
	fence = "```"

	highRiskThreshold   = 80
	mediumRiskThreshold = 40

	markerHigh   = "🔴"
	markerMedium = "🟡"
	markerLow    = "🟢"
)

var (
	fenceLanguage = regexp.MustCompile(`^[A-Za-z][\w+.-]*`)
	sentinel      = regexp.MustCompile(`(?i)risk\s*score\s*:\s*\[?\s*(\d{1,3})\s*\]?\s*\|\s*status\s*:\s*\[?\s*(non[\s-]?compliant|compliant)\s*\]?`)

	errNotObject = errors.New("model output is not a JSON object")
	errNoMarker  = errors.New("model output has neither JSON nor a risk score marker")
	errDuplicate = errors.New("duplicate key")
)

type Outcome int

const (
	OutcomeParsed Outcome = iota
	OutcomeUnparseable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeParsed:
		return "parsed"
	case OutcomeUnparseable:
		return "unparseable"
	default:
		return "unknown"
	}
}

// Result is what the interpreter made of one model reply. Verdict is always
// usable; Err is set only for OutcomeUnparseable and explains why.
type Result struct {
	Verdict audit.Verdict
	Outcome Outcome
	Err     error
}

type Interpreter interface {
	Interpret(raw string) Result
}

type interpreter struct {
	mode     string
	decorate bool
}

// NewInterpreter returns an interpreter for the given output mode. With
// decorate set, parsed statuses get a severity marker prefix.
func NewInterpreter(mode string, decorate bool) Interpreter {
	return &interpreter{mode: mode, decorate: decorate}
}

func (i *interpreter) Interpret(raw string) Result {
	cleaned := StripFences(raw)

	v, err := decodeJSON(cleaned)
	if err != nil && i.mode == config.OutputModeSentinel {
		var sentinelErr error
		v, sentinelErr = decodeSentinel(cleaned)
		if sentinelErr == nil {
			err = nil
		}
	}
	if err != nil {
		return Result{
			Verdict: audit.FailSafeVerdict(raw),
			Outcome: OutcomeUnparseable,
			Err:     &audit.UnparseableOutputError{Raw: raw, Err: err},
		}
	}

	v.RiskScore = audit.ClampRiskScore(v.RiskScore)
	if i.decorate {
		v.Status = Decorate(v.Status, v.RiskScore)
	}
	return Result{Verdict: v, Outcome: OutcomeParsed}
}

// StripFences trims whitespace and removes one leading code fence (with an
// optional language tag) and one trailing fence. It does not look inside
// the text.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, fence) {
		s = strings.TrimPrefix(s, fence)
		s = fenceLanguage.ReplaceAllString(s, "")
	}
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// Decorate prefixes status with a marker for the severity tier of score.
func Decorate(status string, score int) string {
	switch {
	case score >= highRiskThreshold:
		return markerHigh + " " + status
	case score >= mediumRiskThreshold:
		return markerMedium + " " + status
	default:
		return markerLow + " " + status
	}
}

// decodeJSON reads exactly one JSON object. Missing or null fields take
// their defaults; fields of the wrong type or repeated verdict keys make the
// whole reply unparseable.
func decodeJSON(s string) (audit.Verdict, error) {
	v := audit.Verdict{
		Status:      audit.StatusUnknown,
		RiskScore:   audit.MinRiskScore,
		Explanation: audit.DefaultExplanation,
	}

	var p fastjson.Parser
	doc, err := p.Parse(s)
	if err != nil {
		return v, err
	}
	obj, err := doc.Object()
	if err != nil {
		return v, errNotObject
	}

	fields := make(map[string]*fastjson.Value, 3)
	var duplicate string
	obj.Visit(func(key []byte, field *fastjson.Value) {
		k := string(key)
		switch k {
		case "status", "risk_score", "explanation":
		default:
			return
		}
		if _, seen := fields[k]; seen && duplicate == "" {
			duplicate = k
		}
		fields[k] = field
	})
	if duplicate != "" {
		return v, fmt.Errorf("%s: %w", duplicate, errDuplicate)
	}

	if field := fields["status"]; field != nil && field.Type() != fastjson.TypeNull {
		b, err := field.StringBytes()
		if err != nil {
			return v, fmt.Errorf("status: %w", err)
		}
		v.Status = string(b)
	}
	if field := fields["risk_score"]; field != nil && field.Type() != fastjson.TypeNull {
		f, err := field.Float64()
		if err != nil {
			return v, fmt.Errorf("risk_score: %w", err)
		}
		v.RiskScore = roundScore(f)
	}
	if field := fields["explanation"]; field != nil && field.Type() != fastjson.TypeNull {
		b, err := field.StringBytes()
		if err != nil {
			return v, fmt.Errorf("explanation: %w", err)
		}
		v.Explanation = string(b)
	}
	return v, nil
}

// decodeSentinel reads the last "Risk Score: N | Status: X" marker; the text
// before it is the explanation.
func decodeSentinel(s string) (audit.Verdict, error) {
	matches := sentinel.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return audit.Verdict{}, errNoMarker
	}
	last := matches[len(matches)-1]

	score, err := strconv.Atoi(s[last[2]:last[3]])
	if err != nil {
		return audit.Verdict{}, err
	}

	status := audit.StatusCompliant
	if strings.HasPrefix(strings.ToLower(s[last[4]:last[5]]), "non") {
		status = audit.StatusNonCompliant
	}

	explanation := strings.Trim(strings.TrimSpace(s[:last[0]]), `"`)
	explanation = strings.TrimSpace(explanation)
	if explanation == "" {
		explanation = audit.DefaultExplanation
	}

	return audit.Verdict{
		Status:      status,
		RiskScore:   score,
		Explanation: explanation,
	}, nil
}

func roundScore(f float64) int {
	switch {
	case math.IsNaN(f):
		return audit.MaxRiskScore
	case f <= audit.MinRiskScore:
		return audit.MinRiskScore
	case f >= audit.MaxRiskScore:
		return audit.MaxRiskScore
	default:
		return int(math.Round(f))
	}
}
