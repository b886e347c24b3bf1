package validate

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"secnode_validator/internal/config"
	"secnode_validator/internal/rules"
)

const readableNodeDoc = `{
  "equipment_id": "cryo_demo",
  "description": "Demo cryostat node",
  "firmware": "v1",
  "modules": {
    "t_sample": {
      "interface_classes": ["Readable"],
      "description": "Sample temperature",
      "implementation": "PT100 on AI card",
      "accessibles": {
        "value": {
          "description": "Current temperature",
          "datainfo": {"type": "double", "unit": "K"},
          "readonly": true
        },
        "status": {
          "description": "Module status",
          "datainfo": {
            "type": "tuple",
            "members": [
              {"type": "enum", "members": {"IDLE": 100, "WARN": 200, "ERROR": 400}},
              {"type": "string", "maxchars": 80}
            ]
          },
          "readonly": true
        },
        "pollinterval": {
          "description": "Polling interval",
          "datainfo": {"type": "double", "unit": "s"}
        }
      }
    }
  }
}`

func loadNode(t *testing.T, doc string) *config.SecNode {
	t.Helper()
	parsed, err := config.Parse([]byte(doc), ".json")
	require.NoError(t, err)
	return parsed.Node
}

// A well-formed Readable module without any tooling blocks passes with zero
// errors and exactly the five tooling-absence warnings.
func TestReadableNodeWithoutToolingWarnsFiveTimes(t *testing.T) {
	node := loadNode(t, readableNodeDoc)

	runner := NewRunner()
	findings := runner.Run(node)
	report := BuildReport(findings)

	require.Equal(t, 0, report.Summary.Errors)
	require.Equal(t, 5, report.Summary.Warnings)
	require.False(t, HasErrors(findings))

	type ref struct{ rule, path string }
	got := make([]ref, 0, len(findings))
	for _, f := range findings {
		got = append(got, ref{f.RuleID, f.Path})
	}
	require.Equal(t, []ref{
		{"R-PLC-010", "$.x-plc.tcp"},
		{"R-PLC-010", "$.x-plc.secop_version"},
		{"R-PLC-010", "$.x-plc.plc_timestamp_tag"},
		{"R-PLC-020", "$.modules.t_sample.x-plc.timestamp_tag"},
		{"R-PLC-031", "$.modules.t_sample.x-plc.value.read_expr"},
	}, got)
}

func TestRunIsIdempotent(t *testing.T) {
	node := loadNode(t, readableNodeDoc)
	runner := NewRunner()

	first, err := BuildReport(runner.Run(node)).Encode()
	require.NoError(t, err)
	second, err := BuildReport(runner.Run(node)).Encode()
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
}

func TestErrorsBlockGeneration(t *testing.T) {
	node := loadNode(t, readableNodeDoc)
	node.Modules["t_sample"].Accessibles["value"].ReadOnly = false

	runner := NewRunner()
	findings := runner.Run(node)

	require.True(t, HasErrors(findings))
	report := BuildReport(findings)
	require.Equal(t, 1, report.Summary.Errors)
}

func TestReportOmitsEmptyOptionalFields(t *testing.T) {
	node := loadNode(t, readableNodeDoc)
	findings := NewRunner().Run(node)

	encoded, err := BuildReport(findings).Encode()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	list, ok := decoded["findings"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 5)

	first, ok := list[0].(map[string]interface{})
	require.True(t, ok)
	require.NotContains(t, first, "hint")
	require.Contains(t, first, "category")
	require.Contains(t, first, "plc_refs")
}

func TestEmptyFindingsEncodeAsList(t *testing.T) {
	encoded, err := BuildReport(nil).Encode()
	require.NoError(t, err)
	require.Contains(t, string(encoded), `"findings": []`)
}

// Adding an unrelated, self-consistent module must not change the findings
// attributed to existing modules or the node level.
func TestDisjointModuleAdditionPreservesFindings(t *testing.T) {
	runner := NewRunner()

	before := runner.Run(loadNode(t, readableNodeDoc))

	node := loadNode(t, readableNodeDoc)
	extra := loadNode(t, readableNodeDoc).Modules["t_sample"]
	node.Modules["z_extra"] = extra

	after := runner.Run(node)

	filter := func(findings []rules.Finding) []rules.Finding {
		var out []rules.Finding
		for _, f := range findings {
			if !strings.Contains(f.Path, "z_extra") {
				out = append(out, f)
			}
		}
		return out
	}
	require.Equal(t, before, filter(after))
}

func TestCustomCatalogOption(t *testing.T) {
	called := false
	runner := NewRunner(WithCatalog([]rules.Rule{{
		Name: "probe",
		Check: func(*config.SecNode) []rules.Finding {
			called = true
			return []rules.Finding{{RuleID: "X-TEST", Severity: rules.SeverityWarning, Path: "$", Message: "probe"}}
		},
	}}))

	findings := runner.Run(loadNode(t, readableNodeDoc))
	require.True(t, called)
	require.Len(t, findings, 1)
	require.Equal(t, "X-TEST", findings[0].RuleID)
}
