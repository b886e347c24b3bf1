package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"secnode_validator/internal/config"
)

func TestToolingBlockForMissingAccessible(t *testing.T) {
	mod := readableModule()
	mod.PLC = &config.ModuleToolingConfig{
		Target: &config.TargetToolingConfig{WriteStmt: "Out := v;"},
	}

	findings := rulePLCKeysExistInAccessibles(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 1)
	require.Equal(t, "R-PLC-001", findings[0].RuleID)
	require.Equal(t, SeverityError, findings[0].Severity)
	require.Equal(t, "$.modules.m.x-plc.target", findings[0].Path)
	require.Contains(t, findings[0].Hint, "modules.m.accessibles")
}

func TestNodeToolingAbsentWarnsEverything(t *testing.T) {
	node := nodeWith(map[string]*config.Module{"m": readableModule()})

	findings := rulePLCNodeFieldsConfigured(node)
	require.Len(t, findings, 3)
	require.Equal(t, "$.x-plc.tcp", findings[0].Path)
	require.Equal(t, "$.x-plc.secop_version", findings[1].Path)
	require.Equal(t, "$.x-plc.plc_timestamp_tag", findings[2].Path)
	for _, f := range findings {
		require.Equal(t, "R-PLC-010", f.RuleID)
		require.Equal(t, SeverityWarning, f.Severity)
		require.Equal(t, "implementation", f.Category)
		require.Contains(t, f.Message, "Manual PLC implementation will be required.")
	}
}

func TestNodeToolingPartialTCP(t *testing.T) {
	node := nodeWith(map[string]*config.Module{"m": readableModule()})
	node.PLC = &config.NodeToolingConfig{
		TCP:             &config.TCPConfig{ServerIP: "10.0.0.2"},
		SecopVersion:    "2021.02",
		PLCTimestampTag: "PlcTime",
	}

	findings := rulePLCNodeFieldsConfigured(node)
	require.Len(t, findings, 2)
	require.Equal(t, "$.x-plc.tcp.server_port", findings[0].Path)
	require.Equal(t, "$.x-plc.tcp.interface_healthy_tag", findings[1].Path)
	require.Equal(t, []string{"SecopInit"}, findings[0].PLCRefs)
	require.Equal(t, []string{"SecopMapFromPlc"}, findings[1].PLCRefs)
}

func TestModuleTimestampAbsentBlockWarns(t *testing.T) {
	mod := readableModule()

	findings := rulePLCModuleTimestampConfigured(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 1)
	require.Equal(t, "R-PLC-020", findings[0].RuleID)
	require.Equal(t, "$.modules.m.x-plc.timestamp_tag", findings[0].Path)

	mod.PLC = &config.ModuleToolingConfig{TimestampTag: "Mod.Ts"}
	require.Empty(t, rulePLCModuleTimestampConfigured(nodeWith(map[string]*config.Module{"m": mod})))
}

func TestStatusHWErrorGatedOnBlock(t *testing.T) {
	mod := readableModule()
	mod.PLC = &config.ModuleToolingConfig{TimestampTag: "Mod.Ts"}
	require.Empty(t, rulePLCStatusHWErrorConfigured(nodeWith(map[string]*config.Module{"m": mod})))

	mod.PLC.Status = &config.StatusToolingConfig{}
	findings := rulePLCStatusHWErrorConfigured(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 2)
	require.Equal(t, "$.modules.m.x-plc.status.hw_error_expr", findings[0].Path)
	require.Equal(t, "$.modules.m.x-plc.status.hw_error_description", findings[1].Path)
	for _, f := range findings {
		require.Equal(t, "R-PLC-021", f.RuleID)
		require.Equal(t, SeverityWarning, f.Severity)
	}
}

func TestDisabledMappingWithoutEnumMember(t *testing.T) {
	mod := readableModule()
	mod.PLC = &config.ModuleToolingConfig{
		Status: &config.StatusToolingConfig{
			DisabledExpr:       "Mod.Off",
			HwErrorExpr:        "Mod.Err",
			HwErrorDescription: "hardware fault",
		},
	}

	findings := rulePLCStatusDisabledCoherent(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 1)
	require.Equal(t, "R-PLC-022", findings[0].RuleID)
	require.Equal(t, SeverityError, findings[0].Severity)
	require.Equal(t, "$.modules.m.x-plc.status", findings[0].Path)
}

func TestDisabledEnumMemberWithoutMapping(t *testing.T) {
	mod := readableModule()
	codes := baseStatusCodes()
	codes["DISABLED"] = 0
	mod.Accessibles["status"] = statusAccessible(codes)
	mod.PLC = &config.ModuleToolingConfig{Status: &config.StatusToolingConfig{}}

	findings := rulePLCStatusDisabledCoherent(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 2)
	require.Equal(t, "R-PLC-023", findings[0].RuleID)
	require.Equal(t, SeverityWarning, findings[0].Severity)
	require.Equal(t, "$.modules.m.x-plc.status.disabled_expr", findings[0].Path)
	require.Equal(t, "$.modules.m.x-plc.status.disabled_description", findings[1].Path)
}

func TestDisabledCoherenceGatedOnStatusBlock(t *testing.T) {
	mod := readableModule()
	codes := baseStatusCodes()
	codes["DISABLED"] = 0
	mod.Accessibles["status"] = statusAccessible(codes)

	// no status tooling block at all, the coherence rules stay silent
	require.Empty(t, rulePLCStatusDisabledCoherent(nodeWith(map[string]*config.Module{"m": mod})))
}

func TestReachFieldsForbiddenOutsideDrivable(t *testing.T) {
	mod := readableModule()
	mod.InterfaceClasses = []string{"Writable"}
	mod.Accessibles["target"] = &config.Accessible{
		Description: "target",
		DataInfo:    config.DataInfo{Type: "double"},
	}
	mod.PLC = &config.ModuleToolingConfig{
		Target: &config.TargetToolingConfig{
			WriteStmt:         "Out := v;",
			ReachTimeoutS:     intPtr(30),
			ReachAbsTolerance: dec("0.5"),
		},
	}

	findings := rulePLCTargetReachFields(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 2)
	require.Equal(t, "R-PLC-024", findings[0].RuleID)
	require.Equal(t, SeverityError, findings[0].Severity)
	require.Equal(t, "$.modules.m.x-plc.target.reach_timeout_s", findings[0].Path)
	require.Equal(t, "$.modules.m.x-plc.target.reach_abs_tolerance", findings[1].Path)
}

func TestReachFieldsExpectedOnDrivable(t *testing.T) {
	mod := drivableModule()
	mod.PLC = &config.ModuleToolingConfig{
		Target: &config.TargetToolingConfig{WriteStmt: "Out := v;"},
	}

	findings := rulePLCTargetReachFields(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 2)
	require.Equal(t, "R-PLC-025", findings[0].RuleID)
	require.Equal(t, []string{"SecopInit"}, findings[0].PLCRefs)
	require.Equal(t, []string{"ST_Module_m"}, findings[1].PLCRefs)
}

func TestReachToleranceNotExpectedForEnumTarget(t *testing.T) {
	mod := drivableModule()
	mod.Accessibles["value"].DataInfo = config.DataInfo{
		Type:    "enum",
		Members: &config.Members{Kind: config.MembersEnum, Enum: map[string]int64{"off": 0, "on": 1}},
	}
	mod.Accessibles["target"].DataInfo = mod.Accessibles["value"].DataInfo
	mod.PLC = &config.ModuleToolingConfig{
		Target: &config.TargetToolingConfig{EnumTag: "Mod.Mode"},
	}

	findings := rulePLCTargetReachFields(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 1)
	require.Equal(t, "$.modules.m.x-plc.target.reach_timeout_s", findings[0].Path)
}

func TestChangePossibleExprExpected(t *testing.T) {
	mod := drivableModule()
	mod.PLC = &config.ModuleToolingConfig{
		Target: &config.TargetToolingConfig{WriteStmt: "Out := v;"},
	}

	findings := rulePLCTargetChangePossibleConfigured(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 1)
	require.Equal(t, "R-PLC-026", findings[0].RuleID)
	require.Equal(t, "$.modules.m.x-plc.target.change_possible_expr", findings[0].Path)
}

func TestValueMappingEnumContradiction(t *testing.T) {
	mod := readableModule()
	mod.Accessibles["value"].DataInfo = config.DataInfo{
		Type:    "enum",
		Members: &config.Members{Kind: config.MembersEnum, Enum: map[string]int64{"off": 0, "on": 1}},
	}
	mod.PLC = &config.ModuleToolingConfig{
		Value: &config.ValueToolingConfig{ReadExpr: "Mod.Value"},
	}

	findings := rulePLCValueMappingByType(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 2)
	require.Equal(t, "R-PLC-030", findings[0].RuleID)
	require.Equal(t, SeverityError, findings[0].Severity)
	require.Equal(t, "$.modules.m.x-plc.value.read_expr", findings[0].Path)
	require.Equal(t, "R-PLC-031", findings[1].RuleID)
	require.Equal(t, []string{"SecopMapFromPlc", "ET_Module_m"}, findings[1].PLCRefs)
}

func TestValueMappingAbsentBlockWarns(t *testing.T) {
	mod := readableModule()

	findings := rulePLCValueMappingByType(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 1)
	require.Equal(t, "R-PLC-031", findings[0].RuleID)
	require.Equal(t, SeverityWarning, findings[0].Severity)
	require.Equal(t, "$.modules.m.x-plc.value.read_expr", findings[0].Path)
}

func TestValueMappingNonEnumContradiction(t *testing.T) {
	mod := readableModule()
	mod.PLC = &config.ModuleToolingConfig{
		Value: &config.ValueToolingConfig{
			EnumTag:       "Mod.Mode",
			EnumMemberMap: map[string]string{"off": "MODE_OFF"},
		},
	}

	findings := rulePLCValueMappingByType(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 2)
	require.Equal(t, "R-PLC-030", findings[0].RuleID)
	require.Contains(t, findings[0].Message, "type 'double'")
	require.Equal(t, "R-PLC-031", findings[1].RuleID)
}

func TestTargetMappingEnumWithWriteStmt(t *testing.T) {
	mod := drivableModule()
	mod.Accessibles["target"].DataInfo = config.DataInfo{
		Type:    "enum",
		Members: &config.Members{Kind: config.MembersEnum, Enum: map[string]int64{"off": 0, "on": 1}},
	}
	mod.PLC = &config.ModuleToolingConfig{
		Target: &config.TargetToolingConfig{WriteStmt: "Out := v;"},
	}

	findings := rulePLCTargetMappingByType(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 2)
	require.Equal(t, "R-PLC-032", findings[0].RuleID)
	require.Equal(t, SeverityError, findings[0].Severity)
	require.Equal(t, "$.modules.m.x-plc.target.write_stmt", findings[0].Path)
	require.Equal(t, "R-PLC-033", findings[1].RuleID)
	require.Equal(t, SeverityWarning, findings[1].Severity)
	require.Equal(t, "$.modules.m.x-plc.target.enum_tag", findings[1].Path)
}

func TestTargetMappingEnumRejectsTolerance(t *testing.T) {
	mod := drivableModule()
	mod.Accessibles["target"].DataInfo = config.DataInfo{
		Type:    "enum",
		Members: &config.Members{Kind: config.MembersEnum, Enum: map[string]int64{"off": 0, "on": 1}},
	}
	mod.PLC = &config.ModuleToolingConfig{
		Target: &config.TargetToolingConfig{
			EnumTag:           "Mod.Mode",
			ReachAbsTolerance: dec("0.5"),
		},
	}

	findings := rulePLCTargetMappingByType(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 1)
	require.Equal(t, "R-PLC-032", findings[0].RuleID)
	require.Equal(t, "$.modules.m.x-plc.target.reach_abs_tolerance", findings[0].Path)
}

func TestTargetMappingNonEnumWithEnumTag(t *testing.T) {
	mod := drivableModule()
	mod.PLC = &config.ModuleToolingConfig{
		Target: &config.TargetToolingConfig{EnumTag: "Mod.Mode"},
	}

	findings := rulePLCTargetMappingByType(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 2)
	require.Equal(t, "R-PLC-032", findings[0].RuleID)
	require.Contains(t, findings[0].Message, "type 'double'")
	require.Equal(t, "R-PLC-033", findings[1].RuleID)
	require.Equal(t, "$.modules.m.x-plc.target.write_stmt", findings[1].Path)
}

func TestClearErrorsStatementOptional(t *testing.T) {
	mod := readableModule()
	mod.Accessibles["clear_errors"] = &config.Accessible{
		Description: "clear",
		DataInfo:    config.DataInfo{Type: "command"},
	}

	findings := rulePLCClearErrorsStmtOptional(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 1)
	require.Equal(t, "R-PLC-040", findings[0].RuleID)
	require.Equal(t, SeverityWarning, findings[0].Severity)
	require.Equal(t, "$.modules.m.x-plc.clear_errors", findings[0].Path)

	mod.PLC = &config.ModuleToolingConfig{ClearErrors: &config.ClearErrorsToolingConfig{}}
	findings = rulePLCClearErrorsStmtOptional(nodeWith(map[string]*config.Module{"m": mod}))
	require.Len(t, findings, 1)
	require.Equal(t, "$.modules.m.x-plc.clear_errors.cmd_stmt", findings[0].Path)

	mod.PLC.ClearErrors.CmdStmt = "Mod.Reset := TRUE;"
	require.Empty(t, rulePLCClearErrorsStmtOptional(nodeWith(map[string]*config.Module{"m": mod})))
}
