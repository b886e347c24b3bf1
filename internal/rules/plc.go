package rules

import (
	"fmt"

	"secnode_validator/internal/config"
)

// implementationWarningSuffix closes every "not configured" message. The
// downstream generator turns these findings into a developer task list.
const implementationWarningSuffix = "Manual PLC implementation will be required. Refer to generated tasks list."

// rulePLCKeysExistInAccessibles: a tooling block for an accessible the
// protocol section never declares is a contradiction, not a gap.
func rulePLCKeysExistInAccessibles(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		xplc := mod.PLC
		if xplc == nil {
			continue
		}

		present := []struct {
			key string
			set bool
		}{
			{"value", xplc.Value != nil},
			{"status", xplc.Status != nil},
			{"target", xplc.Target != nil},
			{"clear_errors", xplc.ClearErrors != nil},
		}

		for _, block := range present {
			if !block.set {
				continue
			}
			if _, ok := mod.Accessibles[block.key]; !ok {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-001",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.%s", modName, block.key),
					Message:  fmt.Sprintf("x-plc.%s is present but the SECoP accessible '%s' is missing", block.key, block.key),
					Hint: fmt.Sprintf("Either remove x-plc.%s or add '%s' under modules.%s.accessibles.",
						block.key, block.key, modName),
				})
			}
		}
	}

	return findings
}

// rulePLCNodeFieldsConfigured: the node connection settings the generated
// code needs. A missing x-plc block means none of them are configured, so
// the absence itself produces the warnings rather than suppressing them.
func rulePLCNodeFieldsConfigured(cfg *config.SecNode) []Finding {
	var findings []Finding

	xplc := cfg.PLC
	if xplc == nil {
		xplc = &config.NodeToolingConfig{}
	}

	if tcp := xplc.TCP; tcp == nil {
		findings = append(findings, Finding{
			RuleID:   "R-PLC-010",
			Severity: SeverityWarning,
			Path:     "$.x-plc.tcp",
			Message:  fmt.Sprintf("The field x-plc.tcp is not configured. %s", implementationWarningSuffix),
			Category: "implementation",
			PLCRefs:  []string{"SecopInit"},
		})
	} else {
		if isEmpty(tcp.ServerIP) {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-010",
				Severity: SeverityWarning,
				Path:     "$.x-plc.tcp.server_ip",
				Message:  fmt.Sprintf("The field x-plc.tcp.server_ip is not configured. %s", implementationWarningSuffix),
				Category: "implementation",
				PLCRefs:  []string{"SecopInit"},
			})
		}
		if tcp.ServerPort == nil {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-010",
				Severity: SeverityWarning,
				Path:     "$.x-plc.tcp.server_port",
				Message:  fmt.Sprintf("The field x-plc.tcp.server_port is not configured. %s", implementationWarningSuffix),
				Category: "implementation",
				PLCRefs:  []string{"SecopInit"},
			})
		}
		if isEmpty(tcp.InterfaceHealthyTag) {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-010",
				Severity: SeverityWarning,
				Path:     "$.x-plc.tcp.interface_healthy_tag",
				Message:  fmt.Sprintf("The field x-plc.tcp.interface_healthy_tag is not configured. %s", implementationWarningSuffix),
				Category: "implementation",
				PLCRefs:  []string{"SecopMapFromPlc"},
			})
		}
	}

	if isEmpty(xplc.SecopVersion) {
		findings = append(findings, Finding{
			RuleID:   "R-PLC-010",
			Severity: SeverityWarning,
			Path:     "$.x-plc.secop_version",
			Message:  fmt.Sprintf("The field x-plc.secop_version is not configured. %s", implementationWarningSuffix),
			Category: "implementation",
			PLCRefs:  []string{"SecopInit"},
		})
	}

	if isEmpty(xplc.PLCTimestampTag) {
		findings = append(findings, Finding{
			RuleID:   "R-PLC-010",
			Severity: SeverityWarning,
			Path:     "$.x-plc.plc_timestamp_tag",
			Message:  fmt.Sprintf("The field x-plc.plc_timestamp_tag is not configured. %s", implementationWarningSuffix),
			Category: "implementation",
			PLCRefs:  []string{"SecopMapFromPlc"},
		})
	}

	return findings
}

// rulePLCModuleTimestampConfigured: every module needs a timestamp source
// tag. Modules without any tooling block are warned too, the mapping is
// simply entirely unconfigured there.
func rulePLCModuleTimestampConfigured(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]

		timestampTag := ""
		if mod.PLC != nil {
			timestampTag = mod.PLC.TimestampTag
		}

		if isEmpty(timestampTag) {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-020",
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.timestamp_tag", modName),
				Message:  fmt.Sprintf("The field x-plc.timestamp_tag is not configured. %s", implementationWarningSuffix),
				Category: "implementation",
				PLCRefs:  []string{"SecopMapFromPlc"},
			})
		}
	}

	return findings
}

// rulePLCStatusHWErrorConfigured: once a status tooling block is opened,
// the hardware error mapping inside it should be filled in.
func rulePLCStatusHWErrorConfigured(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		if mod.PLC == nil || mod.PLC.Status == nil {
			continue
		}
		status := mod.PLC.Status

		if isEmpty(status.HwErrorExpr) {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-021",
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.status.hw_error_expr", modName),
				Message:  fmt.Sprintf("The field x-plc.status.hw_error_expr is not configured. %s", implementationWarningSuffix),
				Category: "implementation",
				PLCRefs:  []string{"SecopMapFromPlc"},
			})
		}

		if isEmpty(status.HwErrorDescription) {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-021",
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.status.hw_error_description", modName),
				Message:  fmt.Sprintf("The field x-plc.status.hw_error_description is not configured. %s", implementationWarningSuffix),
				Category: "implementation",
				PLCRefs:  []string{"SecopMapFromPlc"},
			})
		}
	}

	return findings
}

// rulePLCStatusDisabledCoherent ties the disabled mapping to the DISABLED:0
// enum member. A mapping without the member is an error, the member without
// a mapping only a warning. The asymmetry is intended: the first generates
// dead controller code, the second an unreachable but harmless state.
func rulePLCStatusDisabledCoherent(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		if mod.PLC == nil || mod.PLC.Status == nil {
			continue
		}
		status := mod.PLC.Status

		enumMembers := statusEnumMembers(mod)
		code, present := enumMembers["DISABLED"]
		hasDisabledZero := present && code == 0

		exprPresent := !isEmpty(status.DisabledExpr)
		descPresent := !isEmpty(status.DisabledDescription)

		if (exprPresent || descPresent) && !hasDisabledZero {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-022",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.status", modName),
				Message:  "x-plc.status.disabled_* is present but status enum does not contain DISABLED:0.",
				Hint:     "Add DISABLED:0 to status enum members or remove x-plc.status.disabled_* fields.",
			})
		}

		if hasDisabledZero {
			if !exprPresent {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-023",
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.status.disabled_expr", modName),
					Message: fmt.Sprintf(
						"Status enum contains DISABLED:0, but x-plc.status.disabled_expr is not configured. %s",
						implementationWarningSuffix),
					Category: "implementation",
					PLCRefs:  []string{"SecopMapFromPlc"},
				})
			}
			if !descPresent {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-023",
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.status.disabled_description", modName),
					Message: fmt.Sprintf(
						"Status enum contains DISABLED:0, but x-plc.status.disabled_description is not configured. %s",
						implementationWarningSuffix),
					Category: "implementation",
					PLCRefs:  []string{"SecopMapFromPlc"},
				})
			}
		}
	}

	return findings
}

// rulePLCTargetReachFields: the reach supervision settings belong to
// Drivable modules only. For Drivable modules with a target tooling block
// both are expected, the tolerance only for non-enum targets.
func rulePLCTargetReachFields(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		if mod.PLC == nil || mod.PLC.Target == nil {
			continue
		}
		target := mod.PLC.Target
		drivable := isDrivable(mod)

		targetType := ""
		if acc, ok := mod.Accessibles["target"]; ok {
			targetType = acc.DataInfo.Type
		}

		if target.ReachTimeoutS != nil && !drivable {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-024",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.target.reach_timeout_s", modName),
				Message:  "x-plc.target.reach_timeout_s is only allowed for Drivable modules.",
				Hint:     "Remove reach_timeout_s or change module interface_classes to Drivable.",
			})
		}

		if target.ReachAbsTolerance != nil && !drivable {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-024",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.target.reach_abs_tolerance", modName),
				Message:  "x-plc.target.reach_abs_tolerance is only allowed for Drivable modules.",
				Hint:     "Remove reach_abs_tolerance or change module interface_classes to Drivable.",
			})
		}

		if !drivable {
			continue
		}

		if target.ReachTimeoutS == nil {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-025",
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.target.reach_timeout_s", modName),
				Message:  fmt.Sprintf("The field x-plc.target.reach_timeout_s is not configured. %s", implementationWarningSuffix),
				Category: "implementation",
				PLCRefs:  []string{"SecopInit"},
			})
		}

		if targetType != "enum" && target.ReachAbsTolerance == nil {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-025",
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.target.reach_abs_tolerance", modName),
				Message:  fmt.Sprintf("The field x-plc.target.reach_abs_tolerance is not configured. %s", implementationWarningSuffix),
				Category: "implementation",
				PLCRefs:  []string{fmt.Sprintf("ST_Module_%s", modName)},
			})
		}
	}

	return findings
}

// rulePLCTargetChangePossibleConfigured: change_possible_expr gates setpoint
// acceptance in the generated code.
func rulePLCTargetChangePossibleConfigured(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		if mod.PLC == nil || mod.PLC.Target == nil {
			continue
		}

		if isEmpty(mod.PLC.Target.ChangePossibleExpr) {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-026",
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.target.change_possible_expr", modName),
				Message:  fmt.Sprintf("The field x-plc.target.change_possible_expr is not configured. %s", implementationWarningSuffix),
				Category: "implementation",
				PLCRefs:  []string{"SecopMapFromPlc"},
			})
		}
	}

	return findings
}

// rulePLCValueMappingByType: the value mapping is polymorphic. Enum values
// use enum_tag plus enum_member_map, everything else a read expression.
// Wrong-variant fields are contradictions (error), missing ones only gaps
// (warning). A module without any tooling block has an entirely missing
// mapping and is warned like one with an empty block.
func rulePLCValueMappingByType(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]

		value, ok := mod.Accessibles["value"]
		if !ok {
			continue
		}
		valueType := value.DataInfo.Type

		var vcfg *config.ValueToolingConfig
		if mod.PLC != nil {
			vcfg = mod.PLC.Value
		}

		hasReadExpr := vcfg != nil && !isEmpty(vcfg.ReadExpr)
		hasEnumTag := vcfg != nil && !isEmpty(vcfg.EnumTag)
		hasEnumMap := vcfg != nil && len(vcfg.EnumMemberMap) > 0

		if valueType == "enum" {
			if hasReadExpr {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-030",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.value.read_expr", modName),
					Message:  "Invalid x-plc.value: SECoP value is enum, so read_expr must not be defined.",
					Hint:     "Use x-plc.value.enum_tag + x-plc.value.enum_member_map for enum values.",
				})
			}
			if !hasEnumTag || !hasEnumMap {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-031",
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.value", modName),
					Message:  fmt.Sprintf("The field x-plc.value (enum mapping) is not configured. %s", implementationWarningSuffix),
					Category: "implementation",
					PLCRefs:  []string{"SecopMapFromPlc", fmt.Sprintf("ET_Module_%s", modName)},
				})
			}
		} else {
			if hasEnumTag || hasEnumMap {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-030",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.value", modName),
					Message: fmt.Sprintf(
						"Invalid x-plc.value: SECoP value is type '%s', so enum_tag/enum_member_map must not be defined.",
						valueType),
					Hint: "Use x-plc.value.read_expr for non-enum values.",
				})
			}
			if !hasReadExpr {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-031",
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.value.read_expr", modName),
					Message:  fmt.Sprintf("The field x-plc.value.read_expr is not configured. %s", implementationWarningSuffix),
					Category: "implementation",
					PLCRefs:  []string{"SecopMapFromPlc"},
				})
			}
		}
	}

	return findings
}

// rulePLCTargetMappingByType: same polymorphic split for the setpoint
// direction. Enum targets use enum_tag, everything else a write statement.
func rulePLCTargetMappingByType(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]

		target, ok := mod.Accessibles["target"]
		if !ok {
			continue
		}
		targetType := target.DataInfo.Type

		var tcfg *config.TargetToolingConfig
		if mod.PLC != nil {
			tcfg = mod.PLC.Target
		}

		hasWriteStmt := tcfg != nil && !isEmpty(tcfg.WriteStmt)
		hasEnumTag := tcfg != nil && !isEmpty(tcfg.EnumTag)

		if targetType == "enum" {
			if hasWriteStmt {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-032",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.target.write_stmt", modName),
					Message:  "Invalid x-plc.target: SECoP target is enum, so write_stmt must not be defined.",
					Hint:     "Use x-plc.target.enum_tag for enum targets.",
				})
			}
			if !hasEnumTag {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-033",
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.target.enum_tag", modName),
					Message:  fmt.Sprintf("The field x-plc.target.enum_tag is not configured. %s", implementationWarningSuffix),
					Category: "implementation",
					PLCRefs:  []string{"SecopMapToPlc"},
				})
			}
			if tcfg != nil && tcfg.ReachAbsTolerance != nil {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-032",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.target.reach_abs_tolerance", modName),
					Message:  "Invalid x-plc.target.reach_abs_tolerance: enum targets must not use reach_abs_tolerance.",
					Hint:     "Remove reach_abs_tolerance for enum targets.",
				})
			}
		} else {
			if hasEnumTag {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-032",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.target.enum_tag", modName),
					Message: fmt.Sprintf(
						"Invalid x-plc.target: SECoP target is type '%s', so enum_tag must not be defined.", targetType),
					Hint: "Use x-plc.target.write_stmt for non-enum targets.",
				})
			}
			if !hasWriteStmt {
				findings = append(findings, Finding{
					RuleID:   "R-PLC-033",
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("$.modules.%s.x-plc.target.write_stmt", modName),
					Message:  fmt.Sprintf("The field x-plc.target.write_stmt is not configured. %s", implementationWarningSuffix),
					Category: "implementation",
					PLCRefs:  []string{"SecopMapToPlc"},
				})
			}
		}
	}

	return findings
}

// rulePLCClearErrorsStmtOptional: clear_errors works without a statement,
// the generator resets the error report either way. The warning only points
// out that no extra action is attached.
func rulePLCClearErrorsStmtOptional(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		if _, ok := mod.Accessibles["clear_errors"]; !ok {
			continue
		}

		message := fmt.Sprintf(
			"Missing PLC command statement for %s.clear_errors. "+
				"The generator will clear SECoP ErrorReport only (by default). "+
				"If you would like the command to perform an extra action, write it in cmd_stmt.", modName)

		if mod.PLC == nil || mod.PLC.ClearErrors == nil {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-040",
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.clear_errors", modName),
				Message:  message,
				Category: "implementation",
				PLCRefs:  []string{"SecopMapToPlc"},
			})
			continue
		}

		if isEmpty(mod.PLC.ClearErrors.CmdStmt) {
			findings = append(findings, Finding{
				RuleID:   "R-PLC-040",
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("$.modules.%s.x-plc.clear_errors.cmd_stmt", modName),
				Message:  message,
				Category: "implementation",
				PLCRefs:  []string{"SecopMapToPlc"},
			})
		}
	}

	return findings
}
