package rules

import (
	"fmt"
	"sort"
	"strings"

	"secnode_validator/internal/config"
)

// ruleNonEmptyModules: a node without modules is structurally valid but
// useless, so this is a catalog concern rather than a schema one.
func ruleNonEmptyModules(cfg *config.SecNode) []Finding {
	if len(cfg.Modules) > 0 {
		return nil
	}
	return []Finding{{
		RuleID:   "R-NODE-001",
		Severity: SeverityError,
		Path:     "$.modules",
		Message:  "Node must contain at least one module",
	}}
}

// ruleInterfaceClassesSingle: exactly one interface class per module. The
// lattice makes more than one redundant: Readable is implicit in Writable
// and Writable is implicit in Drivable.
func ruleInterfaceClassesSingle(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		classes := mod.InterfaceClasses

		if len(classes) != 1 {
			findings = append(findings, Finding{
				RuleID:   "R-MOD-001",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.interface_classes", modName),
				Message:  "interface_classes must be a list with exactly one element",
				Hint: "Use exactly one of: ['Readable'], ['Writable'], or ['Drivable']. " +
					"Readable is implicit in Writable, and Writable is implicit in Drivable.",
			})
			continue
		}

		if cls := classes[0]; !knownInterfaceClass(cls) {
			findings = append(findings, Finding{
				RuleID:   "R-MOD-001",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.interface_classes", modName),
				Message:  fmt.Sprintf("Invalid interface class '%s'", cls),
				Hint: "Allowed values are: Readable, Writable, Drivable. " +
					"Readable is implicit in Writable, and Writable is implicit in Drivable.",
			})
		}
	}

	return findings
}

// ruleFeaturesAndOffsetUnsupported: the controller target implements no
// protocol features, HasOffset included, and no offset accessible either.
func ruleFeaturesAndOffsetUnsupported(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]

		var unknown []string
		hasOffsetFeature := false
		for _, feat := range mod.Features {
			if feat == "HasOffset" {
				hasOffsetFeature = true
			} else {
				unknown = append(unknown, feat)
			}
		}

		if len(unknown) > 0 {
			findings = append(findings, Finding{
				RuleID:   "R-MOD-002",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.features", modName),
				Message:  "Unsupported feature(s) in module.features (not implemented on this PLC SEC node).",
				Hint: fmt.Sprintf(
					"Only supported protocol feature name is 'HasOffset' (but PLC does not implement it). Unknown: %s",
					strings.Join(unknown, ", ")),
			})
		}

		if hasOffsetFeature {
			findings = append(findings, Finding{
				RuleID:   "R-MOD-002",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.features", modName),
				Message:  "features includes 'HasOffset', but this PLC SEC node does not implement HasOffset.",
				Hint:     "For PLC nodes, offset/scaling/format conversions should be handled directly in PLC logic; provide the final scaled value via 'value'.",
			})
		}

		if _, ok := mod.Accessibles["offset"]; ok {
			findings = append(findings, Finding{
				RuleID:   "R-MOD-002",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.accessibles.offset", modName),
				Message:  "Module defines 'offset', but this PLC SEC node does not implement the offset accessible.",
				Hint:     "For PLC nodes, apply offsets in PLC logic and expose only the final scaled value via 'value'.",
			})
		}
	}

	return findings
}

// ruleRequiredAccessibles: the accessibles each interface class demands.
// Readable needs value/status/pollinterval, Writable adds target, Drivable
// adds stop.
func ruleRequiredAccessibles(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]

		if isReadable(mod) {
			var missing []string
			for _, name := range []string{"value", "status", "pollinterval"} {
				if _, ok := mod.Accessibles[name]; !ok {
					missing = append(missing, name)
				}
			}
			if len(missing) > 0 {
				findings = append(findings, Finding{
					RuleID:   "R-CLS-001",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.accessibles", modName),
					Message:  "Readable modules must define value/status/pollinterval",
					Hint:     fmt.Sprintf("Missing: %s", strings.Join(missing, ", ")),
				})
			}
		}

		if isWritable(mod) {
			if _, ok := mod.Accessibles["target"]; !ok {
				findings = append(findings, Finding{
					RuleID:   "R-CLS-002",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.accessibles.target", modName),
					Message:  "Writable/Drivable modules must define target",
				})
			}
		}

		if isDrivable(mod) {
			if _, ok := mod.Accessibles["stop"]; !ok {
				findings = append(findings, Finding{
					RuleID:   "R-CLS-003",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.accessibles.stop", modName),
					Message:  "Drivable modules must define stop command",
				})
			}
		}
	}

	return findings
}

var allowedAccessiblesByClass = map[string]map[string]struct{}{
	"Readable": {
		"value": {}, "status": {}, "pollinterval": {}, "clear_errors": {},
	},
	"Writable": {
		"value": {}, "status": {}, "pollinterval": {}, "clear_errors": {},
		"target": {}, "target_limits": {},
	},
	"Drivable": {
		"value": {}, "status": {}, "pollinterval": {}, "clear_errors": {},
		"target": {}, "target_limits": {}, "stop": {},
	},
}

// ruleForbiddenAccessiblesByClass: standard accessibles outside the class
// allow-list are rejected. Underscore-prefixed names are customised
// accessibles and always pass.
func ruleForbiddenAccessiblesByClass(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]

		// The single-class invariant is R-MOD-001's job; with a broken class
		// list the allow-list is simply empty here.
		cls := ""
		if len(mod.InterfaceClasses) > 0 {
			cls = mod.InterfaceClasses[0]
		}
		allowed := allowedAccessiblesByClass[cls]

		for _, accName := range sortedAccessibleNames(mod) {
			if strings.HasPrefix(accName, "_") {
				continue
			}
			if _, ok := allowed[accName]; !ok {
				findings = append(findings, Finding{
					RuleID:   "R-CLS-004",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.accessibles.%s", modName, accName),
					Message:  fmt.Sprintf("Accessible '%s' is not allowed for interface class '%s'", accName, cls),
					Hint: "Supported non-customised accessibles are: " +
						"Readable: value, status, pollinterval, clear_errors; " +
						"Writable: Readable + target, target_limits; " +
						"Drivable: Writable + stop.",
				})
			}
		}
	}

	return findings
}

var allowedStatusKeys = map[string]struct{}{
	"DISABLED": {}, "IDLE": {}, "WARN": {}, "BUSY": {}, "ERROR": {},
}

// ruleStatusStructureAndCodes checks the status accessible as one pass per
// module: tuple(enum, string) structure, the fixed protocol codes, BUSY
// presence tied to Drivable, DISABLED pinned to 0 and a warning for enum
// members the generator will ignore. Structural failures stop the per-module
// pass early since the code checks would be meaningless.
func ruleStatusStructureAndCodes(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		status, ok := mod.Accessibles["status"]
		if !ok {
			continue
		}
		di := status.DataInfo

		if di.Type != "tuple" {
			findings = append(findings, Finding{
				RuleID:   "R-STAT-001",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.accessibles.status.datainfo.type", modName),
				Message:  "status must be datainfo.type == 'tuple'",
			})
			continue
		}

		membersPath := fmt.Sprintf("$.modules.%s.accessibles.status.datainfo.members", modName)
		if di.Members == nil || di.Members.Kind != config.MembersTuple || len(di.Members.Tuple) != 2 {
			findings = append(findings, Finding{
				RuleID:   "R-STAT-001",
				Severity: SeverityError,
				Path:     membersPath,
				Message:  "status must be tuple(enum,string) with exactly 2 members, as defined by the protocol",
			})
			continue
		}

		member0 := di.Members.Tuple[0]
		member1 := di.Members.Tuple[1]

		if member0 == nil || member0.Type != "enum" {
			findings = append(findings, Finding{
				RuleID:   "R-STAT-001",
				Severity: SeverityError,
				Path:     membersPath + "[0]",
				Message:  "status.members[0] must be an enum definition",
			})
			continue
		}

		if member1 == nil || member1.Type != "string" {
			findings = append(findings, Finding{
				RuleID:   "R-STAT-001",
				Severity: SeverityError,
				Path:     membersPath + "[1]",
				Message:  "status.members[1] must be a string definition",
			})
			continue
		}

		codesPath := membersPath + "[0].members"
		if member0.Members == nil || member0.Members.Kind != config.MembersEnum {
			findings = append(findings, Finding{
				RuleID:   "R-STAT-001",
				Severity: SeverityError,
				Path:     codesPath,
				Message:  "status enum members must be a dictionary",
			})
			continue
		}
		enumMembers := member0.Members.Enum

		type expected struct {
			key  string
			code int64
		}
		expectedCodes := []expected{{"IDLE", 100}, {"WARN", 200}, {"ERROR", 400}}
		if isDrivable(mod) {
			expectedCodes = append(expectedCodes, expected{"BUSY", 300})
		}

		for _, want := range expectedCodes {
			ruleID := "R-STAT-002"
			if want.key == "BUSY" {
				ruleID = "R-STAT-003"
			}

			actual, present := enumMembers[want.key]
			if !present {
				findings = append(findings, Finding{
					RuleID:   ruleID,
					Severity: SeverityError,
					Path:     codesPath,
					Message:  fmt.Sprintf("%s:%d is required", want.key, want.code),
				})
				continue
			}
			if actual != want.code {
				findings = append(findings, Finding{
					RuleID:   ruleID,
					Severity: SeverityError,
					Path:     codesPath,
					Message:  fmt.Sprintf("Wrong status code for '%s': expected %d, got %d", want.key, want.code, actual),
					Hint:     "Status codes are fixed by the SECoP protocol.",
				})
			}
		}

		if _, present := enumMembers["BUSY"]; present && !isDrivable(mod) {
			findings = append(findings, Finding{
				RuleID:   "R-STAT-003",
				Severity: SeverityError,
				Path:     codesPath,
				Message:  "BUSY is forbidden for non-Drivable modules",
			})
		}

		if code, present := enumMembers["DISABLED"]; present && code != 0 {
			findings = append(findings, Finding{
				RuleID:   "R-STAT-004",
				Severity: SeverityError,
				Path:     codesPath,
				Message:  fmt.Sprintf("Wrong status code for 'DISABLED': expected 0, got %d", code),
				Hint:     "DISABLED status code is fixed by the SECoP protocol.",
			})
		}

		var extraKeys []string
		for key := range enumMembers {
			if _, known := allowedStatusKeys[key]; !known {
				extraKeys = append(extraKeys, key)
			}
		}
		if len(extraKeys) > 0 {
			sort.Strings(extraKeys)
			findings = append(findings, Finding{
				RuleID:   "R-STAT-005",
				Severity: SeverityWarning,
				Path:     codesPath,
				Message: fmt.Sprintf(
					"Status enum contains unsupported members for current PLC SEC node version; "+
						"they will be ignored by the generator. Extra: %s",
					strings.Join(extraKeys, ", ")),
			})
		}
	}

	return findings
}

// ruleCustomCommandAccessiblesWarn: customised commands are legal but the
// generator only emits placeholders for them.
func ruleCustomCommandAccessiblesWarn(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		for _, accName := range sortedAccessibleNames(mod) {
			acc := mod.Accessibles[accName]
			if strings.HasPrefix(accName, "_") && acc.DataInfo.Type == "command" {
				findings = append(findings, Finding{
					RuleID:   "R-ACC-001",
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("$.modules.%s.accessibles.%s", modName, accName),
					Message: fmt.Sprintf(
						"Custom command accessible '%s' is not generated automatically; "+
							"the generator will emit placeholders and the developer must implement it manually.", accName),
					Hint: "Implement the command behaviour manually in the PLC project (or follow the demo patterns).",
				})
			}
		}
	}

	return findings
}

// ruleAccessibleMembersByType: the members variant must match the declared
// datatype. Enums carry a mapping, tuples a list and arrays an element
// descriptor.
func ruleAccessibleMembersByType(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		for _, accName := range sortedAccessibleNames(mod) {
			di := mod.Accessibles[accName].DataInfo
			path := fmt.Sprintf("$.modules.%s.accessibles.%s.datainfo.members", modName, accName)

			switch di.Type {
			case "enum":
				if di.Members == nil || di.Members.Kind != config.MembersEnum {
					findings = append(findings, Finding{
						RuleID:   "R-ACC-002",
						Severity: SeverityError,
						Path:     path,
						Message:  "Invalid datainfo.members for type 'enum' (must be a dict).",
					})
				}
			case "tuple":
				if di.Members == nil || di.Members.Kind != config.MembersTuple {
					findings = append(findings, Finding{
						RuleID:   "R-ACC-002",
						Severity: SeverityError,
						Path:     path,
						Message:  "Invalid datainfo.members for type 'tuple' (must be a list).",
					})
				}
			case "array":
				if di.Members == nil || di.Members.Kind == config.MembersTuple {
					findings = append(findings, Finding{
						RuleID:   "R-ACC-002",
						Severity: SeverityError,
						Path:     path,
						Message:  "Invalid datainfo.members for type 'array' (must be an object/dict).",
					})
				}
			}
		}
	}

	return findings
}

// ruleNumericRangesCoherent: when both bounds are given, min must stay
// strictly below max.
func ruleNumericRangesCoherent(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		for _, accName := range sortedAccessibleNames(mod) {
			di := mod.Accessibles[accName].DataInfo
			if di.Min != nil && di.Max != nil && di.Min.Cmp(*di.Max) >= 0 {
				findings = append(findings, Finding{
					RuleID:   "R-ACC-003",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.accessibles.%s.datainfo", modName, accName),
					Message:  "Invalid numeric range: min must be < max.",
				})
			}
		}
	}

	return findings
}

// ruleTargetLimitsWithinTarget: target_limits narrows target, never widens
// it. Only bounds both sides declare are compared.
func ruleTargetLimitsWithinTarget(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]

		target, okTarget := mod.Accessibles["target"]
		limits, okLimits := mod.Accessibles["target_limits"]
		if !okTarget || !okLimits {
			continue
		}

		targetDI := target.DataInfo
		limitsDI := limits.DataInfo
		path := fmt.Sprintf("$.modules.%s.accessibles.target_limits.datainfo", modName)

		if targetDI.Min != nil && limitsDI.Min != nil && limitsDI.Min.Cmp(*targetDI.Min) < 0 {
			findings = append(findings, Finding{
				RuleID:   "R-ACC-004",
				Severity: SeverityError,
				Path:     path,
				Message:  "target_limits.min must be >= target.min (target_limits restricts target).",
			})
		}

		if targetDI.Max != nil && limitsDI.Max != nil && limitsDI.Max.Cmp(*targetDI.Max) > 0 {
			findings = append(findings, Finding{
				RuleID:   "R-ACC-004",
				Severity: SeverityError,
				Path:     path,
				Message:  "target_limits.max must be <= target.max (target_limits restricts target).",
			})
		}
	}

	return findings
}

// ruleStringRequiresMaxChars: controller strings have a fixed declared
// length, so 'string' without a positive maxchars cannot be generated.
func ruleStringRequiresMaxChars(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		for _, accName := range sortedAccessibleNames(mod) {
			di := mod.Accessibles[accName].DataInfo
			if di.Type != "string" {
				continue
			}
			if di.MaxChars == nil || *di.MaxChars <= 0 {
				findings = append(findings, Finding{
					RuleID:   "R-ACC-005",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.accessibles.%s.datainfo.maxchars", modName, accName),
					Message:  "datainfo.maxchars is required (>0) when datainfo.type == 'string'.",
					Hint:     "Set maxchars so the generator can declare a PLC STRING with a fixed length.",
				})
			}
		}
	}

	return findings
}

// ruleArrayRequiresMaxLen: same constraint for arrays, which need a fixed
// declared length on the controller.
func ruleArrayRequiresMaxLen(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		for _, accName := range sortedAccessibleNames(mod) {
			di := mod.Accessibles[accName].DataInfo
			if di.Type != "array" {
				continue
			}
			if di.MaxLen == nil || *di.MaxLen <= 0 {
				findings = append(findings, Finding{
					RuleID:   "R-ACC-006",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.accessibles.%s.datainfo.maxlen", modName, accName),
					Message:  "datainfo.maxlen is required (>0) when datainfo.type == 'array'.",
					Hint:     "Set maxlen so the generator can declare a PLC ARRAY with a fixed length.",
				})
			}
		}
	}

	return findings
}

// ruleStandardAccessibleReadonlyPolicy: value and status are read-only,
// target is writable. Fixed by the protocol semantics of the three names.
func ruleStandardAccessibleReadonlyPolicy(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]

		if acc, ok := mod.Accessibles["value"]; ok && !acc.ReadOnly {
			findings = append(findings, Finding{
				RuleID:   "R-ACC-007",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.accessibles.value.readonly", modName),
				Message:  "Accessible 'value' must have readonly=true.",
			})
		}

		if acc, ok := mod.Accessibles["status"]; ok && !acc.ReadOnly {
			findings = append(findings, Finding{
				RuleID:   "R-ACC-007",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.accessibles.status.readonly", modName),
				Message:  "Accessible 'status' must have readonly=true.",
			})
		}

		if acc, ok := mod.Accessibles["target"]; ok && acc.ReadOnly {
			findings = append(findings, Finding{
				RuleID:   "R-ACC-007",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.accessibles.target.readonly", modName),
				Message:  "Accessible 'target' must have readonly=false.",
			})
		}
	}

	return findings
}

// ruleTargetTypeMatchesValue: in Writable and Drivable modules, target and
// the optional target_limits must carry the same datatype as value.
func ruleTargetTypeMatchesValue(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		if !isWritable(mod) {
			continue
		}

		value, okValue := mod.Accessibles["value"]
		target, okTarget := mod.Accessibles["target"]
		if !okValue || !okTarget {
			// missing required accessibles are R-CLS-002's concern
			continue
		}

		valueType := strings.TrimSpace(value.DataInfo.Type)
		targetType := strings.TrimSpace(target.DataInfo.Type)

		if targetType != valueType {
			findings = append(findings, Finding{
				RuleID:   "R-ACC-008",
				Severity: SeverityError,
				Path:     fmt.Sprintf("$.modules.%s.accessibles.target.datainfo.type", modName),
				Message:  "target.datainfo.type must match value.datainfo.type",
				Hint:     fmt.Sprintf("value.type='%s', target.type='%s'", valueType, targetType),
			})
		}

		if limits, ok := mod.Accessibles["target_limits"]; ok {
			limitsType := strings.TrimSpace(limits.DataInfo.Type)
			if limitsType != valueType {
				findings = append(findings, Finding{
					RuleID:   "R-ACC-008",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.accessibles.target_limits.datainfo.type", modName),
					Message:  "target_limits.datainfo.type must match value.datainfo.type",
					Hint:     fmt.Sprintf("value.type='%s', target_limits.type='%s'", valueType, limitsType),
				})
			}
		}
	}

	return findings
}

// ruleCheckableRequiresManual: checkable accessibles get placeholder code
// only, the check logic itself is written by hand.
func ruleCheckableRequiresManual(cfg *config.SecNode) []Finding {
	var findings []Finding

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		for _, accName := range sortedAccessibleNames(mod) {
			acc := mod.Accessibles[accName]
			if acc.Checkable != nil && *acc.Checkable {
				findings = append(findings, Finding{
					RuleID:   "R-ACC-009",
					Severity: SeverityWarning,
					Path:     fmt.Sprintf("$.modules.%s.accessibles.%s.checkable", modName, accName),
					Message:  "checkable=true requires manual PLC implementation (generator will emit placeholders)",
					Category: "implementation",
					PLCRefs:  []string{fmt.Sprintf("ST_Module_%s", modName)},
				})
			}
		}
	}

	return findings
}

// ruleCommandDataInfoShape: a command descriptor carries at most 'argument'
// and 'result', and both must name a type the generator supports.
func ruleCommandDataInfoShape(cfg *config.SecNode) []Finding {
	var findings []Finding

	allowedSorted := strings.Join(supportedTypes(), ", ")

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		for _, accName := range sortedAccessibleNames(mod) {
			di := mod.Accessibles[accName].DataInfo
			if strings.TrimSpace(di.Type) != "command" {
				continue
			}

			if di.Unit != "" || di.Min != nil || di.Max != nil ||
				di.MaxChars != nil || di.MaxLen != nil || di.Members != nil {
				findings = append(findings, Finding{
					RuleID:   "R-ACC-010",
					Severity: SeverityError,
					Path:     fmt.Sprintf("$.modules.%s.accessibles.%s.datainfo", modName, accName),
					Message:  "Invalid command datainfo: only 'argument' and/or 'result' are allowed as optional fields.",
				})
			}

			for _, sub := range []struct {
				name string
				di   *config.DataInfo
			}{
				{"argument", di.Argument},
				{"result", di.Result},
			} {
				if sub.di == nil {
					continue
				}

				subType := strings.TrimSpace(sub.di.Type)
				path := fmt.Sprintf("$.modules.%s.accessibles.%s.datainfo.%s.type", modName, accName, sub.name)

				if subType == "" {
					findings = append(findings, Finding{
						RuleID:   "R-ACC-010",
						Severity: SeverityError,
						Path:     path,
						Message:  fmt.Sprintf("Invalid command datainfo: '%s' must define 'type'.", sub.name),
					})
					continue
				}

				if !isSupportedType(subType) {
					findings = append(findings, Finding{
						RuleID:   "R-ACC-010",
						Severity: SeverityError,
						Path:     path,
						Message:  fmt.Sprintf("Invalid command datainfo: '%s.type' is not supported on this PLC SEC node.", sub.name),
						Hint:     fmt.Sprintf("Allowed types (this generator): %s", allowedSorted),
					})
				}
			}
		}
	}

	return findings
}

// ruleDataInfoTypeSupported: the declared datatype must exist in the
// protocol and be implemented by the generator.
func ruleDataInfoTypeSupported(cfg *config.SecNode) []Finding {
	var findings []Finding

	allowedSorted := strings.Join(supportedTypes(), ", ")

	for _, modName := range sortedModuleNames(cfg) {
		mod := cfg.Modules[modName]
		for _, accName := range sortedAccessibleNames(mod) {
			t := strings.TrimSpace(mod.Accessibles[accName].DataInfo.Type)
			path := fmt.Sprintf("$.modules.%s.accessibles.%s.datainfo.type", modName, accName)

			if _, unsupported := unsupportedTypes[t]; unsupported {
				findings = append(findings, Finding{
					RuleID:   "R-DI-001",
					Severity: SeverityError,
					Path:     path,
					Message:  "type not required/supported on current sec node plc version",
					Hint:     fmt.Sprintf("Allowed types (this generator): %s", allowedSorted),
				})
				continue
			}

			if _, known := protocolTypes[t]; !known {
				findings = append(findings, Finding{
					RuleID:   "R-DI-001",
					Severity: SeverityError,
					Path:     path,
					Message:  fmt.Sprintf("datainfo.type '%s' is not defined by the SECoP protocol", t),
					Hint:     fmt.Sprintf("Allowed types (this generator): %s", allowedSorted),
				})
			}
		}
	}

	return findings
}
