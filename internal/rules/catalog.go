package rules

// Catalog returns the full rule set in its canonical run order. The order
// is part of the output contract: reports list findings in catalog order
// and consumers diff reports across runs.
func Catalog() []Rule {
	return []Rule{
		{Name: "non_empty_modules", Check: ruleNonEmptyModules},
		{Name: "interface_classes_single", Check: ruleInterfaceClassesSingle},
		{Name: "features_and_offset_unsupported", Check: ruleFeaturesAndOffsetUnsupported},
		{Name: "required_accessibles", Check: ruleRequiredAccessibles},
		{Name: "forbidden_accessibles_by_class", Check: ruleForbiddenAccessiblesByClass},
		{Name: "custom_command_accessibles", Check: ruleCustomCommandAccessiblesWarn},
		{Name: "accessible_members_by_type", Check: ruleAccessibleMembersByType},
		{Name: "numeric_ranges_coherent", Check: ruleNumericRangesCoherent},
		{Name: "target_limits_within_target", Check: ruleTargetLimitsWithinTarget},
		{Name: "string_requires_maxchars", Check: ruleStringRequiresMaxChars},
		{Name: "array_requires_maxlen", Check: ruleArrayRequiresMaxLen},
		{Name: "standard_accessible_readonly_policy", Check: ruleStandardAccessibleReadonlyPolicy},
		{Name: "target_type_matches_value", Check: ruleTargetTypeMatchesValue},
		{Name: "checkable_requires_manual", Check: ruleCheckableRequiresManual},
		{Name: "command_datainfo_shape", Check: ruleCommandDataInfoShape},
		{Name: "datainfo_type_supported", Check: ruleDataInfoTypeSupported},
		{Name: "status_structure_and_codes", Check: ruleStatusStructureAndCodes},

		{Name: "plc_keys_exist_in_accessibles", Check: rulePLCKeysExistInAccessibles},
		{Name: "plc_node_fields_configured", Check: rulePLCNodeFieldsConfigured},
		{Name: "plc_module_timestamp_configured", Check: rulePLCModuleTimestampConfigured},
		{Name: "plc_status_hw_error_configured", Check: rulePLCStatusHWErrorConfigured},
		{Name: "plc_status_disabled_coherent", Check: rulePLCStatusDisabledCoherent},
		{Name: "plc_target_change_possible_configured", Check: rulePLCTargetChangePossibleConfigured},
		{Name: "plc_target_reach_fields", Check: rulePLCTargetReachFields},
		{Name: "plc_value_mapping_by_type", Check: rulePLCValueMappingByType},
		{Name: "plc_target_mapping_by_type", Check: rulePLCTargetMappingByType},
		{Name: "plc_clear_errors_stmt_optional", Check: rulePLCClearErrorsStmtOptional},
	}
}
