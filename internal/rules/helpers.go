package rules

import (
	"sort"
	"strings"

	"secnode_validator/internal/config"
)

// protocolTypes is the datatype vocabulary defined by the protocol.
var protocolTypes = map[string]struct{}{
	"double": {}, "scaled": {}, "int": {}, "bool": {}, "enum": {}, "string": {},
	"blob": {}, "array": {}, "tuple": {}, "struct": {}, "matrix": {}, "command": {},
}

// unsupportedTypes are protocol-legal datatypes the controller target does
// not implement.
var unsupportedTypes = map[string]struct{}{
	"scaled": {}, "blob": {}, "matrix": {}, "struct": {},
}

func supportedTypes() []string {
	names := make([]string, 0, len(protocolTypes))
	for name := range protocolTypes {
		if _, unsupported := unsupportedTypes[name]; unsupported {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isSupportedType(name string) bool {
	if _, unsupported := unsupportedTypes[name]; unsupported {
		return false
	}
	_, ok := protocolTypes[name]
	return ok
}

func knownInterfaceClass(tag string) bool {
	_, ok := config.ParseInterfaceClass(tag)
	return ok
}

// moduleImplies checks every declared tag, not just the first, so the
// lattice helpers keep working (and findings stay additive) even when
// R-MOD-001 has already flagged the class list.
func moduleImplies(m *config.Module, tier config.InterfaceClass) bool {
	for _, tag := range m.InterfaceClasses {
		if cls, ok := config.ParseInterfaceClass(tag); ok && cls.Implies(tier) {
			return true
		}
	}
	return false
}

func isDrivable(m *config.Module) bool {
	return moduleImplies(m, config.ClassDrivable)
}

func isWritable(m *config.Module) bool {
	return moduleImplies(m, config.ClassWritable)
}

func isReadable(m *config.Module) bool {
	return moduleImplies(m, config.ClassReadable)
}

// sortedModuleNames fixes the visit order of the module mapping so reports
// are byte-identical across runs.
func sortedModuleNames(cfg *config.SecNode) []string {
	names := make([]string, 0, len(cfg.Modules))
	for name := range cfg.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedAccessibleNames(m *config.Module) []string {
	names := make([]string, 0, len(m.Accessibles))
	for name := range m.Accessibles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

// statusEnumMembers returns the status enum codes when the status
// accessible has the protocol shape tuple(enum, string), nil otherwise.
func statusEnumMembers(m *config.Module) map[string]int64 {
	status, ok := m.Accessibles["status"]
	if !ok || status == nil {
		return nil
	}
	di := status.DataInfo
	if di.Type != "tuple" {
		return nil
	}
	if di.Members == nil || di.Members.Kind != config.MembersTuple || len(di.Members.Tuple) != 2 {
		return nil
	}
	first := di.Members.Tuple[0]
	if first == nil || first.Type != "enum" {
		return nil
	}
	if first.Members == nil || first.Members.Kind != config.MembersEnum {
		return nil
	}
	return first.Members.Enum
}
