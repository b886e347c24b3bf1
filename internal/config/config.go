package config

import (
	"github.com/shopspring/decimal"
)

func init() {
	// datainfo bounds are plain JSON numbers on the wire, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// InterfaceClass is the capability tier of a module. The tiers form a
// lattice: Drivable implies Writable implies Readable.
type InterfaceClass int

const (
	ClassUnknown InterfaceClass = iota
	ClassReadable
	ClassWritable
	ClassDrivable
)

// ParseInterfaceClass maps a protocol tag onto its capability tier.
func ParseInterfaceClass(tag string) (InterfaceClass, bool) {
	switch tag {
	case "Readable":
		return ClassReadable, true
	case "Writable":
		return ClassWritable, true
	case "Drivable":
		return ClassDrivable, true
	default:
		return ClassUnknown, false
	}
}

// Implies reports whether a module of this tier must also behave as the
// other tier. Unknown never implies anything.
func (c InterfaceClass) Implies(other InterfaceClass) bool {
	if c == ClassUnknown || other == ClassUnknown {
		return false
	}
	return c >= other
}

func (c InterfaceClass) String() string {
	switch c {
	case ClassReadable:
		return "Readable"
	case ClassWritable:
		return "Writable"
	case ClassDrivable:
		return "Drivable"
	default:
		return "Unknown"
	}
}

// DataInfo is the protocol datatype descriptor of one accessible. Which of
// the optional fields are meaningful depends on Type; the rule catalog
// checks that coherence, the shape layer only guarantees primitive shapes.
type DataInfo struct {
	Type string `json:"type"`

	Unit     string           `json:"unit,omitempty"`
	Min      *decimal.Decimal `json:"min,omitempty"`
	Max      *decimal.Decimal `json:"max,omitempty"`
	MaxChars *int             `json:"maxchars,omitempty"`
	MaxLen   *int             `json:"maxlen,omitempty"`
	Members  *Members         `json:"members,omitempty"`

	// Command datatypes may carry nested descriptors for the call
	// argument and result.
	Argument *DataInfo `json:"argument,omitempty"`
	Result   *DataInfo `json:"result,omitempty"`
}

// Accessible is one named parameter or command exposed by a module.
type Accessible struct {
	Description string   `json:"description"`
	DataInfo    DataInfo `json:"datainfo"`
	ReadOnly    bool     `json:"readonly,omitempty"`
	Checkable   *bool    `json:"checkable,omitempty"`
}

// Module is one instrument module inside the node.
type Module struct {
	InterfaceClasses []string `json:"interface_classes"`
	Features         []string `json:"features,omitempty"`

	Description    string `json:"description"`
	Implementation string `json:"implementation"`

	Accessibles map[string]*Accessible `json:"accessibles"`

	PLC *ModuleToolingConfig `json:"x-plc,omitempty"`
}

// SecNode is the root of a validated configuration document.
type SecNode struct {
	EquipmentID string `json:"equipment_id"`
	Description string `json:"description"`
	Firmware    string `json:"firmware"`

	Modules map[string]*Module `json:"modules"`

	PLC *NodeToolingConfig `json:"x-plc,omitempty"`
}

// TCPConfig holds the server settings for the generated controller project.
type TCPConfig struct {
	ServerIP            string `json:"server_ip,omitempty"`
	ServerPort          *int   `json:"server_port,omitempty"`
	InterfaceHealthyTag string `json:"interface_healthy_tag,omitempty"`
}

// NodeToolingConfig is the node-level "x-plc" block. This data is not part
// of the protocol itself; stripping it yields a pure describe document.
type NodeToolingConfig struct {
	TCP             *TCPConfig `json:"tcp,omitempty"`
	SecopVersion    string     `json:"secop_version,omitempty"`
	PLCTimestampTag string     `json:"plc_timestamp_tag,omitempty"`
}

// ValueToolingConfig maps the "value" accessible onto controller tags. For
// enum values enum_tag/enum_member_map are used, otherwise read_expr.
type ValueToolingConfig struct {
	ReadExpr      string            `json:"read_expr,omitempty"`
	EnumTag       string            `json:"enum_tag,omitempty"`
	EnumMemberMap map[string]string `json:"enum_member_map,omitempty"`
}

// StatusToolingConfig carries controller expressions for derived status
// conditions.
type StatusToolingConfig struct {
	DisabledExpr        string `json:"disabled_expr,omitempty"`
	DisabledDescription string `json:"disabled_description,omitempty"`
	HwErrorExpr         string `json:"hw_error_expr,omitempty"`
	HwErrorDescription  string `json:"hw_error_description,omitempty"`
}

// TargetToolingConfig maps the "target" write behaviour onto the controller.
type TargetToolingConfig struct {
	WriteStmt          string           `json:"write_stmt,omitempty"`
	EnumTag            string           `json:"enum_tag,omitempty"`
	ChangePossibleExpr string           `json:"change_possible_expr,omitempty"`
	ReachTimeoutS      *int             `json:"reach_timeout_s,omitempty"`
	ReachAbsTolerance  *decimal.Decimal `json:"reach_abs_tolerance,omitempty"`
}

// ClearErrorsToolingConfig configures the optional extra action of the
// clear_errors command.
type ClearErrorsToolingConfig struct {
	CmdStmt string `json:"cmd_stmt,omitempty"`
}

// ModuleToolingConfig is the module-level "x-plc" block. Each sub-block
// refers to the accessible of the same name; that reference is validated by
// the rule catalog, not structurally.
type ModuleToolingConfig struct {
	TimestampTag string `json:"timestamp_tag,omitempty"`

	Value       *ValueToolingConfig       `json:"value,omitempty"`
	Status      *StatusToolingConfig      `json:"status,omitempty"`
	Target      *TargetToolingConfig      `json:"target,omitempty"`
	ClearErrors *ClearErrorsToolingConfig `json:"clear_errors,omitempty"`
}
