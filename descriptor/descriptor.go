// Package descriptor holds the subset of the compiled protobuf schema model
// (google/protobuf/descriptor.proto) that code generation consumes. The
// records and decode routines mirror what the generator itself emits; they
// are maintained by hand because the generator needs them before it can run.
package descriptor

// Label is the cardinality of a field declaration.
type Label int32

const (
	LabelOptional Label = 1
	LabelRequired Label = 2
	LabelRepeated Label = 3
)

var labelToString = map[Label]string{
	LabelOptional: "optional",
	LabelRequired: "required",
	LabelRepeated: "repeated",
}

func (l Label) String() string {
	if s, ok := labelToString[l]; ok {
		return s
	}
	return "unknown"
}

// Type is the declared scalar or composite type of a field.
type Type int32

const (
	TypeDouble   Type = 1
	TypeFloat    Type = 2
	TypeInt64    Type = 3
	TypeUint64   Type = 4
	TypeInt32    Type = 5
	TypeFixed64  Type = 6
	TypeFixed32  Type = 7
	TypeBool     Type = 8
	TypeString   Type = 9
	TypeGroup    Type = 10
	TypeMessage  Type = 11
	TypeBytes    Type = 12
	TypeUint32   Type = 13
	TypeEnum     Type = 14
	TypeSfixed32 Type = 15
	TypeSfixed64 Type = 16
	TypeSint32   Type = 17
	TypeSint64   Type = 18
)

var typeToString = map[Type]string{
	TypeDouble:   "double",
	TypeFloat:    "float",
	TypeInt64:    "int64",
	TypeUint64:   "uint64",
	TypeInt32:    "int32",
	TypeFixed64:  "fixed64",
	TypeFixed32:  "fixed32",
	TypeBool:     "bool",
	TypeString:   "string",
	TypeGroup:    "group",
	TypeMessage:  "message",
	TypeBytes:    "bytes",
	TypeUint32:   "uint32",
	TypeEnum:     "enum",
	TypeSfixed32: "sfixed32",
	TypeSfixed64: "sfixed64",
	TypeSint32:   "sint32",
	TypeSint64:   "sint64",
}

func (t Type) String() string {
	if s, ok := typeToString[t]; ok {
		return s
	}
	return "unknown"
}

// FileDescriptorSet is the top-level message of a compiled schema file.
type FileDescriptorSet struct {
	File []FileDescriptorProto
}

// FileDescriptorProto describes one .proto source file.
type FileDescriptorProto struct {
	Name        string
	Package     string
	MessageType []DescriptorProto

	HasName    bool
	HasPackage bool
}

// DescriptorProto describes one message declaration.
type DescriptorProto struct {
	Name       string
	Field      []FieldDescriptorProto
	NestedType []DescriptorProto

	HasName bool
}

// FieldDescriptorProto describes one field declaration. TypeName carries the
// leading-dot qualified name of the referenced message or enum type.
type FieldDescriptorProto struct {
	Name         string
	Number       int32
	Label        Label
	Type         Type
	TypeName     string
	DefaultValue string

	HasName         bool
	HasNumber       bool
	HasLabel        bool
	HasType         bool
	HasTypeName     bool
	HasDefaultValue bool
}
