// Package registry turns .proto source files into the same descriptor model
// a compiled FileDescriptorSet decodes to, so generation can run without a
// schema compiler in the loop.
package registry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	protoparser "github.com/yoheimuta/go-protoparser/v4"
	protoparserparser "github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/sysfce2/protogen/descriptor"
)

// Registry holds the symbol table built from a parsed .proto file. Names are
// registered in a first pass and field references resolved in a second, so
// declaration order inside the file does not matter.
type Registry struct {
	packageName string
	messages    map[string]struct{} // qualified message names
	enums       map[string]struct{} // qualified enum names
}

func NewRegistry() *Registry {
	return &Registry{
		messages: make(map[string]struct{}),
		enums:    make(map[string]struct{}),
	}
}

// LoadProtoFile parses one .proto file and builds the equivalent
// FileDescriptorSet.
func (r *Registry) LoadProtoFile(protoPath string) (*descriptor.FileDescriptorSet, error) {
	if !strings.HasSuffix(protoPath, ".proto") {
		return nil, fmt.Errorf("file %s is not a .proto file", protoPath)
	}

	f, err := os.Open(protoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open proto file: %w", err)
	}
	defer f.Close()

	return r.LoadReader(filepath.Base(protoPath), f)
}

// LoadReader parses .proto source from rd and builds the equivalent
// FileDescriptorSet. name is recorded as the descriptor file name.
func (r *Registry) LoadReader(name string, rd io.Reader) (*descriptor.FileDescriptorSet, error) {
	parsed, err := protoparser.Parse(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proto source %s: %w", name, err)
	}

	file := descriptor.FileDescriptorProto{
		Name:    name,
		HasName: true,
	}

	var topMessages []*protoparserparser.Message
	for _, body := range parsed.ProtoBody {
		switch b := body.(type) {
		case *protoparserparser.Package:
			file.Package = b.Name
			file.HasPackage = true
			r.packageName = b.Name
		case *protoparserparser.Message:
			topMessages = append(topMessages, b)
		case *protoparserparser.Enum:
			r.registerEnum(r.packageName, b)
		}
	}

	// Pass 1: register all message and enum names, nested included.
	for _, msg := range topMessages {
		r.registerNames(r.qualify(r.packageName, ""), msg)
	}

	// Pass 2: build definitions, resolving field type references.
	for _, msg := range topMessages {
		built, err := r.buildMessage(r.qualify(r.packageName, ""), msg)
		if err != nil {
			return nil, err
		}
		file.MessageType = append(file.MessageType, built)
	}

	return &descriptor.FileDescriptorSet{File: []descriptor.FileDescriptorProto{file}}, nil
}

// registerNames registers a message and everything declared inside it.
func (r *Registry) registerNames(prefix string, msg *protoparserparser.Message) {
	fullName := r.qualify(prefix, msg.MessageName)
	r.messages[fullName] = struct{}{}

	for _, body := range msg.MessageBody {
		switch b := body.(type) {
		case *protoparserparser.Message:
			r.registerNames(fullName, b)
		case *protoparserparser.Enum:
			r.registerEnum(fullName, b)
		}
	}
}

func (r *Registry) registerEnum(prefix string, enum *protoparserparser.Enum) {
	r.enums[r.qualify(prefix, enum.EnumName)] = struct{}{}
}

func (r *Registry) qualify(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "." + name
	}
}

// buildMessage builds one DescriptorProto. scope is the qualified name of the
// enclosing declaration ("" at file level with no package).
func (r *Registry) buildMessage(scope string, msg *protoparserparser.Message) (descriptor.DescriptorProto, error) {
	fullName := r.qualify(scope, msg.MessageName)
	out := descriptor.DescriptorProto{
		Name:    msg.MessageName,
		HasName: true,
	}

	for _, body := range msg.MessageBody {
		switch b := body.(type) {
		case *protoparserparser.Field:
			field, err := r.buildField(fullName, b)
			if err != nil {
				return descriptor.DescriptorProto{}, fmt.Errorf("message %s: %w", fullName, err)
			}
			out.Field = append(out.Field, field)
		case *protoparserparser.Message:
			nested, err := r.buildMessage(fullName, b)
			if err != nil {
				return descriptor.DescriptorProto{}, err
			}
			out.NestedType = append(out.NestedType, nested)
		}
	}

	return out, nil
}

func (r *Registry) buildField(scope string, f *protoparserparser.Field) (descriptor.FieldDescriptorProto, error) {
	number, err := strconv.ParseInt(f.FieldNumber, 10, 32)
	if err != nil {
		return descriptor.FieldDescriptorProto{}, fmt.Errorf("field %s has invalid number %q", f.FieldName, f.FieldNumber)
	}

	out := descriptor.FieldDescriptorProto{
		Name:      f.FieldName,
		Number:    int32(number),
		Label:     fieldLabel(f),
		HasName:   true,
		HasNumber: true,
		HasLabel:  true,
	}

	if t, ok := scalarTypes[f.Type]; ok {
		out.Type = t
		out.HasType = true
	} else {
		resolved, kind, err := r.resolveTypeName(f.Type, scope)
		if err != nil {
			return descriptor.FieldDescriptorProto{}, err
		}
		out.Type = kind
		out.HasType = true
		out.TypeName = "." + resolved
		out.HasTypeName = true
	}

	for _, opt := range f.FieldOptions {
		if opt.OptionName == "default" {
			out.DefaultValue = strings.Trim(opt.Constant, `"`)
			out.HasDefaultValue = true
		}
	}

	return out, nil
}

func fieldLabel(f *protoparserparser.Field) descriptor.Label {
	switch {
	case f.IsRepeated:
		return descriptor.LabelRepeated
	case f.IsRequired:
		return descriptor.LabelRequired
	default:
		return descriptor.LabelOptional
	}
}

var scalarTypes = map[string]descriptor.Type{
	"double":   descriptor.TypeDouble,
	"float":    descriptor.TypeFloat,
	"int64":    descriptor.TypeInt64,
	"uint64":   descriptor.TypeUint64,
	"int32":    descriptor.TypeInt32,
	"fixed64":  descriptor.TypeFixed64,
	"fixed32":  descriptor.TypeFixed32,
	"bool":     descriptor.TypeBool,
	"string":   descriptor.TypeString,
	"bytes":    descriptor.TypeBytes,
	"uint32":   descriptor.TypeUint32,
	"sfixed32": descriptor.TypeSfixed32,
	"sfixed64": descriptor.TypeSfixed64,
	"sint32":   descriptor.TypeSint32,
	"sint64":   descriptor.TypeSint64,
}

// resolveTypeName resolves a message or enum reference the way qualified
// names scope in proto: innermost enclosing declaration outward, then the
// bare name; a leading dot means already fully qualified.
func (r *Registry) resolveTypeName(typeName, scope string) (string, descriptor.Type, error) {
	if strings.HasPrefix(typeName, ".") {
		name := strings.TrimPrefix(typeName, ".")
		if kind, ok := r.lookup(name); ok {
			return name, kind, nil
		}
		return "", 0, fmt.Errorf("unable to resolve type name: %s", typeName)
	}

	prefixSplit := strings.Split(scope, ".")
	for len(prefixSplit) > 0 && prefixSplit[0] != "" {
		candidate := strings.Join(prefixSplit, ".") + "." + typeName
		if kind, ok := r.lookup(candidate); ok {
			return candidate, kind, nil
		}
		// Omit the last element in each iteration as we go a level above to
		// the outer declaration.
		prefixSplit = prefixSplit[:len(prefixSplit)-1]
	}

	if kind, ok := r.lookup(typeName); ok {
		return typeName, kind, nil
	}
	return "", 0, fmt.Errorf("unable to resolve type name: %s", typeName)
}

func (r *Registry) lookup(qualified string) (descriptor.Type, bool) {
	if _, ok := r.messages[qualified]; ok {
		return descriptor.TypeMessage, true
	}
	if _, ok := r.enums[qualified]; ok {
		return descriptor.TypeEnum, true
	}
	return 0, false
}
