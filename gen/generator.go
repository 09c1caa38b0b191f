package gen

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/sysfce2/protogen/descriptor"
)

// ErrEmptyDescriptorSet reports a descriptor set with no file entries.
var ErrEmptyDescriptorSet = errors.New("descriptor set contains no files")

const wireImport = "github.com/sysfce2/protogen/wire"

// Options controls the emitted source file.
type Options struct {
	PackageName string // package clause of the emitted file; "pb" when empty
	Source      string // input name recorded in the generated-file header
}

// Generator translates a decoded FileDescriptorSet into Go source that
// decodes the described messages. Only the first file of the set is
// processed; messages are emitted in declaration order, nested declarations
// flattened after their parent.
type Generator struct{}

// Generate renders the full output file. The result is buffered; nothing is
// emitted for a descriptor the generator cannot translate.
func (Generator) Generate(set *descriptor.FileDescriptorSet, opts Options) ([]byte, error) {
	if set == nil || len(set.File) == 0 {
		return nil, ErrEmptyDescriptorSet
	}
	file := &set.File[0]

	if opts.PackageName == "" {
		opts.PackageName = "pb"
	}
	source := opts.Source
	if source == "" {
		source = file.Name
	}

	messages := collectMessages(file.MessageType, nil)
	index := indexMessages(file.Package, messages)

	data := fileData{
		Source:     source,
		Package:    opts.PackageName,
		WireImport: wireImport,
	}
	for _, msg := range messages {
		data.Messages = append(data.Messages, buildMessage(msg, file.Package, index))
	}

	tmpl, err := template.New("file").Parse(fileTemplate)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type fileData struct {
	Source     string
	Package    string
	WireImport string
	Messages   []messageData
}

type messageData struct {
	Name           string
	StructLines    []string
	DefaultInits   []string
	DecodeCases    []decodeCase
	RequiredChecks []requiredCheck
}

type decodeCase struct {
	Number int32
	Expr   string
}

type requiredCheck struct {
	HasName string
	Message string
	Field   string
}

// collected pairs a message declaration with its flattened output name and
// its dot-joined proto declaration path (qualified with the package by
// indexMessages to resolve type_name references).
type collected struct {
	goName   string
	protoRel string // dot-joined declaration path, without the package
	msg      *descriptor.DescriptorProto
}

func collectMessages(msgs []descriptor.DescriptorProto, parents []string) []collected {
	var result []collected
	for i := range msgs {
		msg := &msgs[i]
		path := append(parents, msg.Name)
		result = append(result, collected{
			goName:   flattenedName(path),
			protoRel: strings.Join(path, "."),
			msg:      msg,
		})
		result = append(result, collectMessages(msg.NestedType, path)...)
	}
	return result
}

func flattenedName(parts []string) string {
	var out strings.Builder
	for _, p := range parts {
		out.WriteString(GoName(p))
	}
	return out.String()
}

func indexMessages(pkg string, messages []collected) map[string]string {
	index := make(map[string]string, len(messages))
	for _, m := range messages {
		qualified := m.protoRel
		if pkg != "" {
			qualified = pkg + "." + qualified
		}
		index[qualified] = m.goName
	}
	return index
}

func buildMessage(c collected, pkg string, index map[string]string) messageData {
	out := messageData{Name: c.goName}
	var fieldDefs, hasDefs []string

	for i := range c.msg.Field {
		field := &c.msg.Field[i]

		fieldType := baseType(field, pkg, index)
		if fieldType == "" {
			// Nothing compilable can be emitted for this declaration; leave a
			// marker instead of corrupting the record.
			fieldDefs = append(fieldDefs,
				fmt.Sprintf("// UNSUPPORTED: field %s (number %d) has type %s", field.Name, field.Number, field.Type))
			continue
		}

		goField := GoName(field.Name)
		if field.Label == descriptor.LabelRepeated {
			fieldType = "[]" + fieldType
		}
		fieldDefs = append(fieldDefs, fmt.Sprintf("%s %s", goField, fieldType))

		if field.Label != descriptor.LabelRepeated {
			hasDefs = append(hasDefs, fmt.Sprintf("Has%s bool", goField))
		}

		if field.HasDefaultValue {
			if lit := defaultLiteral(field); lit != "" {
				out.DefaultInits = append(out.DefaultInits, fmt.Sprintf("%s: %s,", goField, lit))
			}
		}

		out.DecodeCases = append(out.DecodeCases, decodeCase{
			Number: field.Number,
			Expr:   dispatchExpr(field, goField),
		})

		if field.Label == descriptor.LabelRequired {
			out.RequiredChecks = append(out.RequiredChecks, requiredCheck{
				HasName: "Has" + goField,
				Message: c.msg.Name,
				Field:   field.Name,
			})
		}
	}

	for _, line := range fieldDefs {
		out.StructLines = append(out.StructLines, "\t"+line)
	}
	if len(hasDefs) > 0 {
		if len(fieldDefs) > 0 {
			out.StructLines = append(out.StructLines, "")
		}
		for _, line := range hasDefs {
			out.StructLines = append(out.StructLines, "\t"+line)
		}
	}

	return out
}

// baseType maps a declared field type to the emitted Go scalar, or "" for a
// type the generator cannot express.
func baseType(field *descriptor.FieldDescriptorProto, pkg string, index map[string]string) string {
	switch field.Type {
	case descriptor.TypeInt32, descriptor.TypeSint32, descriptor.TypeSfixed32:
		return "int32"
	case descriptor.TypeInt64, descriptor.TypeSint64, descriptor.TypeSfixed64:
		return "int64"
	case descriptor.TypeUint32, descriptor.TypeFixed32:
		return "uint32"
	case descriptor.TypeUint64, descriptor.TypeFixed64:
		return "uint64"
	case descriptor.TypeDouble:
		return "float64"
	case descriptor.TypeFloat:
		return "float32"
	case descriptor.TypeBool:
		return "bool"
	case descriptor.TypeEnum:
		return "int32"
	case descriptor.TypeString:
		return "string"
	case descriptor.TypeBytes:
		return "[]byte"
	case descriptor.TypeMessage:
		return resolveTypeName(field.TypeName, pkg, index)
	default:
		return ""
	}
}

// resolveTypeName maps a leading-dot qualified reference to the flattened
// output name. References outside the processed file keep their flattened
// shape; the emitted identifier then names a type the caller must supply.
func resolveTypeName(typeName, pkg string, index map[string]string) string {
	name := strings.TrimPrefix(typeName, ".")
	if goName, ok := index[name]; ok {
		return goName
	}
	name = strings.TrimPrefix(name, pkg+".")
	if goName, ok := index[joinPackage(pkg, name)]; ok {
		return goName
	}
	return flattenedName(strings.Split(name, "."))
}

func joinPackage(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// domain groups declared types by the decoder entry point that parses them.
func domain(t descriptor.Type) string {
	switch t {
	case descriptor.TypeDouble, descriptor.TypeFloat:
		return "fp"
	case descriptor.TypeSint32, descriptor.TypeSint64:
		return "zigzag"
	case descriptor.TypeString, descriptor.TypeBytes:
		return "bytearray"
	case descriptor.TypeMessage:
		return "message"
	case descriptor.TypeBool:
		return "bool"
	default:
		return "integral"
	}
}

// dispatchExpr renders the decode-switch arm for one field.
func dispatchExpr(field *descriptor.FieldDescriptorProto, goField string) string {
	var helper string
	repeated := field.Label == descriptor.LabelRepeated

	switch domain(field.Type) {
	case "fp":
		helper = "ParseFloatField"
	case "zigzag":
		helper = "ParseZigzagField"
	case "bytearray":
		helper = "ParseBytesField"
	case "message":
		helper = "ParseMessageField"
	case "bool":
		helper = "ParseBoolField"
	default:
		helper = "ParseIntegralField"
	}

	var call string
	if repeated {
		call = fmt.Sprintf("wire.ParseRepeated%s(pb, wireType, &m.%s)", strings.TrimPrefix(helper, "Parse"), goField)
	} else {
		call = fmt.Sprintf("wire.%s(pb, wireType, &m.%s, &m.Has%s)", helper, goField, goField)
	}
	return fmt.Sprintf("wire.WrapField(%s, %q)", call, field.Name)
}

// defaultLiteral renders the textual default from the descriptor as a Go
// literal: quoted for string and bytes, verbatim for everything else.
func defaultLiteral(field *descriptor.FieldDescriptorProto) string {
	switch field.Type {
	case descriptor.TypeString:
		return strconv.Quote(field.DefaultValue)
	case descriptor.TypeBytes:
		return fmt.Sprintf("[]byte(%s)", strconv.Quote(field.DefaultValue))
	default:
		return field.DefaultValue
	}
}

const fileTemplate = `// Code generated by protogen from {{.Source}}. DO NOT EDIT.

package {{.Package}}
{{- if .Messages}}

import (
	"{{.WireImport}}"
)
{{- end}}
{{range .Messages}}
type {{.Name}} struct {
{{- range .StructLines}}
{{.}}
{{- end}}
}

// New{{.Name}} returns a {{.Name}} with declared defaults applied.
func New{{.Name}}() *{{.Name}} {
{{- if .DefaultInits}}
	return &{{.Name}}{
{{- range .DefaultInits}}
		{{.}}
{{- end}}
	}
{{- else}}
	return &{{.Name}}{}
{{- end}}
}

func (m *{{.Name}}) Decode(pb *wire.Decoder) error {
	for {
		fieldNumber, wireType, ok, err := pb.NextField()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch fieldNumber {
{{- range .DecodeCases}}
		case {{.Number}}:
			err = {{.Expr}}
{{- end}}
		default:
			err = pb.Skip(wireType)
		}
		if err != nil {
			return err
		}
	}
{{- range .RequiredChecks}}
	if !m.{{.HasName}} {
		return &wire.MissingRequiredError{Message: {{printf "%q" .Message}}, Field: {{printf "%q" .Field}}}
	}
{{- end}}
	return nil
}

// Decode{{.Name}} decodes one {{.Name}} from protobuf wire data.
func Decode{{.Name}}(data []byte) (*{{.Name}}, error) {
	m := New{{.Name}}()
	if err := m.Decode(wire.NewDecoder(data)); err != nil {
		return nil, err
	}
	return m, nil
}
{{end -}}
`
