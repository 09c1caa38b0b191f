package descriptor

import (
	"github.com/sysfce2/protogen/wire"
)

// DecodeFileDescriptorSet decodes one compiled schema from protobuf wire
// data.
func DecodeFileDescriptorSet(data []byte) (*FileDescriptorSet, error) {
	m := &FileDescriptorSet{}
	if err := m.Decode(wire.NewDecoder(data)); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *FileDescriptorSet) Decode(pb *wire.Decoder) error {
	for {
		fieldNumber, wireType, ok, err := pb.NextField()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch fieldNumber {
		case 1:
			err = wire.WrapField(wire.ParseRepeatedMessageField(pb, wireType, &m.File), "file")
		default:
			err = pb.Skip(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *FileDescriptorProto) Decode(pb *wire.Decoder) error {
	for {
		fieldNumber, wireType, ok, err := pb.NextField()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch fieldNumber {
		case 1:
			err = wire.WrapField(wire.ParseBytesField(pb, wireType, &m.Name, &m.HasName), "name")
		case 2:
			err = wire.WrapField(wire.ParseBytesField(pb, wireType, &m.Package, &m.HasPackage), "package")
		case 4:
			err = wire.WrapField(wire.ParseRepeatedMessageField(pb, wireType, &m.MessageType), "message_type")
		default:
			err = pb.Skip(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *DescriptorProto) Decode(pb *wire.Decoder) error {
	for {
		fieldNumber, wireType, ok, err := pb.NextField()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch fieldNumber {
		case 1:
			err = wire.WrapField(wire.ParseBytesField(pb, wireType, &m.Name, &m.HasName), "name")
		case 2:
			err = wire.WrapField(wire.ParseRepeatedMessageField(pb, wireType, &m.Field), "field")
		case 3:
			err = wire.WrapField(wire.ParseRepeatedMessageField(pb, wireType, &m.NestedType), "nested_type")
		default:
			err = pb.Skip(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *FieldDescriptorProto) Decode(pb *wire.Decoder) error {
	for {
		fieldNumber, wireType, ok, err := pb.NextField()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		switch fieldNumber {
		case 1:
			err = wire.WrapField(wire.ParseBytesField(pb, wireType, &m.Name, &m.HasName), "name")
		case 3:
			err = wire.WrapField(wire.ParseIntegralField(pb, wireType, &m.Number, &m.HasNumber), "number")
		case 4:
			err = wire.WrapField(wire.ParseIntegralField(pb, wireType, &m.Label, &m.HasLabel), "label")
		case 5:
			err = wire.WrapField(wire.ParseIntegralField(pb, wireType, &m.Type, &m.HasType), "type")
		case 6:
			err = wire.WrapField(wire.ParseBytesField(pb, wireType, &m.TypeName, &m.HasTypeName), "type_name")
		case 7:
			err = wire.WrapField(wire.ParseBytesField(pb, wireType, &m.DefaultValue, &m.HasDefaultValue), "default_value")
		default:
			err = pb.Skip(wireType)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
