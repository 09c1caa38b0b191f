// Package protogen generates Go decoding code from Protocol Buffers
// schemas: either a compiled FileDescriptorSet or a .proto source file.
package protogen

import (
	"fmt"

	"github.com/sysfce2/protogen/descriptor"
	"github.com/sysfce2/protogen/gen"
	"github.com/sysfce2/protogen/registry"
)

// Generate emits Go source for the messages described by a serialized
// FileDescriptorSet.
func Generate(descriptorData []byte, opts gen.Options) ([]byte, error) {
	set, err := descriptor.DecodeFileDescriptorSet(descriptorData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode descriptor set: %w", err)
	}
	return gen.Generator{}.Generate(set, opts)
}

// GenerateProtoFile emits Go source for the messages declared in a .proto
// source file, without requiring a compiled descriptor.
func GenerateProtoFile(protoPath string, opts gen.Options) ([]byte, error) {
	set, err := registry.NewRegistry().LoadProtoFile(protoPath)
	if err != nil {
		return nil, err
	}
	if opts.Source == "" {
		opts.Source = protoPath
	}
	return gen.Generator{}.Generate(set, opts)
}
