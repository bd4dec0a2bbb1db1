package registry

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Encode serializes the movie mapping as a protobuf Struct whose fields map each
// movie name to its script path. Output is deterministic for equal input.
func Encode(movies map[string]string) ([]byte, error) {
	fields := make(map[string]*structpb.Value, len(movies))
	for name, path := range movies {
		if name == "" {
			return nil, fmt.Errorf("%w: empty movie name", ErrInvalidRegistry)
		}
		fields[name] = structpb.NewStringValue(path)
	}

	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(&structpb.Struct{Fields: fields})
	if err != nil {
		return nil, fmt.Errorf("failed to encode movie registry: %w", err)
	}
	return data, nil
}

// Decode parses a blob written by Encode.
func Decode(data []byte) (map[string]string, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegistry, err)
	}

	movies := make(map[string]string, len(s.GetFields()))
	for name, value := range s.GetFields() {
		path, ok := value.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: path of %q is not a string", ErrInvalidRegistry, name)
		}
		movies[name] = path.StringValue
	}
	return movies, nil
}
