package irfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"tessera/internal/ir"
)

// Format is the on-disk encoding of an image.
type Format uint8

const (
	FormatYAML Format = iota
	FormatMsgpack
)

func (f Format) String() string {
	if f == FormatMsgpack {
		return "msgpack"
	}
	return "yaml"
}

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mpk", ".mp":
		return FormatMsgpack, nil
	}
	return FormatYAML, fmt.Errorf("%s: unknown IR image extension (expected .yaml, .yml or .msgpack)", path)
}

// Unmarshal decodes an image. Unknown keys are rejected in both encodings.
func Unmarshal(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse msgpack: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			if err == io.EOF {
				return nil, bad("empty image")
			}
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return &f, nil
}

// Marshal encodes an image, stamping the current schema version.
func Marshal(f *File, format Format) ([]byte, error) {
	cp := *f
	cp.Version = SchemaVersion
	if format == FormatMsgpack {
		return msgpack.Marshal(&cp)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&cp); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFile reads and parses the image at path.
func ReadFile(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read IR image: %w", err)
	}
	f, err := Unmarshal(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteFile encodes f in the format implied by path.
func WriteFile(path string, f *File) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(f, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads the image at path and decodes it into a program.
func Load(path string) (*ir.Program, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	prog, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}
