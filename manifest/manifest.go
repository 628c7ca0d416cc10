package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	cerrors "github.com/bibin-skaria/coatingtk/internal/errors"
)

// Parse decodes and validates a coating document.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, cerrors.NewConfigurationError("parse_manifest", "invalid coating yaml", err)
	}
	if err := Validate(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

// ReadFile reads and validates a coating document from path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.NewFilesystemError("read_manifest", fmt.Sprintf("failed to read %s", path), err)
	}
	return Parse(data)
}

// Marshal validates and encodes a coating document.
func Marshal(file *File) ([]byte, error) {
	if err := Validate(file); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, cerrors.NewConfigurationError("marshal_manifest", "failed to encode coating", err)
	}
	return data, nil
}

// WriteFile validates file and writes it to path.
func WriteFile(path string, file *File) error {
	data, err := Marshal(file)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return cerrors.NewFilesystemError("write_manifest", fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
