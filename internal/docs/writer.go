package docs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// ChunkFile is the serialized output of a run.
type ChunkFile struct {
	Chunks []ChunkRecord `json:"chunks"`
}

// WriteChunks writes records to path as JSON, or as YAML when the path ends in
// .yaml or .yml. The file is replaced atomically so a failed run never leaves
// partial output behind.
func WriteChunks(path string, records []ChunkRecord) error {
	data, err := EncodeChunks(path, records)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// EncodeChunks renders records in the format implied by path's extension.
func EncodeChunks(path string, records []ChunkRecord) ([]byte, error) {
	if records == nil {
		records = []ChunkRecord{}
	}
	payload := ChunkFile{Chunks: records}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode chunks as yaml: %w", err)
		}
		return data, nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return nil, fmt.Errorf("encode chunks as json: %w", err)
		}
		return buf.Bytes(), nil
	}
}
