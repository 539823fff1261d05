package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("record not found")

// Source yields candidate records for a matching run.
type Source interface {
	Name() string
	Load(ctx context.Context) (*Candidates, error)
}

// FileSource reads candidates from a JSON or YAML file. The file holds either
// a list of records or an object with an "items" list.
type FileSource struct {
	Path   string
	logger *zap.Logger
}

func NewFileSource(logger *zap.Logger, path string) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{Path: path, logger: logger}
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) Load(ctx context.Context) (*Candidates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := readDocument(s.Path)
	if err != nil {
		return nil, err
	}

	items, err := itemsOf(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}

	logger := s.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return DecodeCandidates(items, logger.With(zap.String("path", s.Path))), nil
}

// LoadJob reads one job description from a JSON or YAML file.
func LoadJob(path string) (*Job, error) {
	raw, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	job, err := DecodeJob(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if job.ID == "" {
		job.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return job, nil
}

func readDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func itemsOf(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		items, ok := v["items"].([]any)
		if !ok {
			return nil, fmt.Errorf("no items list in document")
		}
		return items, nil
	case nil:
		return []any{}, nil
	default:
		return nil, fmt.Errorf("unexpected document type %T", doc)
	}
}
