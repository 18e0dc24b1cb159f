package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/atlas/errors"
	"github.com/grovetools/atlas/pkg/models"
	"gopkg.in/yaml.v3"
)

// FileClient reads the country list from a local .json, .yml or .yaml file.
type FileClient struct {
	path string
}

// NewFileClient creates a client reading path on every fetch.
func NewFileClient(path string) *FileClient {
	return &FileClient{path: path}
}

// Path returns the dataset file path.
func (c *FileClient) Path() string {
	return c.path
}

// FetchAllCountries reads and decodes the whole file.
func (c *FileClient) FetchAllCountries(ctx context.Context) ([]models.Country, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, errors.FetchFailed(c.path, err)
	}

	var list []models.Country
	switch strings.ToLower(filepath.Ext(c.path)) {
	case ".json":
		err = json.Unmarshal(data, &list)
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &list)
	default:
		return nil, errors.New(errors.ErrCodeFetchFailed,
			fmt.Sprintf("unsupported dataset file type: %s", c.path)).
			WithDetail("source", c.path)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFetchFailed,
			fmt.Sprintf("malformed dataset file %s: %v", c.path, err)).
			WithDetail("source", c.path)
	}
	return list, nil
}
