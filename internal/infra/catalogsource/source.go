package catalogsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/yanqian/desi-diet/internal/domain/catalog"
)

// Builtin serves the compiled-in food list.
type Builtin struct{}

// NewBuiltin constructs the built-in source.
func NewBuiltin() *Builtin {
	return &Builtin{}
}

// Foods returns the default food list.
func (Builtin) Foods(context.Context) ([]catalog.FoodItem, error) {
	return catalog.DefaultFoods(), nil
}

// File reads the food list from a JSON document on disk.
type File struct {
	path string
}

// NewFile constructs a file backed source.
func NewFile(path string) *File {
	return &File{path: path}
}

// Foods decodes the file at the configured path.
func (f *File) Foods(context.Context) ([]catalog.FoodItem, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return decodeFoods(bytes.NewReader(data))
}

type document struct {
	Foods []catalog.FoodItem `json:"foods"`
}

// decodeFoods accepts either a bare array or an object with a "foods" field.
func decodeFoods(r io.Reader) ([]catalog.FoodItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []catalog.FoodItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		return items, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return doc.Foods, nil
}

func encodeFoods(items []catalog.FoodItem) ([]byte, error) {
	return json.MarshalIndent(document{Foods: items}, "", "  ")
}

var (
	_ catalog.Source = (*Builtin)(nil)
	_ catalog.Source = (*File)(nil)
)
