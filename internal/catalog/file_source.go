package catalog

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads a YAML or JSON document from disk on every Load, so the
// topic list can change without a rebuild.
type FileSource struct {
	Path string
}

func (f FileSource) Load(context.Context) (*Catalog, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return c, nil
}
