package lineage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// URLExporter writes explanations as yaml files under a base URL supported by afs.
// Files are named after the explanation hash, so exporting the same explanation twice
// writes the same file.
type URLExporter struct {
	fs      afs.Service
	baseURL string
}

// NewURLExporter creates an exporter writing under baseURL
func NewURLExporter(baseURL string) *URLExporter {
	return &URLExporter{fs: afs.New(), baseURL: baseURL}
}

// Location returns the URL an explanation is written to
func (e *URLExporter) Location(explanation *Explanation) (string, error) {
	hash, err := explanation.Hash()
	if err != nil {
		return "", err
	}
	return url.Join(e.baseURL, fmt.Sprintf("%016x.yaml", hash)), nil
}

// Export writes an explanation
func (e *URLExporter) Export(explanation *Explanation) error {
	return e.ExportContext(context.Background(), explanation)
}

// ExportContext writes an explanation
func (e *URLExporter) ExportContext(ctx context.Context, explanation *Explanation) error {
	data, err := explanation.YAML()
	if err != nil {
		return err
	}
	location, err := e.Location(explanation)
	if err != nil {
		return err
	}
	if err = e.fs.Upload(ctx, location, 0644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to export explanation to %v: %w", location, err)
	}
	return nil
}
