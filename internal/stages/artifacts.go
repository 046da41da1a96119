package stages

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// artifactWriter drops human-inspectable stage artifacts under the
// project directory. Writes are best-effort; the pipeline state holds
// the authoritative copy of every output.
type artifactWriter struct {
	root   string
	logger *zap.Logger
}

func newArtifactWriter(root string, logger *zap.Logger) *artifactWriter {
	return &artifactWriter{root: root, logger: logger}
}

func (w *artifactWriter) writeJSON(subdir, name string, v any) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		w.logger.Warn("artifact encode failed", zap.String("artifact", name), zap.Error(err))
		return
	}
	w.write(subdir, name, raw)
}

func (w *artifactWriter) writeText(subdir, name, text string) {
	w.write(subdir, name, []byte(text))
}

func (w *artifactWriter) write(subdir, name string, raw []byte) {
	dir := filepath.Join(w.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		w.logger.Warn("artifact dir failed", zap.String("dir", dir), zap.Error(err))
		return
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		w.logger.Warn("artifact write failed", zap.String("path", path), zap.Error(err))
	}
}
