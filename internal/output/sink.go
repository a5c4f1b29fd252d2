package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (s *implSink) Write(ctx context.Context, path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if strings.EqualFold(filepath.Ext(path), ".docx") {
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := markdownToDocx(title, content, path); err != nil {
			return fmt.Errorf("write docx %s: %w", path, err)
		}
	} else if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Debug(ctx, "Wrote %s (%d bytes of text)", path, len(content))
	return nil
}
