package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roastedbeans/modi-app/internal/domain"
)

// ListCaptures enumerates the capture files directly under dir whose
// extension matches ext case-insensitively and whose size meets minSize.
// Entries are sorted by path.
func ListCaptures(dir, ext string, minSize int64) ([]domain.CaptureInfo, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list captures: %w", err)
	}

	var out []domain.CaptureInfo
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.Size() < minSize {
			continue
		}
		out = append(out, domain.CaptureInfo{
			Path:       filepath.Join(dir, e.Name()),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
