package stakx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopatchy/stakx/pkg/errors"
	"github.com/gopatchy/stakx/pkg/log"
)

// WriteFiles writes each page body to its target file below dir.
func (s *Site) WriteFiles(dir string) error {
	for _, p := range s.Pages {
		path := filepath.Join(dir, filepath.FromSlash(p.TargetFile))

		err := os.MkdirAll(filepath.Dir(path), 0o755)
		if err != nil {
			return fmt.Errorf("%s: %w (%w)", path, err, errors.ErrOutputFile)
		}

		err = os.WriteFile(path, p.Body, 0o644)
		if err != nil {
			return fmt.Errorf("%s: %w (%w)", path, err, errors.ErrOutputFile)
		}

		log.Debugf("wrote %s (%s)", path, p.Permalink)
	}

	return nil
}
