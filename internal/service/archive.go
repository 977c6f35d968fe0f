package service

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/davey/lotvoice/internal/assets"
	"github.com/davey/lotvoice/internal/domain"
	"github.com/davey/lotvoice/internal/logger"
)

// Archiver bundles previously generated audio files into a zip stream.
type Archiver struct {
	store  *assets.Store
	logger *logger.Logger
}

// NewArchiver creates a new archive builder over the given asset store.
func NewArchiver(store *assets.Store, log *logger.Logger) *Archiver {
	return &Archiver{
		store:  store,
		logger: log,
	}
}

// Validate rejects an empty selection before any streaming begins.
func (a *Archiver) Validate(urls []string) error {
	if len(urls) == 0 {
		return &domain.ValidationError{Message: "No files selected."}
	}
	return nil
}

// Stream writes a zip archive of the selected files to w. URLs that resolve
// outside the asset root or to files that no longer exist are skipped, not
// errors. Once the first byte is written the caller's transport is committed
// to binary output, so failures here can only terminate the stream.
func (a *Archiver) Stream(ctx context.Context, urls []string, w io.Writer) error {
	zw := zip.NewWriter(w)

	for _, rawURL := range urls {
		path, ok := a.store.Resolve(rawURL)
		if !ok {
			logger.CtxWarn(ctx, "Skipping file outside asset root: %s", rawURL)
			continue
		}

		if _, err := os.Stat(path); err != nil {
			logger.CtxDebug(ctx, "Skipping missing file: %s", path)
			continue
		}

		if err := a.addFile(zw, path); err != nil {
			zw.Close()
			return fmt.Errorf("failed to archive %s: %w", filepath.Base(path), err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	return nil
}

func (a *Archiver) addFile(zw *zip.Writer, path string) error {
	entry, err := zw.Create(filepath.Base(path))
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(entry, f)
	return err
}
