package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// defaultImages are placeholder paths that must never be removed from disk.
var defaultImages = map[string]bool{
	"/images/default.jpg":        true,
	"/images/defaultProfile.png": true,
}

// SaveImage stores an uploaded file under dir with a collision-safe name
// (original base, a timestamp suffix, original extension) and returns the
// public path under /images that gets persisted on the entity.
func SaveImage(dir string, fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := filepath.Ext(fh.Filename)
	base := strings.TrimSuffix(filepath.Base(fh.Filename), ext)
	name := fmt.Sprintf("%s-%d%s", base, time.Now().UnixMilli(), ext)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/images/" + name, nil
}

// DeleteImage removes the backing file of an entity image. Default placeholder
// images are kept. Failures are logged only; a missing file is not an error
// worth propagating during entity deletion.
func DeleteImage(dir, imgPath string) {
	if imgPath == "" || defaultImages[imgPath] {
		return
	}

	full := filepath.Join(dir, filepath.Base(imgPath))
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", full).Msg("image file not found")
			return
		}
		log.Error().Err(err).Str("path", full).Msg("failed to delete image")
		return
	}
	log.Debug().Str("path", full).Msg("deleted image")
}
