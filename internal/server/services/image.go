package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophcms/internal/server/models"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophcms/internal/server/storage"
)

// DefaultImageExt is used when the uploaded name carries no extension.
const DefaultImageExt = "jpg"

// ImageRoute is the public path prefix images are served under.
const ImageRoute = "/images/"

// FallbackMimeType is recorded for extensions that do not name an image type.
const FallbackMimeType = "application/octet-stream"

type ImageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.Store
}

func NewImageService(db *sql.DB, m repomanager.RepositoryManager, store storage.Store) *ImageService {
	return &ImageService{db: db, repomanager: m, store: store}
}

// Upload describes one incoming file. The stored mime type is derived from
// the extension of OriginName.
type Upload struct {
	OriginName string
	PostID     string
	ImageType  string
	Body       io.Reader
}

// Save stores the bytes under a fresh name and records the metadata row.
// It returns the public path of the image. When the row cannot be written
// the stored object is removed again.
func (s *ImageService) Save(ctx context.Context, up Upload) (string, error) {
	ext := imageExt(up.OriginName)
	fileName := newID() + "." + ext
	mimeType := imageMimeType(ext)

	location, err := s.store.Put(ctx, fileName, up.Body, mimeType)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	imageType := up.ImageType
	if imageType == "" {
		imageType = models.DefaultImageType
	}

	img := &models.Image{
		ID:         newID(),
		PostID:     up.PostID,
		FileName:   fileName,
		OriginName: up.OriginName,
		FilePath:   location,
		MimeType:   mimeType,
		ImageType:  imageType,
	}
	if err := s.repomanager.Images(s.db).Create(ctx, img); err != nil {
		if delErr := s.store.Delete(ctx, fileName); delErr != nil {
			err = errors.Join(err, fmt.Errorf("remove orphaned image: %w", delErr))
		}
		return "", fmt.Errorf("record image: %w", err)
	}

	return ImageRoute + fileName, nil
}

// Open streams a stored image and reports its recorded mime type.
func (s *ImageService) Open(ctx context.Context, fileName string) (io.ReadCloser, string, error) {
	img, err := s.repomanager.Images(s.db).GetByFileName(ctx, fileName)
	if err != nil {
		return nil, "", err
	}

	rc, err := s.store.Open(ctx, img.FileName)
	if err != nil {
		return nil, "", err
	}
	return rc, img.MimeType, nil
}

func imageExt(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filepath.Base(name))), ".")
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		return DefaultImageExt
	}
	return ext
}

// rasterTypes are the only types images are ever served as. SVG is left
// out since it can carry script.
var rasterTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/avif": true,
	"image/bmp":  true,
}

// imageMimeType maps an extension to a raster image type, or FallbackMimeType.
func imageMimeType(ext string) string {
	t := mime.TypeByExtension("." + ext)
	if !rasterTypes[t] {
		return FallbackMimeType
	}
	return t
}
