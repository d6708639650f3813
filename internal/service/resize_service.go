package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"imgresize/internal/config"
	"imgresize/internal/domain"
	"imgresize/internal/multipart"
	"imgresize/internal/transcode"
	"imgresize/pkg/utils"
)

// ResizeService runs the ingest-and-transform pipeline: validate, decode,
// transcode, store. Stages execute strictly in that order and the first
// failure short-circuits the rest.
type ResizeService interface {
	Resize(ctx context.Context, req domain.IngestRequest) (*domain.StoredAsset, error)
}

type resizeService struct {
	store      ObjectStore
	transcoder *transcode.Transcoder
	cfg        *config.Config
	log        *zap.Logger
}

// ObjectStore mirrors repository.ObjectStore; redeclared here so the
// service depends only on the contract it consumes.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PublicURL(key string) string
}

func NewResizeService(store ObjectStore, cfg *config.Config, log *zap.Logger) ResizeService {
	return &resizeService{
		store:      store,
		transcoder: transcode.New(cfg.App.JPEGQuality, cfg.App.WebPQuality),
		cfg:        cfg,
		log:        log,
	}
}

func (s *resizeService) Resize(ctx context.Context, req domain.IngestRequest) (*domain.StoredAsset, error) {
	// Validation by shape comes first; no body work is spent on requests
	// that are already invalid.
	spec, err := ParseResizeSpec(req.Query, s.cfg.App.MinDimension, s.cfg.App.MaxDimension)
	if err != nil {
		return nil, err
	}

	boundary, err := multipart.Boundary(req.ContentType)
	if err != nil {
		return nil, err
	}

	body := req.Body
	if req.IsBase64 {
		body, err = base64.StdEncoding.DecodeString(string(req.Body))
		if err != nil {
			return nil, fmt.Errorf("%w: body is not valid base64: %v", domain.ErrMalformedMultipart, err)
		}
	}

	if int64(len(body)) > s.cfg.App.MaxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", domain.ErrPayloadTooLarge, len(body), s.cfg.App.MaxUploadSize)
	}

	part, err := multipart.Decode(body, boundary)
	if err != nil {
		return nil, err
	}

	resized, err := s.transcoder.Transcode(part.Payload, spec)
	if err != nil {
		return nil, err
	}

	key := s.objectKey(part.Filename, spec.Format)
	contentType := spec.Format.ContentType()

	if err := s.store.Put(ctx, key, resized, contentType); err != nil {
		return nil, err
	}

	asset := &domain.StoredAsset{
		Key:         key,
		Size:        int64(len(resized)),
		ContentType: contentType,
		PublicURL:   s.store.PublicURL(key),
	}

	s.log.Info("Image resized and stored",
		zap.String("key", key),
		zap.String("filename", part.Filename),
		zap.Int("width", spec.Width),
		zap.Int("height", spec.Height),
		zap.String("format", string(spec.Format)),
		zap.Int64("size", asset.Size))

	return asset, nil
}

// objectKey derives a collision-resistant storage key. The random UUID
// prefix means concurrent uploads of identically named files never collide;
// duplicates are not detected or merged.
func (s *resizeService) objectKey(filename string, format domain.Format) string {
	base := utils.SanitizeBaseName(filename)
	return s.cfg.App.KeyPrefix + uuid.New().String() + "-" + base + "." + format.Extension()
}

// ParseResizeSpec validates the resize query parameters. Width and height
// must parse as integers within [minDim, maxDim]; the floor rejects
// degenerate near-zero-pixel outputs that can trigger pathological codec
// behavior. An absent format defaults to webp.
func ParseResizeSpec(query url.Values, minDim, maxDim int) (domain.ResizeSpec, error) {
	width, err := parseDimension(query.Get("width"), "width", minDim, maxDim)
	if err != nil {
		return domain.ResizeSpec{}, err
	}
	height, err := parseDimension(query.Get("height"), "height", minDim, maxDim)
	if err != nil {
		return domain.ResizeSpec{}, err
	}

	name := strings.ToLower(query.Get("format"))
	format, ok := domain.ParseFormat(name)
	if !ok {
		return domain.ResizeSpec{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, name)
	}

	return domain.ResizeSpec{Width: width, Height: height, Format: format}, nil
}

func parseDimension(raw, name string, minDim, maxDim int) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: missing %s", domain.ErrInvalidDimensions, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", domain.ErrInvalidDimensions, name, raw)
	}
	if v < minDim || v > maxDim {
		return 0, fmt.Errorf("%w: %s %d outside [%d, %d]", domain.ErrInvalidDimensions, name, v, minDim, maxDim)
	}
	return v, nil
}
