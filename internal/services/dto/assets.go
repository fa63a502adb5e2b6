package dto

import (
	"context"
	"errors"
	"strings"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/storage"
)

// AssetResolver turns stored asset keys into absolute URLs for one request.
type AssetResolver struct {
	storage storage.Storage
	baseURL string
}

// NewAssetResolver binds s to the scheme://host the client used.
func NewAssetResolver(s storage.Storage, baseURL string) *AssetResolver {
	return &AssetResolver{
		storage: s,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// URL returns nil for an absent asset. Keys the storage refuses are logged
// and treated as absent.
func (r *AssetResolver) URL(ctx context.Context, key string) (*string, error) {
	if strings.TrimSpace(key) == "" {
		return nil, nil
	}

	u, err := r.storage.GetURL(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			logger.CtxWarn(ctx, "Skipping invalid asset key", "key", key)
			return nil, nil
		}
		return nil, err
	}

	if !isAbsolute(u) && r.baseURL != "" {
		u = r.baseURL + "/" + strings.TrimLeft(u, "/")
	}
	return &u, nil
}

func isAbsolute(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
