package param

import (
	"context"
	"time"

	"redbank/core"

	"github.com/bluele/gcache"
)

type service struct {
	paramStore core.IParamStore
	cache      gcache.Cache
}

// New new params registry adapter over the local param store
func New(paramStore core.IParamStore) core.IParamsService {
	return &service{
		paramStore: paramStore,
		cache:      gcache.New(128).LRU().Expiration(5 * time.Second).Build(),
	}
}

func (s *service) Asset(ctx context.Context, denom string) (core.AssetParams, error) {
	if v, err := s.cache.Get(denom); err == nil {
		return v.(core.AssetParams), nil
	}

	row, err := s.paramStore.Find(ctx, denom)
	if err != nil {
		return core.AssetParams{}, err
	}

	if row.ID == 0 {
		return core.AssetParams{}, core.ErrAssetNotInitialized.Errorf("no params for %s", denom)
	}

	params := row.Params()
	_ = s.cache.Set(denom, params)
	return params, nil
}
