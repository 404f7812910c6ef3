package jobsearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheKeyIgnoresCredentials(t *testing.T) {
	t.Parallel()

	r := pageRequest{query: "welder", where: "43004", distance: 25, page: 1, perPage: 5}
	public := r.publicQuery()

	key := cacheKey("https://api.adzuna.com/v1/api/jobs/us/search/1", public)
	require.Equal(t, key, cacheKey("https://api.adzuna.com/v1/api/jobs/us/search/1", r.publicQuery()))
	require.NotEqual(t, key, cacheKey("https://api.adzuna.com/v1/api/jobs/us/search/2", public))

	withCreds := withCredentials(public, Config{AppID: "app", AppKey: "secret"})
	require.Equal(t, "secret", withCreds.Get("app_key"))
	require.Empty(t, public.Get("app_key"), "credentials must not leak into the public query")
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisCache(context.Background(), "not-a-redis-url")
	require.ErrorContains(t, err, "parse redis url")
}
