package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/dogwalk/internal/config"
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.SessionConfig {
	return config.SessionConfig{
		Store:      "memory",
		Secret:     "test-secret",
		CookieName: "dogwalk.sid",
		TTL:        time.Hour,
	}
}

var alice = model.User{UserID: 1, Username: "alice123", Email: "alice@example.com", Role: model.RoleOwner}

// requestWithCookies replays the cookies set on rec into a new request.
func requestWithCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestManager_CreateThenLoad(t *testing.T) {
	ctx := context.Background()
	m := NewManager(testConfig(), NewMemoryStore())

	rec := httptest.NewRecorder()
	created, err := m.Create(ctx, rec, alice)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "dogwalk.sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEqual(t, created.ID, cookies[0].Value, "cookie must carry the signed id, not the raw one")

	loaded, err := m.Load(ctx, requestWithCookies(rec))
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, alice, loaded.User)
}

func TestManager_LoadWithoutCookie(t *testing.T) {
	m := NewManager(testConfig(), NewMemoryStore())

	s, err := m.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestManager_LoadRejectsTamperedCookie(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(testConfig(), store)

	created, err := m.Create(ctx, httptest.NewRecorder(), alice)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "dogwalk.sid", Value: created.ID})

	s, err := m.Load(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestManager_LoadRejectsCookieSignedWithOtherSecret(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	other := testConfig()
	other.Secret = "someone-else"
	rec := httptest.NewRecorder()
	_, err := NewManager(other, store).Create(ctx, rec, alice)
	require.NoError(t, err)

	s, err := NewManager(testConfig(), store).Load(ctx, requestWithCookies(rec))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestManager_LoadExpired(t *testing.T) {
	ctx := context.Background()
	m := NewManager(testConfig(), NewMemoryStore())

	rec := httptest.NewRecorder()
	_, err := m.Create(ctx, rec, alice)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	s, err := m.Load(ctx, requestWithCookies(rec))
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestManager_Destroy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(testConfig(), store)

	rec := httptest.NewRecorder()
	_, err := m.Create(ctx, rec, alice)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	req := requestWithCookies(rec)
	out := httptest.NewRecorder()
	require.NoError(t, m.Destroy(ctx, out, req))
	assert.Equal(t, 0, store.Len())

	cookies := out.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)

	s, err := m.Load(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestManager_DestroyWithoutSession(t *testing.T) {
	m := NewManager(testConfig(), NewMemoryStore())

	rec := httptest.NewRecorder()
	err := m.Destroy(context.Background(), rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestMemoryStore_ExpiredIsDropped(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &Session{ID: "a", User: alice, ExpiresAt: now.Add(-time.Second)}))

	s, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_SavePrunesAbandonedSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &Session{ID: "abandoned", User: alice, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, &Session{ID: "active", User: alice, ExpiresAt: now.Add(time.Hour)}))
	assert.Equal(t, 2, store.Len())

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Save(ctx, &Session{ID: "fresh", User: alice, ExpiresAt: now.Add(time.Hour)}))

	assert.Equal(t, 2, store.Len())
	gone, err := store.Get(ctx, "abandoned")
	require.NoError(t, err)
	assert.Nil(t, gone)
	kept, err := store.Get(ctx, "active")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	sess := &Session{ID: "abc", User: alice, CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))
	assert.True(t, mr.Exists(redisKeyPrefix+"abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice, got.User)

	require.NoError(t, store.Delete(ctx, "abc"))
	got, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_KeyExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Save(ctx, &Session{ID: "ttl", User: alice, ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "ttl")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), "x")
	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	s, err := NewStore("memory", nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = NewStore("redis", nil)
	assert.ErrorIs(t, err, ErrUnknownStore)

	_, err = NewStore("memcached", nil)
	assert.ErrorIs(t, err, ErrUnknownStore)
}
