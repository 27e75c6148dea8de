package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/mesto-api/config"
	"github.com/oksasatya/mesto-api/internal/application"
	"github.com/oksasatya/mesto-api/pkg/helpers"
	"github.com/oksasatya/mesto-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type testApp struct {
	engine *gin.Engine
	users  *memUsers
	cards  *memCards
	mr     *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := helpers.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{CORSAllowedOrigins: "http://localhost:3000"}
	jwt := helpers.NewJWTManager("test-secret", 7*24*time.Hour)
	denylist := helpers.NewDenylist(rdb)
	users, cards := newMemUsers(), newMemCards()

	defaults := application.ProfileDefaults{Name: "Jacques-Yves Cousteau", About: "Explorer", Avatar: "https://x.test/default.png"}
	d := Deps{
		Users:       application.NewUserService(users, jwt, nil, defaults, application.WithRevoker(denylist)),
		Cards:       application.NewCardService(cards, nil),
		JWT:         jwt,
		Cookies:     helpers.NewCookie("", false),
		Revocations: denylist,
		DB:          okPinger{},
		Metrics:     prometheus.NewRegistry(),
	}
	return &testApp{engine: NewEngine(cfg, d), users: users, cards: cards, mr: mr}
}

type result struct {
	code    int
	body    map[string]any
	raw     string
	cookies []*http.Cookie
}

func (a *testApp) do(t *testing.T, method, path string, body any, session string) result {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: session})
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	res := result{code: w.Code, raw: w.Body.String(), cookies: w.Result().Cookies()}
	_ = json.Unmarshal(w.Body.Bytes(), &res.body)
	return res
}

func (a *testApp) signupAndSignin(t *testing.T, email string) (string, string) {
	t.Helper()
	r := a.do(t, http.MethodPost, "/signup", map[string]string{"email": email, "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, r.code, r.raw)
	id := r.body["data"].(map[string]any)["_id"].(string)

	r = a.do(t, http.MethodPost, "/signin", map[string]string{"email": email, "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, r.code, r.raw)
	return id, r.body["token"].(string)
}

func data(r result) map[string]any {
	d, _ := r.body["data"].(map[string]any)
	return d
}

func TestSignup_DuplicateEmailIsConflict(t *testing.T) {
	app := newTestApp(t)

	r := app.do(t, http.MethodPost, "/signup", map[string]string{"email": "a@b.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, r.code, r.raw)
	assert.NotContains(t, data(r), "password")
	assert.NotContains(t, r.raw, "secret1")
	assert.Equal(t, "a@b.com", data(r)["email"])
	assert.Equal(t, "Jacques-Yves Cousteau", data(r)["name"])
	assert.Equal(t, "Explorer", data(r)["about"])

	r = app.do(t, http.MethodPost, "/signup", map[string]string{"email": "A@B.com", "password": "other"}, "")
	assert.Equal(t, http.StatusConflict, r.code)
	assert.Len(t, app.users.byID, 1)
}

func TestSignup_Validation(t *testing.T) {
	app := newTestApp(t)

	cases := []map[string]string{
		{"password": "secret1"},
		{"email": "not-an-email", "password": "secret1"},
		{"email": "a@b.com"},
		{"email": "a@b.com", "password": "secret1", "name": "x"},
		{"email": "a@b.com", "password": "secret1", "name": "   "},
		{"email": "a@b.com", "password": "secret1", "about": "  \t "},
		{"email": "a@b.com", "password": "secret1", "avatar": "not a url"},
	}
	for _, body := range cases {
		r := app.do(t, http.MethodPost, "/signup", body, "")
		assert.Equal(t, http.StatusBadRequest, r.code, body)
	}
	assert.Zero(t, app.users.count())
}

func TestSignin_SetsSessionCookie(t *testing.T) {
	app := newTestApp(t)
	app.do(t, http.MethodPost, "/signup", map[string]string{"email": "a@b.com", "password": "secret1"}, "")

	r := app.do(t, http.MethodPost, "/signin", map[string]string{"email": "a@b.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, r.code)
	assert.NotContains(t, data(r), "password")
	require.Len(t, r.cookies, 1)
	ck := r.cookies[0]
	assert.Equal(t, "jwt", ck.Name)
	assert.Equal(t, "login successful", r.body["message"])
	assert.NotContains(t, r.body, "data")
	require.NotEmpty(t, r.body["token"])
	assert.Equal(t, r.body["token"], ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.Equal(t, 7*24*3600, ck.MaxAge)
}

func TestSignin_IdenticalFailureForUnknownEmailAndWrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.do(t, http.MethodPost, "/signup", map[string]string{"email": "a@b.com", "password": "secret1"}, "")

	wrong := app.do(t, http.MethodPost, "/signin", map[string]string{"email": "a@b.com", "password": "wrong"}, "")
	unknown := app.do(t, http.MethodPost, "/signin", map[string]string{"email": "x@b.com", "password": "secret1"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrong.code)
	assert.Equal(t, http.StatusUnauthorized, unknown.code)
	for _, r := range []result{wrong, unknown} {
		delete(r.body, "timestamp")
		delete(r.body, "request_id")
		assert.Empty(t, r.cookies)
	}
	assert.Equal(t, wrong.body, unknown.body)
	assert.Equal(t, "incorrect email or password", wrong.body["message"])
}

func TestProtectedRoutes_RequireCookieBeforeStore(t *testing.T) {
	app := newTestApp(t)
	cardID := helpers.NewObjectID()

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/me"},
		{http.MethodGet, "/users/" + cardID},
		{http.MethodPatch, "/users/me"},
		{http.MethodPatch, "/users/me/avatar"},
		{http.MethodGet, "/cards"},
		{http.MethodPost, "/cards"},
		{http.MethodDelete, "/cards/" + cardID},
		{http.MethodPut, "/cards/" + cardID + "/likes"},
		{http.MethodDelete, "/cards/" + cardID + "/likes"},
		{http.MethodPost, "/signout"},
	}
	for _, rt := range routes {
		r := app.do(t, rt.method, rt.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, r.code, rt.path)
		assert.Equal(t, "authorization required", r.body["message"], rt.path)
	}
	assert.Zero(t, app.users.count())
	assert.Zero(t, app.cards.count())
}

func TestProtectedRoutes_RejectExpiredAndTamperedTokens(t *testing.T) {
	app := newTestApp(t)
	id, token := app.signupAndSignin(t, "a@b.com")

	expired, _, err := helpers.NewJWTManager("test-secret", -time.Second).Generate(id)
	require.NoError(t, err)
	forged, _, err := helpers.NewJWTManager("guessed-secret", time.Hour).Generate(id)
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tamperedPayload := parts[0] + "." + parts[1] + "x." + parts[2]

	for _, tok := range []string{expired, forged, tamperedPayload} {
		r := app.do(t, http.MethodGet, "/users/me", nil, tok)
		assert.Equal(t, http.StatusUnauthorized, r.code)
	}
}

func TestMe_ReturnsProfileWithoutPassword(t *testing.T) {
	app := newTestApp(t)
	id, token := app.signupAndSignin(t, "a@b.com")

	r := app.do(t, http.MethodGet, "/users/me", nil, token)
	require.Equal(t, http.StatusOK, r.code)
	assert.Equal(t, id, data(r)["_id"])
	assert.NotContains(t, data(r), "password")

	r = app.do(t, http.MethodGet, "/users", nil, token)
	require.Equal(t, http.StatusOK, r.code)
	assert.NotContains(t, r.raw, "password")
}

func TestGetUser_MalformedAndMissing(t *testing.T) {
	app := newTestApp(t)
	_, token := app.signupAndSignin(t, "a@b.com")
	before := app.users.count()

	for _, bad := range []string{"123", "65a1b2c3d4e5f60718293a4", "65a1b2c3d4e5f60718293a4bc", "zza1b2c3d4e5f60718293a4b"} {
		r := app.do(t, http.MethodGet, "/users/"+bad, nil, token)
		assert.Equal(t, http.StatusBadRequest, r.code, bad)
	}
	assert.Equal(t, before, app.users.count())

	r := app.do(t, http.MethodGet, "/users/"+helpers.NewObjectID(), nil, token)
	assert.Equal(t, http.StatusNotFound, r.code)
}

func TestUpdateProfileAndAvatar(t *testing.T) {
	app := newTestApp(t)
	_, token := app.signupAndSignin(t, "a@b.com")

	r := app.do(t, http.MethodPatch, "/users/me", map[string]string{"name": "Ann", "about": "Diver"}, token)
	require.Equal(t, http.StatusOK, r.code, r.raw)
	assert.Equal(t, "Ann", data(r)["name"])

	r = app.do(t, http.MethodPatch, "/users/me", map[string]string{"name": "A", "about": "Diver"}, token)
	assert.Equal(t, http.StatusBadRequest, r.code)
	r = app.do(t, http.MethodPatch, "/users/me", map[string]string{"name": "   ", "about": "Diver"}, token)
	assert.Equal(t, http.StatusBadRequest, r.code)

	r = app.do(t, http.MethodPatch, "/users/me/avatar", map[string]string{"avatar": "https://x.test/me.png"}, token)
	require.Equal(t, http.StatusOK, r.code)
	assert.Equal(t, "https://x.test/me.png", data(r)["avatar"])

	r = app.do(t, http.MethodPatch, "/users/me/avatar", map[string]string{"avatar": "me.png"}, token)
	assert.Equal(t, http.StatusBadRequest, r.code)
}

func TestCards_CreateListAndValidation(t *testing.T) {
	app := newTestApp(t)
	id, token := app.signupAndSignin(t, "a@b.com")

	r := app.do(t, http.MethodPost, "/cards", map[string]string{"name": "Lake", "link": "https://x.test/lake.jpg"}, token)
	require.Equal(t, http.StatusOK, r.code, r.raw)
	assert.Equal(t, id, data(r)["owner"])
	assert.Equal(t, []any{}, data(r)["likes"])
	assert.NotEmpty(t, data(r)["createdAt"])

	r = app.do(t, http.MethodPost, "/cards", map[string]string{"name": "Lake", "link": "lake.jpg"}, token)
	assert.Equal(t, http.StatusBadRequest, r.code)
	r = app.do(t, http.MethodPost, "/cards", map[string]string{"name": "L", "link": "https://x.test/l.jpg"}, token)
	assert.Equal(t, http.StatusBadRequest, r.code)
	r = app.do(t, http.MethodPost, "/cards", map[string]string{"name": "    ", "link": "https://x.test/l.jpg"}, token)
	assert.Equal(t, http.StatusBadRequest, r.code)

	r = app.do(t, http.MethodGet, "/cards", nil, token)
	require.Equal(t, http.StatusOK, r.code)
	assert.Len(t, r.body["data"], 1)
}

func TestCards_LikeIsIdempotentAndUnlikeIsNoop(t *testing.T) {
	app := newTestApp(t)
	id, token := app.signupAndSignin(t, "a@b.com")
	r := app.do(t, http.MethodPost, "/cards", map[string]string{"name": "Lake", "link": "https://x.test/lake.jpg"}, token)
	cardID := data(r)["_id"].(string)

	first := app.do(t, http.MethodPut, "/cards/"+cardID+"/likes", nil, token)
	second := app.do(t, http.MethodPut, "/cards/"+cardID+"/likes", nil, token)
	require.Equal(t, http.StatusOK, first.code)
	require.Equal(t, http.StatusOK, second.code)
	assert.Equal(t, []any{id}, data(first)["likes"])
	assert.Equal(t, data(first)["likes"], data(second)["likes"])

	r = app.do(t, http.MethodDelete, "/cards/"+cardID+"/likes", nil, token)
	require.Equal(t, http.StatusOK, r.code)
	assert.Equal(t, []any{}, data(r)["likes"])

	r = app.do(t, http.MethodDelete, "/cards/"+cardID+"/likes", nil, token)
	require.Equal(t, http.StatusOK, r.code)
	assert.Equal(t, []any{}, data(r)["likes"])
	assert.Equal(t, cardID, data(r)["_id"])

	r = app.do(t, http.MethodPut, "/cards/"+helpers.NewObjectID()+"/likes", nil, token)
	assert.Equal(t, http.StatusNotFound, r.code)
}

func TestCards_Delete(t *testing.T) {
	app := newTestApp(t)
	_, owner := app.signupAndSignin(t, "owner@b.com")
	_, stranger := app.signupAndSignin(t, "stranger@b.com")
	r := app.do(t, http.MethodPost, "/cards", map[string]string{"name": "Lake", "link": "https://x.test/lake.jpg"}, owner)
	cardID := data(r)["_id"].(string)

	before := app.cards.count()
	r = app.do(t, http.MethodDelete, "/cards/not-an-id", nil, owner)
	assert.Equal(t, http.StatusBadRequest, r.code)
	assert.Equal(t, before, app.cards.count())

	r = app.do(t, http.MethodDelete, "/cards/"+helpers.NewObjectID(), nil, owner)
	assert.Equal(t, http.StatusNotFound, r.code)

	r = app.do(t, http.MethodDelete, "/cards/"+cardID, nil, stranger)
	assert.Equal(t, http.StatusForbidden, r.code)
	assert.Len(t, app.cards.byID, 1)

	r = app.do(t, http.MethodDelete, "/cards/"+strings.ToUpper(cardID), nil, owner)
	require.Equal(t, http.StatusOK, r.code, r.raw)
	assert.Empty(t, app.cards.byID)
}

func TestSignout_RevokesToken(t *testing.T) {
	app := newTestApp(t)
	_, token := app.signupAndSignin(t, "a@b.com")

	r := app.do(t, http.MethodPost, "/signout", nil, token)
	require.Equal(t, http.StatusOK, r.code)
	require.Len(t, r.cookies, 1)
	assert.Equal(t, "", r.cookies[0].Value)
	assert.True(t, r.cookies[0].MaxAge < 0)

	r = app.do(t, http.MethodGet, "/users/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, r.code)
}

func newLimitedEngine(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := helpers.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })

	jwt := helpers.NewJWTManager("k", time.Hour)
	return NewEngine(cfg, Deps{
		Users:   application.NewUserService(newMemUsers(), jwt, nil, application.ProfileDefaults{}),
		Cards:   application.NewCardService(newMemCards(), nil),
		JWT:     jwt,
		Cookies: helpers.NewCookie("", false),
		Redis:   rdb,
	})
}

// signinCodes posts n failing signins, each claiming a different forwarded client.
func signinCodes(engine http.Handler, n int) []int {
	codes := make([]int, 0, n)
	for i := 0; i < n; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(`{"email":"a@b.com","password":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	return codes
}

func TestSignin_RateLimited(t *testing.T) {
	engine := newLimitedEngine(t, &config.Config{})

	codes := signinCodes(engine, 12)
	assert.Equal(t, http.StatusUnauthorized, codes[9])
	assert.Equal(t, http.StatusTooManyRequests, codes[10])
	assert.Equal(t, http.StatusTooManyRequests, codes[11])
}

func TestSignin_ForwardedForOnlyTrustedFromProxies(t *testing.T) {
	// httptest requests come from 192.0.2.1
	engine := newLimitedEngine(t, &config.Config{TrustedProxies: "192.0.2.0/24"})

	for _, code := range signinCodes(engine, 12) {
		assert.Equal(t, http.StatusUnauthorized, code)
	}
}

func TestOperationalEndpoints(t *testing.T) {
	app := newTestApp(t)

	r := app.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, r.code)

	r = app.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, r.code)

	r = app.do(t, http.MethodGet, "/debug/vars", nil, "")
	assert.Equal(t, http.StatusOK, r.code)

	r = app.do(t, http.MethodGet, "/no/such/route", nil, "")
	assert.Equal(t, http.StatusNotFound, r.code)
	assert.Equal(t, "requested resource not found", r.body["message"])
}

func TestHealthz_DatabaseDown(t *testing.T) {
	jwt := helpers.NewJWTManager("k", time.Hour)
	engine := NewEngine(&config.Config{}, Deps{
		Users:   application.NewUserService(newMemUsers(), jwt, nil, application.ProfileDefaults{}),
		Cards:   application.NewCardService(newMemCards(), nil),
		JWT:     jwt,
		Cookies: helpers.NewCookie("", false),
		DB:      okPinger{err: errors.New("down")},
	})
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAPIPrefix(t *testing.T) {
	jwt := helpers.NewJWTManager("k", time.Hour)
	engine := NewEngine(&config.Config{APIPrefix: "/api/"}, Deps{
		Users:   application.NewUserService(newMemUsers(), jwt, nil, application.ProfileDefaults{}),
		Cards:   application.NewCardService(newMemCards(), nil),
		JWT:     jwt,
		Cookies: helpers.NewCookie("", false),
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cards", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cards", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
