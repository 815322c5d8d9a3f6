package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/arshprem01/flower-eCommerce/internal/cart"
	"github.com/arshprem01/flower-eCommerce/internal/catalog"
	"github.com/arshprem01/flower-eCommerce/internal/kvstore"
	"github.com/arshprem01/flower-eCommerce/internal/search"
	"github.com/arshprem01/flower-eCommerce/internal/session"
)

const (
	testPassword = "omkar2024"
	testVisitor  = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
)

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	Store   *kvstore.Memory
	Catalog *catalog.Service
	Cart    *cart.Service
	Session *session.Service
	P       *ProductHandler
	C       *CartHandler
	A       *AuthHandler
	Secret  []byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := kvstore.NewMemory()
	catalogSvc := catalog.New(store)
	cartSvc := cart.New(store)
	sessionSvc, err := session.New(context.Background(), store, testPassword, "")
	require.NoError(t, err)

	secret := []byte("test-secret")
	env := &testEnv{
		T:       t,
		E:       echo.New(),
		Store:   store,
		Catalog: catalogSvc,
		Cart:    cartSvc,
		Session: sessionSvc,
		Secret:  secret,
	}
	env.P = &ProductHandler{
		Catalog: catalogSvc,
		Search:  &search.Service{Catalog: catalogSvc},
	}
	env.C = &CartHandler{Cart: cartSvc, Catalog: catalogSvc}
	env.A = &AuthHandler{Svc: sessionSvc, JWTSecret: secret}
	return env
}

func (env *testEnv) doJSONRequest(method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, *http.Request, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, req, c
}

func (env *testEnv) asVisitor(c echo.Context) {
	c.Set("visitor_id", testVisitor)
}

func (env *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec, _, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/login", map[string]string{"password": testPassword})
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	res := rec.Result()
	defer res.Body.Close()
	for _, ck := range res.Cookies() {
		if ck.Name == adminCookie {
			return ck
		}
	}
	t.Fatal("admin cookie not set")
	return nil
}
