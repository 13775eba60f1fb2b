package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/internal/api/handlers"
	"QR-Menu-Backend/internal/api/routes"
	"QR-Menu-Backend/internal/middleware"
	"QR-Menu-Backend/internal/testutil"
	"QR-Menu-Backend/internal/utils"
	"QR-Menu-Backend/internal/utils/storage"
	"QR-Menu-Backend/pkg/jwt"
	"QR-Menu-Backend/pkg/menu"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type api struct {
	t     *testing.T
	app   *fiber.App
	jwt   jwt.JWTService
	store *storage.MemoryStorage
}

func newAPI(t *testing.T) *api {
	utils.InitValidator()

	store := storage.NewMemoryStorage("https://cdn.example.com")
	jwtService := jwt.NewJWTServiceWithSecret("test-secret")
	service := menu.NewMenuService(
		menu.NewMenuRepository(testutil.NewTestDB(t)),
		store,
		testutil.NewQRGenerator(t),
		"https://menu.example.com",
	)

	app := fiber.New()
	cfg := routes.Config{
		App:         app,
		MenuHandler: handlers.NewMenuHandler(service, utils.Validate),
		Middleware:  middleware.NewMiddleware(),
		JWTService:  jwtService,
	}
	cfg.Setup()

	return &api{t: t, app: app, jwt: jwtService, store: store}
}

func (a *api) token(userID string) string {
	return a.jwt.GenerateTokenUser(userID, domain.RoleOwner)
}

func (a *api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestPing(t *testing.T) {
	a := newAPI(t)
	resp, err := a.app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMenusRequireToken(t *testing.T) {
	a := newAPI(t)

	status, env := a.do(http.MethodGet, "/api/v1/menus", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Status)

	status, _ = a.do(http.MethodGet, "/api/v1/menus", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestMenuFlow(t *testing.T) {
	a := newAPI(t)
	owner := a.token(uuid.NewString())

	status, env := a.do(http.MethodPost, "/api/v1/menus", owner, domain.CreateMenuRequest{Name: "Bistro", Title: "Lunch"})
	require.Equal(t, http.StatusCreated, status, env.Error)
	created := decode[domain.MenuResponse](t, env)
	base := "/api/v1/menus/" + created.ID

	status, env = a.do(http.MethodGet, "/api/v1/menus", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]domain.MenuResponse](t, env), 1)

	status, env = a.do(http.MethodPost, base+"/publish", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, domain.PublishMenuResponse{Success: false, PublishStatus: domain.PublishStatusNoSections},
		decode[domain.PublishMenuResponse](t, env))

	status, env = a.do(http.MethodPut, base+"/sections", owner, domain.EditMenuSectionsRequest{
		Sections: []domain.SectionInput{{Name: "Food"}},
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	sections := decode[domain.MenuSectionsResponse](t, env)
	require.Len(t, sections.Sections, 1)

	status, env = a.do(http.MethodPost, base+"/products", owner, domain.AddProductRequest{
		SectionID: sections.Sections[0].ID,
		Name:      "Soup",
		Price:     500,
		Image:     testutil.PNGUpload(t, "soup.png"),
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	product := decode[domain.ProductResponse](t, env)
	assert.Equal(t, "Soup", product.Name)

	status, env = a.do(http.MethodGet, "/api/v1/public/menus/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = a.do(http.MethodPost, base+"/publish", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decode[domain.PublishMenuResponse](t, env).Success)

	status, _ = a.do(http.MethodPost, base+"/publish", owner, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = a.do(http.MethodGet, "/api/v1/public/menus/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, status)
	public := decode[domain.PublicMenuResponse](t, env)
	assert.Equal(t, "Lunch", public.Title)
	require.Len(t, public.Sections, 1)
	assert.Len(t, public.Sections[0].Products, 1)

	status, env = a.do(http.MethodGet, base+"/products/abc", owner, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = a.do(http.MethodGet, base+"/products/9999", owner, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = a.do(http.MethodPost, base+"/unpublish", owner, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = a.do(http.MethodGet, base+"/properties", owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[domain.MenuPropertiesResponse](t, env).IsPublic)

	status, _ = a.do(http.MethodDelete, base, owner, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Zero(t, a.store.Len())

	status, _ = a.do(http.MethodGet, base+"/properties", owner, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMenuErrors(t *testing.T) {
	a := newAPI(t)
	owner := a.token(uuid.NewString())

	status, env := a.do(http.MethodPost, "/api/v1/menus", owner, domain.CreateMenuRequest{Name: "Bistro", Title: "Lunch"})
	require.Equal(t, http.StatusCreated, status)
	base := "/api/v1/menus/" + decode[domain.MenuResponse](t, env).ID

	t.Run("validation", func(t *testing.T) {
		status, _ := a.do(http.MethodPost, "/api/v1/menus", owner, domain.CreateMenuRequest{Name: "no title"})
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("other owner", func(t *testing.T) {
		status, _ := a.do(http.MethodGet, base+"/sections", a.token(uuid.NewString()), nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("unknown section", func(t *testing.T) {
		status, env := a.do(http.MethodPost, base+"/products", owner, domain.AddProductRequest{
			SectionID: 9999, Name: "Ghost", Image: testutil.PNGUpload(t, "g.png"),
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, env.Error, "section does not exist")
	})

	t.Run("invalid image", func(t *testing.T) {
		upload := testutil.PNGUpload(t, "bg.png")
		upload.Type = "image/jpeg"
		status, _ := a.do(http.MethodPut, base+"/properties", owner, domain.EditMenuPropertiesRequest{
			Title: "Lunch", Image: upload,
		})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
