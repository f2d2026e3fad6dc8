package banner

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"motopartes/internal/database"
	"motopartes/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBannerRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.Connect("file:banner_routes?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	h := NewHandler(repository.NewBannerRepository(db))
	r := gin.New()
	h.RegisterPublicRoutes(r.Group(""))
	h.RegisterRoutes(r.Group("/dashboard"))

	post := func(body string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/dashboard/banners", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusCreated, post(`{"titulo":"Ofertas","imagen_url":"/b/1.png","orden":2}`))
	assert.Equal(t, http.StatusCreated, post(`{"titulo":"Nuevos","imagen_url":"/b/2.png","orden":1}`))
	assert.Equal(t, http.StatusCreated, post(`{"titulo":"Oculto","imagen_url":"/b/3.png","activo":false}`))
	assert.Equal(t, http.StatusUnprocessableEntity, post(`{"titulo":"Sin imagen"}`))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/banners", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Banners []BannerView `json:"banners"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Banners, 2)
	assert.Equal(t, "Nuevos", resp.Data.Banners[0].Titulo)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/dashboard/banners/42", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
