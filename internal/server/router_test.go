package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"motopartes/internal/cache"
	"motopartes/internal/dashboard"
	"motopartes/internal/database"
	"motopartes/internal/domain"
	"motopartes/internal/modules/auth"
	"motopartes/internal/modules/catalog"
	"motopartes/internal/modules/finder"
	jwtsvc "motopartes/internal/pkg/jwt"
	"motopartes/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type suite struct {
	db      *gorm.DB
	srv     *httptest.Server
	reserva []int64
	product int64
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect("file:router_"+t.Name()+"?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	s := &suite{db: db}
	s.seed(t)

	r := NewRouter(Deps{
		DB:           db,
		JWT:          jwtsvc.New("test-secret", time.Hour),
		ProductCache: cache.NewMemory(),
		CacheTTL:     time.Minute,
	})
	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *suite) seed(t *testing.T) {
	ctx := context.Background()
	users := repository.NewUserRepository(s.db)

	hash, err := auth.HashPassword("admin12345")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &domain.User{FirstName: "Admin", Email: "admin@motopartes.pe", PasswordHash: hash, Role: domain.RoleAdmin}))

	hash, err = auth.HashPassword("cliente123")
	require.NoError(t, err)
	customer := &domain.User{FirstName: "Luis", LastName: "Rojas", Email: "luis@example.com", PasswordHash: hash}
	require.NoError(t, users.Create(ctx, customer))

	garage := repository.NewGarageRepository(s.db)
	moto := &domain.Moto{UserID: customer.ID, Anio: 2022, Marca: "Honda", Modelo: "CB190R"}
	require.NoError(t, garage.CreateMoto(ctx, moto))
	svc := &domain.Servicio{Nombre: "Cambio de aceite", Precio: decimal.RequireFromString("45.00")}
	require.NoError(t, garage.CreateServicio(ctx, svc))
	require.NoError(t, garage.CreateMotoModel(ctx, &domain.MotoModel{Anio: 2022, Marca: "Honda", Modelo: "CB190R"}))

	reservas := repository.NewReservaRepository(s.db)
	for _, fecha := range []string{"2025-03-10", "2025-03-11"} {
		res := &domain.Reserva{UserID: customer.ID, MotoID: moto.ID, ServicioID: svc.ID, Placa: "ABC-123", Fecha: fecha, Hora: "10:00"}
		require.NoError(t, reservas.Create(ctx, res))
		s.reserva = append(s.reserva, res.ID)
	}

	p := &domain.Product{Codigo: "FR-001", Nombre: "Pastillas de freno", Precio: decimal.RequireFromString("19.99"), Descuento: 15, Stock: 4, Estado: domain.ProductActive}
	require.NoError(t, repository.NewProductRepository(s.db).Create(ctx, p))
	s.product = p.ID
}

func (s *suite) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, s.srv.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_DashboardRequiresAdmin(t *testing.T) {
	s := setupSuite(t)

	assert.Equal(t, http.StatusUnauthorized, s.get(t, "/dashboard/reservas", "").StatusCode)

	customer := dashboard.NewClient(s.srv.URL, s.srv.Client())
	session, err := customer.Login(context.Background(), "luis@example.com", "cliente123")
	require.NoError(t, err)
	require.Len(t, session.RedirectOptions, 1)
	assert.Equal(t, http.StatusForbidden, s.get(t, "/dashboard/reservas", session.Token).StatusCode)
	assert.Equal(t, http.StatusOK, s.get(t, "/auth/me", session.Token).StatusCode)

	_, err = customer.Login(context.Background(), "luis@example.com", "wrong-password")
	require.Error(t, err)

	assert.Equal(t, http.StatusOK, s.get(t, "/health", "").StatusCode)
}

func TestRouter_ReservationWorkflow(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	client := dashboard.NewClient(s.srv.URL, s.srv.Client())
	session, err := client.Login(ctx, "admin@motopartes.pe", "admin12345")
	require.NoError(t, err)
	assert.Len(t, session.RedirectOptions, 2)

	board := dashboard.NewBoard(client)
	pending := board.View(domain.ReservaPending)
	confirmed := board.View(domain.ReservaConfirmed)
	require.NoError(t, pending.Load(ctx))
	require.NoError(t, confirmed.Load(ctx))
	require.Len(t, pending.Rows(), 2)
	assert.Empty(t, confirmed.Rows())

	row := pending.Rows()[0]
	assert.Equal(t, "Honda CB190R 2022", row.Vehiculo)
	assert.Equal(t, "Sin horario", row.HorarioLabel)

	// a second operator's page, loaded before the move below
	stale := dashboard.NewReservationView(client, domain.ReservaPending)
	require.NoError(t, stale.Load(ctx))

	first := s.reserva[0]
	notice, err := board.SetStatus(ctx, domain.ReservaPending, first, domain.ReservaConfirmed)
	require.NoError(t, err)
	assert.True(t, notice.OK())
	assert.Len(t, pending.Rows(), 1)
	require.Len(t, confirmed.Rows(), 1)
	assert.Equal(t, first, confirmed.Rows()[0].ID)

	_, _, err = stale.SetStatus(ctx, first, domain.ReservaConfirmed)
	require.Error(t, err)
	assert.True(t, dashboard.IsConflict(err))
	require.Len(t, stale.Rows(), 1)
	assert.Equal(t, s.reserva[1], stale.Rows()[0].ID)

	got, err := repository.NewReservaRepository(s.db).GetByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservaConfirmed, got.Estado)

	resp := s.get(t, "/dashboard/stats", session.Token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		Data struct {
			TotalClientes      int64 `json:"total_clientes"`
			ReservasPendientes int64 `json:"reservas_pendientes"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, int64(1), stats.Data.TotalClientes)
	assert.Equal(t, int64(1), stats.Data.ReservasPendientes)
}

func TestRouter_InventoryDelete(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	client := dashboard.NewClient(s.srv.URL, s.srv.Client())
	_, err := client.Login(ctx, "admin@motopartes.pe", "admin12345")
	require.NoError(t, err)

	inv := dashboard.NewInventoryView(client)
	require.NoError(t, inv.Search(ctx, "freno"))
	props := inv.Props()
	require.Len(t, props.Productos, 1)
	assert.Equal(t, "1 producto registrado", props.CountLabel)
	assert.Equal(t, "15% descuento", props.Productos[0].Discount.Label)

	require.True(t, inv.ConfirmDelete(s.product))
	notice, err := inv.Delete(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.MsgDeleted, notice.Message)

	require.NoError(t, inv.Search(ctx, ""))
	assert.Equal(t, catalog.EmptyListMessage, inv.Props().EmptyMessage)

	resp := s.get(t, "/productos/"+strconv.FormatInt(s.product, 10), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_FinderSearch(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()
	client := dashboard.NewClient(s.srv.URL, s.srv.Client())

	form, err := dashboard.LoadFinderForm(ctx, client, "visitor-42")
	require.NoError(t, err)
	require.NoError(t, form.SetYear(2022))
	require.NoError(t, form.SetBrand("Honda"))
	require.NoError(t, form.SetModel("CB190R"))

	res, notice, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.True(t, notice.OK())
	assert.Equal(t, "/resultados?brand=Honda&model=CB190R&year=2022", res.Redirect)

	req, err := http.NewRequest(http.MethodGet, s.srv.URL+"/moto-finder/recent", nil)
	require.NoError(t, err)
	req.Header.Set(finder.HeaderVisitorID, "visitor-42")
	resp, err := s.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Data struct {
			Recent finder.RecentSearches `json:"recent"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data.Recent, 1)
	assert.Equal(t, 2022, body.Data.Recent[0].Year)
}
