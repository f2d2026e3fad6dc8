package main

import (
	"context"
	"fmt"
	"time"

	"motopartes/internal/config"
	"motopartes/internal/database"
	"motopartes/internal/domain"
	"motopartes/internal/logger"
	"motopartes/internal/modules/auth"
	"motopartes/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(true); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	db, err := database.Connect(cfg.Database.URL, log)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	log.Info("cleaning old data")
	cleanup(db)

	if err := seed(context.Background(), db, log); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	log.Info("seed complete")
}

// cleanup empties the tables children first.
func cleanup(db *gorm.DB) {
	for _, table := range []string{
		"facturas", "reservas", "horarios", "servicios", "motos", "users",
		"productos", "subcategorias", "categorias", "banners", "moto_models",
	} {
		db.Exec("DELETE FROM " + table)
	}
}

func must(err error, what string) {
	if err != nil {
		panic(fmt.Sprintf("%s: %v", what, err))
	}
}

func seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	users := repository.NewUserRepository(db)
	garage := repository.NewGarageRepository(db)
	reservas := repository.NewReservaRepository(db)
	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db)
	banners := repository.NewBannerRepository(db)
	invoices := repository.NewInvoiceRepository(db)

	// ================== USERS ==================
	adminHash, err := auth.HashPassword("admin12345")
	if err != nil {
		return err
	}
	admin := &domain.User{FirstName: "Administrador", Email: "admin@motopartes.pe", PasswordHash: adminHash, Role: domain.RoleAdmin}
	must(users.Create(ctx, admin), "create admin")
	log.Info("admin created", zap.String("email", admin.Email), zap.String("password", "admin12345"))

	clientHash, err := auth.HashPassword("cliente123")
	if err != nil {
		return err
	}
	clients := []*domain.User{
		{FirstName: "Luis", LastName: "Rojas", Email: "luis@example.com"},
		{FirstName: "María", LastName: "Quispe", Email: "maria@example.com"},
		{FirstName: "Jorge", LastName: "Huamán", Email: "jorge@example.com"},
	}
	for _, c := range clients {
		c.PasswordHash = clientHash
		must(users.Create(ctx, c), "create client")
	}

	// ================== MOTO CATALOGUE ==================
	catalogue := []domain.MotoModel{
		{Anio: 2023, Marca: "Honda", Modelo: "CB190R"},
		{Anio: 2022, Marca: "Honda", Modelo: "CB190R"},
		{Anio: 2022, Marca: "Honda", Modelo: "XR150L"},
		{Anio: 2023, Marca: "Yamaha", Modelo: "FZ25"},
		{Anio: 2021, Marca: "Yamaha", Modelo: "YBR125"},
		{Anio: 2022, Marca: "Bajaj", Modelo: "Pulsar NS200"},
		{Anio: 2021, Marca: "Suzuki", Modelo: "Gixxer 150"},
	}
	for i := range catalogue {
		must(garage.CreateMotoModel(ctx, &catalogue[i]), "create moto model")
	}

	// ================== GARAGE ==================
	motos := make([]*domain.Moto, 0, len(clients))
	for i, c := range clients {
		m := &domain.Moto{UserID: c.ID, Anio: catalogue[i].Anio, Marca: catalogue[i].Marca, Modelo: catalogue[i].Modelo}
		must(garage.CreateMoto(ctx, m), "create moto")
		motos = append(motos, m)
	}

	servicios := []*domain.Servicio{
		{Nombre: "Mantenimiento general", Descripcion: "Revisión completa de 20 puntos", Precio: decimal.RequireFromString("120.00")},
		{Nombre: "Cambio de aceite", Descripcion: "Aceite y filtro", Precio: decimal.RequireFromString("45.00")},
		{Nombre: "Frenos", Descripcion: "Cambio de pastillas y purgado", Precio: decimal.RequireFromString("80.00")},
	}
	for _, s := range servicios {
		must(garage.CreateServicio(ctx, s), "create servicio")
	}

	horarios := []*domain.Horario{
		{Tipo: "Mañana", HoraInicio: "08:00", HoraFin: "12:00"},
		{Tipo: "Tarde", HoraInicio: "14:00", HoraFin: "18:00"},
	}
	for _, h := range horarios {
		must(garage.CreateHorario(ctx, h), "create horario")
	}

	// ================== RESERVAS ==================
	// Two per status, one of each pair without a horario.
	day := time.Now().AddDate(0, 0, -3)
	n := 0
	for _, status := range domain.ReservaStatuses {
		for k := 0; k < 2; k++ {
			c := n % len(clients)
			r := &domain.Reserva{
				UserID:     clients[c].ID,
				MotoID:     motos[c].ID,
				Placa:      fmt.Sprintf("%c%c%c-%03d", 'A'+n, 'B'+n, 'C'+n, 100+n),
				ServicioID: servicios[n%len(servicios)].ID,
				Fecha:      day.AddDate(0, 0, n).Format("2006-01-02"),
				Hora:       fmt.Sprintf("%02d:00", 9+n%8),
				Detalles:   "Ruido en la cadena",
				Estado:     status,
			}
			if k == 0 {
				r.HorarioID = &horarios[n%len(horarios)].ID
			}
			must(reservas.Create(ctx, r), "create reserva")
			n++
		}
	}
	log.Info("reservas created", zap.Int("count", n))

	// ================== CATEGORIES ==================
	cats := map[string][]string{
		"Frenos":      {"Pastillas", "Discos"},
		"Lubricantes": {"Aceites", "Grasas"},
		"Transmisión": {"Cadenas", "Piñones"},
	}
	subIDs := map[string]int64{}
	for _, name := range []string{"Frenos", "Lubricantes", "Transmisión"} {
		cat := &domain.Categoria{Nombre: name, Estado: domain.CategoryActive}
		must(categories.CreateCategoria(ctx, cat), "create categoria")
		for _, subName := range cats[name] {
			sub := &domain.Subcategoria{Nombre: subName, CategoriaID: cat.ID, Estado: domain.CategoryActive}
			must(categories.CreateSubcategoria(ctx, sub), "create subcategoria")
			subIDs[subName] = sub.ID
		}
	}

	// ================== PRODUCTS ==================
	sub := func(name string) *int64 {
		id := subIDs[name]
		return &id
	}
	items := []*domain.Product{
		{
			Codigo: "FR-001", Nombre: "Pastillas de freno delanteras", Precio: decimal.RequireFromString("19.99"),
			Descuento: 15, Stock: 24, Estado: domain.ProductActive, ImagenPrincipal: "/images/productos/fr-001.png",
			ImagenesAdicionales: []domain.AdditionalImage{
				{URL: "/images/productos/fr-001-lateral.png", Estilo: "Lateral"},
				{URL: "/images/productos/fr-001-caja.png"},
			},
			Destacado: true, SubcategoriaID: sub("Pastillas"),
		},
		{
			Codigo: "FR-002", Nombre: "Disco de freno 220mm", Precio: decimal.RequireFromString("135.00"),
			Stock: 6, Estado: domain.ProductActive, MasVendido: true, SubcategoriaID: sub("Discos"),
		},
		{
			Codigo: "LU-001", Nombre: "Aceite 10W40 semisintético 1L", Precio: decimal.RequireFromString("32.50"),
			Descuento: 10, Stock: 60, Estado: domain.ProductActive, ImagenPrincipal: "/images/productos/lu-001.png",
			Destacado: true, MasVendido: true, SubcategoriaID: sub("Aceites"),
		},
		{
			Codigo: "TR-001", Nombre: "Kit de arrastre 428", Precio: decimal.RequireFromString("189.90"),
			Stock: 0, Estado: domain.ProductOutOfStock, SubcategoriaID: sub("Cadenas"),
		},
		{
			Codigo: "TR-002", Nombre: "Piñón 14T", Precio: decimal.RequireFromString("28.00"),
			Stock: 15, Estado: domain.ProductInactive, SubcategoriaID: sub("Piñones"),
		},
	}
	for _, p := range items {
		must(products.Create(ctx, p), "create producto")
	}

	// ================== BANNERS ==================
	for i, b := range []*domain.Banner{
		{Titulo: "Temporada de mantenimiento", ImagenURL: "/images/banners/mantenimiento.png", Enlace: "/productos", Activo: true},
		{Titulo: "Frenos con 15% de descuento", ImagenURL: "/images/banners/frenos.png", Enlace: "/productos?q=freno", Activo: true},
		{Titulo: "Campaña anterior", ImagenURL: "/images/banners/anterior.png"},
	} {
		b.Orden = i + 1
		must(banners.Create(ctx, b), "create banner")
	}

	// ================== INVOICES ==================
	for i, estado := range []domain.FacturaStatus{domain.FacturaPending, domain.FacturaPending, domain.FacturaPaid, domain.FacturaCancelled} {
		f := &domain.Factura{
			Numero:       fmt.Sprintf("F001-%05d", i+1),
			Cliente:      clients[i%len(clients)].DisplayName(),
			Total:        decimal.NewFromInt(int64(45 + 40*i)),
			Estado:       estado,
			FechaEmision: day.AddDate(0, 0, i),
		}
		must(invoices.Create(ctx, f), "create factura")
	}

	return nil
}
