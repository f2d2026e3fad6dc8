package repository

import (
	"context"
	"time"

	"motopartes/internal/domain"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

type BannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

type bannerModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Titulo    string    `gorm:"column:titulo;not null"`
	ImagenURL string    `gorm:"column:imagen_url;not null"`
	Enlace    string    `gorm:"column:enlace"`
	Orden     int       `gorm:"column:orden;not null;default:0"`
	Activo    bool      `gorm:"column:activo;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (bannerModel) TableName() string { return "banners" }

func toDomainBanner(m bannerModel) domain.Banner {
	return domain.Banner{
		ID:        m.ID,
		Titulo:    m.Titulo,
		ImagenURL: m.ImagenURL,
		Enlace:    m.Enlace,
		Orden:     m.Orden,
		Activo:    m.Activo,
		CreatedAt: m.CreatedAt,
	}
}

func (r *BannerRepository) Create(ctx context.Context, b *domain.Banner) error {
	m := bannerModel{Titulo: b.Titulo, ImagenURL: b.ImagenURL, Enlace: b.Enlace, Orden: b.Orden, Activo: b.Activo}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "create banner")
	}
	*b = toDomainBanner(m)
	return nil
}

// List returns banners ordered for the carousel. With activeOnly set,
// inactive banners are left out.
func (r *BannerRepository) List(ctx context.Context, activeOnly bool) ([]domain.Banner, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("activo = ?", true)
	}
	var rows []bannerModel
	if err := q.Order("orden").Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err, "list banners")
	}
	out := make([]domain.Banner, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainBanner(m))
	}
	return out, nil
}

func (r *BannerRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bannerModel{}, id)
	if tx.Error != nil {
		return translate(tx.Error, "delete banner")
	}
	if tx.RowsAffected == 0 {
		return errors.Wrapf(ErrNotFound, "banner %d", id)
	}
	return nil
}
