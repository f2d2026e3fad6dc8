package repository

import (
	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&userModel{},
		&motoModel{},
		&servicioModel{},
		&horarioModel{},
		&reservaModel{},
		&categoriaModel{},
		&subcategoriaModel{},
		&productModel{},
		&bannerModel{},
		&facturaModel{},
		&motoCatalogModel{},
	)
	return errors.Wrap(err, "auto migrate")
}
