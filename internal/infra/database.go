package infra

import (
	"fmt"

	"mrpestoque/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the schema.
// TranslateError is on so unique violations come back as gorm.ErrDuplicatedKey.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the tables owned by this service.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Componente{}, &model.MovimentoEstoque{}); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}

// ComponentesIniciais is the stock the system ships with.
func ComponentesIniciais() []model.Componente {
	return []model.Componente{
		{Name: "Rodas", StockQuantity: 10},
		{Name: "Quadros", StockQuantity: 5},
		{Name: "Guidões", StockQuantity: 10},
		{Name: "Gabinetes", StockQuantity: 2},
		{Name: "Placas-mãe", StockQuantity: 5},
		{Name: "Memórias RAM", StockQuantity: 6},
	}
}
