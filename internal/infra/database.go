package infra

import (
	"fmt"

	"comercial/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. Schema changes are
// applied separately by RunMigrations so the server and the seeder share them.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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

	return db, nil
}

// RunMigrations creates / updates every table with AutoMigrate and then
// applies the idempotent patches GORM cannot express.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto: %w", err)
	}
	if err := db.AutoMigrate(
		&model.Permiso{},
		&model.Rol{},
		&model.Usuario{},
		&model.Categoria{},
		&model.Producto{},
		&model.Proveedor{},
		&model.Cliente{},
		&model.Compra{},
		&model.DetalleCompra{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.Auditoria{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs DDL that AutoMigrate cannot produce. Each statement
// is guarded so re-running on an already-patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Lookups by email and category name are case-insensitive.
		{"usuarios lower(email)",
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_usuarios_email_lower ON usuarios (LOWER(email))`},
		{"categorias lower(nombre)",
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_categorias_nombre_lower ON categorias (LOWER(nombre))`},
		{"auditorias tipo/fecha",
			`CREATE INDEX IF NOT EXISTS idx_auditorias_tipo_fecha ON auditorias (tipo, fecha DESC)`},
		// Stored totals are never negative: every line subtotal is >= 0.
		{"compras total >= 0", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_compras_total') THEN
    ALTER TABLE compras ADD CONSTRAINT chk_compras_total CHECK (total >= 0);
  END IF;
END $$`},
		{"ventas total >= 0", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_ventas_total') THEN
    ALTER TABLE ventas ADD CONSTRAINT chk_ventas_total CHECK (total >= 0);
  END IF;
END $$`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
