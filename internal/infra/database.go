package infra

import (
	"fmt"

	"obranza/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// GORM cannot express (partial indexes).
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates/updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.EmailPermitido{},
		&model.Sesion{},
		&model.TokenVerificacion{},
		&model.TokenReset{},
		&model.Cliente{},
		&model.Proyecto{},
		&model.Rubro{},
		&model.MovimientoCaja{},
		&model.MovimientoCajaProyecto{},
		&model.MovimientoCuenta{},
		&model.Presupuesto{},
		&model.PresupuestoItem{},
		&model.Documento{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the pending-reset invalidation query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_token_resets_pendientes') THEN
		    CREATE INDEX idx_token_resets_pendientes
		        ON token_resets (usuario_id)
		        WHERE usado = false;
		  END IF;
		END $$`,
		// Case-insensitive uniqueness for user and allow-list emails
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_usuarios_email_lower') THEN
		    CREATE UNIQUE INDEX idx_usuarios_email_lower ON usuarios (LOWER(email));
		  END IF;
		END $$`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_emails_permitidos_lower') THEN
		    CREATE UNIQUE INDEX idx_emails_permitidos_lower ON email_permitidos (LOWER(email));
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
