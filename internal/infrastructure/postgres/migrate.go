package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // driver pgx para database/sql
	"github.com/pressly/goose/v3"
)

// Migrate aplica las migraciones pendientes contra la base de datos.
// goose requiere *sql.DB, así que abre una conexión propia y la cierra al
// terminar; el pool pgx del servidor es independiente.
func Migrate(ctx context.Context, dsn string, fsys fs.FS) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("migrate: abrir conexión: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("migrate: ping: %w", err)
	}

	// goose.NewProvider maneja correctamente funciones PL/pgSQL delimitadas
	// con $$, a diferencia del goose.Up clásico.
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("migrate: provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: up: %w", err)
	}
	return nil
}
