package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/pos-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/pos-dashboard-api/internal/config"
	"github.com/vfg2006/pos-dashboard-api/internal/domain"
	"github.com/vfg2006/pos-dashboard-api/internal/usecases/authenticating"
)

const (
	tokenLength = 32
	characters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id            BIGSERIAL PRIMARY KEY,
		tenant_id     BIGINT        NOT NULL,
		name          TEXT          NOT NULL,
		code          TEXT          NOT NULL DEFAULT '',
		current_stock NUMERIC(14,3) NOT NULL DEFAULT 0,
		sale_price    NUMERIC(14,2) NOT NULL DEFAULT 0,
		active        BOOLEAN       NOT NULL DEFAULT TRUE,
		deleted_at    TIMESTAMPTZ,
		created_at    TIMESTAMPTZ   NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id         BIGSERIAL PRIMARY KEY,
		tenant_id  BIGINT        NOT NULL,
		total      NUMERIC(14,2) NOT NULL,
		items      JSONB         NOT NULL DEFAULT '[]',
		active     BOOLEAN       NOT NULL DEFAULT TRUE,
		deleted_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_movements (
		id         BIGSERIAL PRIMARY KEY,
		tenant_id  BIGINT        NOT NULL,
		type       TEXT          NOT NULL,
		cost_total NUMERIC(14,2) NOT NULL,
		quantity   NUMERIC(14,3) NOT NULL DEFAULT 0,
		product_id BIGINT,
		active     BOOLEAN       NOT NULL DEFAULT TRUE,
		deleted_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id          BIGSERIAL PRIMARY KEY,
		tenant_id   BIGINT        NOT NULL,
		amount      NUMERIC(14,2) NOT NULL,
		description TEXT          NOT NULL DEFAULT '',
		active      BOOLEAN       NOT NULL DEFAULT TRUE,
		deleted_at  TIMESTAMPTZ,
		created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS access_tokens (
		id           BIGSERIAL PRIMARY KEY,
		tenant_id    BIGINT      NOT NULL,
		user_id      BIGINT      NOT NULL,
		token_hash   TEXT        NOT NULL,
		purpose      TEXT        NOT NULL,
		expires_at   TIMESTAMPTZ NOT NULL,
		uses_count   INTEGER     NOT NULL DEFAULT 0,
		last_used_at TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS closes (
		id                 BIGSERIAL PRIMARY KEY,
		tenant_id          BIGINT        NOT NULL,
		period_start       TIMESTAMPTZ   NOT NULL,
		period_end         TIMESTAMPTZ   NOT NULL,
		period_type        TEXT          NOT NULL,
		sales_total        NUMERIC(14,2) NOT NULL,
		purchases_total    NUMERIC(14,2) NOT NULL,
		consumption_total  NUMERIC(14,2) NOT NULL,
		expenses_total     NUMERIC(14,2) NOT NULL,
		net_profit         NUMERIC(14,2) NOT NULL,
		expected_cash      NUMERIC(14,2) NOT NULL,
		counted_cash       NUMERIC(14,2) NOT NULL,
		cash_variance      NUMERIC(14,2) NOT NULL,
		expected_inventory NUMERIC(14,3) NOT NULL,
		counted_inventory  NUMERIC(14,3) NOT NULL,
		inventory_variance NUMERIC(14,3) NOT NULL,
		balanced           BOOLEAN       NOT NULL,
		notes              TEXT          NOT NULL DEFAULT '',
		created_by         BIGINT        NOT NULL,
		created_at         TIMESTAMPTZ   NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS sales_tenant_created_idx ON sales (tenant_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS movements_tenant_type_created_idx ON inventory_movements (tenant_id, type, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS expenses_tenant_created_idx ON expenses (tenant_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS access_tokens_expires_idx ON access_tokens (expires_at)`,
}

type uniqueConstraint struct {
	table   string
	name    string
	columns string
}

var constraints = []uniqueConstraint{
	{table: "access_tokens", name: "access_tokens_token_hash_unique", columns: "token_hash"},
	{table: "closes", name: "closes_tenant_period_unique", columns: "tenant_id, period_start, period_end"},
}

func setupLogger() {
	// Configura o logger para incluir data, hora e arquivo
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func createTables(ctx context.Context, tx *sql.Tx) error {
	log.Printf("Criando %d tabelas e índices...", len(schema))
	startTime := time.Now()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	log.Printf("Tabelas criadas em %v", time.Since(startTime))
	return nil
}

func addUniqueConstraint(ctx context.Context, tx *sql.Tx, c uniqueConstraint) error {
	log.Printf("Adicionando constraint UNIQUE (%s) na tabela %s...", c.columns, c.table)

	// Verificar se a constraint já existe
	var constraintExists bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE table_name = $1
			AND constraint_type = 'UNIQUE'
			AND constraint_name = $2
		)
	`, c.table, c.name).Scan(&constraintExists)
	if err != nil {
		return err
	}

	if constraintExists {
		log.Printf("Constraint %s já existe", c.name)
		return nil
	}

	_, err = tx.ExecContext(ctx, "ALTER TABLE "+c.table+" ADD CONSTRAINT "+c.name+" UNIQUE ("+c.columns+")")
	if err != nil {
		return err
	}

	log.Printf("Constraint %s adicionada com sucesso", c.name)
	return nil
}

// seedAccessToken emite um token de acesso ao dashboard para desenvolvimento local
func seedAccessToken(ctx context.Context, tx *sql.Tx, tenantID, userID int64, ttl time.Duration) error {
	token, err := gonanoid.Generate(characters, tokenLength)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO access_tokens (tenant_id, user_id, token_hash, purpose, expires_at) VALUES ($1, $2, $3, $4, $5)`,
		tenantID, userID, authenticating.HashToken(token), domain.DashboardAccessPurpose, time.Now().Add(ttl),
	)
	if err != nil {
		return err
	}

	log.Printf("Token de acesso emitido para tenant %d (válido por %v): %s", tenantID, ttl, token)
	return nil
}

func main() {
	seedTenant := flag.Int64("seed-tenant", 0, "emite um token de acesso para este tenant")
	seedUser := flag.Int64("seed-user", 1, "usuário dono do token emitido")
	seedTTL := flag.Duration("seed-ttl", 24*time.Hour, "validade do token emitido")
	flag.Parse()

	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Conectando ao banco de dados...")
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer conn.Close()

	startTime := time.Now()
	log.Println("Iniciando transação...")

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := createTables(ctx, tx); err != nil {
			return err
		}

		for _, c := range constraints {
			if err := addUniqueConstraint(ctx, tx, c); err != nil {
				return err
			}
		}

		if *seedTenant > 0 {
			return seedAccessToken(ctx, tx, *seedTenant, *seedUser, *seedTTL)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("ERRO na migração, transação revertida: %v", err)
	}

	log.Printf("Migração concluída em %v!", time.Since(startTime))
}
