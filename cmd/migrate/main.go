package main

import (
	"log"

	"github.com/chainvoice/chainvoice/internal/config"
	"github.com/chainvoice/chainvoice/internal/logger"
	"github.com/chainvoice/chainvoice/internal/repository/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
	id                 TEXT PRIMARY KEY,
	number             TEXT NOT NULL,
	client_name        TEXT NOT NULL,
	client_email       TEXT NOT NULL,
	client_address     TEXT NOT NULL DEFAULT '',
	items              JSONB NOT NULL DEFAULT '[]',
	notes              TEXT NOT NULL DEFAULT '',
	terms              TEXT NOT NULL DEFAULT '',
	due_date           TIMESTAMPTZ NOT NULL,
	status             TEXT NOT NULL,
	total_amount       NUMERIC(24, 8) NOT NULL DEFAULT 0,
	payment_address    TEXT NOT NULL DEFAULT '',
	payment_token_type TEXT NOT NULL DEFAULT 'ETH',
	paid_at            TIMESTAMPTZ,
	transaction_hash   TEXT NOT NULL DEFAULT '',
	user_id            TEXT NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_invoices_user_id ON invoices (user_id);
CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices (status);
CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices (created_at DESC);

CREATE TABLE IF NOT EXISTS transactions (
	id           TEXT PRIMARY KEY,
	amount       NUMERIC(24, 8) NOT NULL DEFAULT 0,
	token_type   TEXT NOT NULL DEFAULT 'ETH',
	from_address TEXT NOT NULL,
	to_address   TEXT NOT NULL,
	hash         TEXT NOT NULL,
	status       TEXT NOT NULL,
	block_number BIGINT,
	invoice_id   TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	network_id   BIGINT NOT NULL,
	user_id      TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions (user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_hash_network ON transactions (hash, network_id);
CREATE INDEX IF NOT EXISTS idx_transactions_invoice_id ON transactions (invoice_id);
`

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	db, err := postgres.NewClient(cfg, logg)
	if err != nil {
		logg.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		logg.Fatalf("failed to apply schema: %v", err)
	}

	logg.Infow("schema applied")
}
