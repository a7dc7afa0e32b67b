package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ConnectivityTimeout bounds the connectivity check.
const ConnectivityTimeout = 5 * time.Second

type schemaStep struct {
	name  string
	query string
}

var createSteps = []schemaStep{
	{"create table account", `
		CREATE TABLE IF NOT EXISTS "account" (
			"accountId" BIGINT GENERATED BY DEFAULT AS IDENTITY (START WITH 1000 INCREMENT BY 1) NOT NULL,
			"name" VARCHAR(50) NOT NULL,
			"number" VARCHAR(20) NOT NULL,
			"code" VARCHAR(4) NOT NULL,
			CONSTRAINT "PK_account_accountId" PRIMARY KEY ("accountId")
		)`},
	{"create table statement", `
		CREATE TABLE IF NOT EXISTS "statement" (
			"statementId" BIGINT GENERATED BY DEFAULT AS IDENTITY (START WITH 1000 INCREMENT BY 1) NOT NULL,
			"number" VARCHAR(20) NOT NULL,
			"period" VARCHAR(20) NOT NULL,
			"description" VARCHAR(1000) NULL,
			CONSTRAINT "PK_statement_statementId" PRIMARY KEY ("statementId")
		)`},
	{"create table transactionType", `
		CREATE TABLE IF NOT EXISTS "transactionType" (
			"trxTypeId" BIGINT GENERATED BY DEFAULT AS IDENTITY (START WITH 1000 INCREMENT BY 1) NOT NULL,
			"type" VARCHAR(20) NOT NULL,
			"code" INT NOT NULL,
			CONSTRAINT "PK_transactionType_trxTypeId" PRIMARY KEY ("trxTypeId")
		)`},
	{"create table transaction", `
		CREATE TABLE IF NOT EXISTS "transaction" (
			"trxId" BIGINT GENERATED BY DEFAULT AS IDENTITY (START WITH 1000 INCREMENT BY 1) NOT NULL,
			"amount" NUMERIC(19, 2) NOT NULL,
			"currency" VARCHAR(3) NOT NULL,
			"id" VARCHAR(20) NOT NULL,
			"bankref" VARCHAR(20) NOT NULL,
			"transactionId" VARCHAR(20) NULL,
			"bookingDate" DATE NULL,
			"postingDate" DATE NULL,
			"creditDebitIndicator" VARCHAR(4) NULL,
			"ownAccountNumber" VARCHAR(20) NULL,
			"counterPartyAccount" BIGINT NOT NULL,
			"detail1" VARCHAR(50) NULL,
			"detail2" VARCHAR(50) NULL,
			"detail3" VARCHAR(50) NULL,
			"detail4" VARCHAR(50) NULL,
			"productBankRef" VARCHAR(50) NULL,
			"transactionType" BIGINT NOT NULL,
			"statement" BIGINT NOT NULL,
			"constantSymbol" VARCHAR(10) NULL,
			"specificSymbol" VARCHAR(10) NULL,
			"variableSymbol" VARCHAR(10) NULL,
			CONSTRAINT "PK_transaction_trxId" PRIMARY KEY ("trxId")
		)`},
	{"add foreign key FK_transaction_counterPartyAccount", addForeignKey(
		"FK_transaction_counterPartyAccount", "counterPartyAccount", "account", "accountId")},
	{"add foreign key FK_transaction_transactionType", addForeignKey(
		"FK_transaction_transactionType", "transactionType", "transactionType", "trxTypeId")},
	{"add foreign key FK_transaction_statement", addForeignKey(
		"FK_transaction_statement", "statement", "statement", "statementId")},
}

// Dependents go before the tables they reference.
var dropSteps = []schemaStep{
	{"drop table transaction", `DROP TABLE IF EXISTS "transaction"`},
	{"drop table transactionType", `DROP TABLE IF EXISTS "transactionType"`},
	{"drop table statement", `DROP TABLE IF EXISTS "statement"`},
	{"drop table account", `DROP TABLE IF EXISTS "account"`},
}

// addForeignKey builds an idempotent ALTER TABLE on the transaction table.
// Postgres has no ADD CONSTRAINT IF NOT EXISTS, so the constraint catalog is
// checked first.
func addForeignKey(name, column, refTable, refColumn string) string {
	return fmt.Sprintf(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%[1]s') THEN
				ALTER TABLE "transaction" ADD CONSTRAINT "%[1]s"
					FOREIGN KEY ("%[2]s") REFERENCES "%[3]s" ("%[4]s");
			END IF;
		END
		$$`, name, column, refTable, refColumn)
}

// InitializeSchema creates the ledger tables and foreign keys if they are absent.
// A failing step leaves earlier steps applied.
func (r *Repository) InitializeSchema(ctx context.Context) error {
	return r.runSteps(ctx, createSteps)
}

// DropSchema drops the ledger tables if they exist
func (r *Repository) DropSchema(ctx context.Context) error {
	return r.runSteps(ctx, dropSteps)
}

func (r *Repository) runSteps(ctx context.Context, steps []schemaStep) error {
	return r.withConn(ctx, func(conn *sql.Conn) error {
		for _, step := range steps {
			if _, err := conn.ExecContext(ctx, step.query); err != nil {
				return fmt.Errorf("failed to %s: %w", step.name, err)
			}
		}
		return nil
	})
}

// ConnectivityState is the outcome of a connectivity check
type ConnectivityState int

const (
	Healthy ConnectivityState = iota
	Unhealthy
	Unreachable
)

func (s ConnectivityState) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Unhealthy:
		return "unhealthy"
	default:
		return "unreachable"
	}
}

// Connectivity reports the database state and, unless healthy, the cause
type Connectivity struct {
	State ConnectivityState
	Err   error
}

// CheckConnectivity opens a connection and validates it within ConnectivityTimeout
func (r *Repository) CheckConnectivity(ctx context.Context) Connectivity {
	ctx, cancel := context.WithTimeout(ctx, ConnectivityTimeout)
	defer cancel()

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return Connectivity{State: Unreachable, Err: err}
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return Connectivity{State: Unhealthy, Err: err}
	}
	return Connectivity{State: Healthy}
}
