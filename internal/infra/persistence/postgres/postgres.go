// Package postgres holds the relational store for issued invoices.
package postgres

import (
	"context"
	"log/slog"

	"github.com/jonathanpoaquiza/market-jals/config"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/lifecycle"
	"github.com/jonathanpoaquiza/market-jals/internal/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/persistence/postgres/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates PostgreSQL client mapping
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Invoice writes are single-statement, no implicit transaction needed.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			return errors.Wrap(
				db.WithContext(ctx).AutoMigrate(&model.Invoice{}, &model.InvoiceLine{}),
				"failed to migrate invoice tables",
			)
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}

// Module provides the PostgreSQL FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(NewInvoiceRepository),
)
