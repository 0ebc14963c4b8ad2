package commands

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/ingest"
	"github.com/bankfeed-dev/bankfeed/internal/logger"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
	"github.com/bankfeed-dev/bankfeed/internal/store"
	"github.com/bankfeed-dev/bankfeed/internal/store/memory"
	"github.com/bankfeed-dev/bankfeed/internal/store/postgres"
)

// configFile is the default config filename looked up in the working
// directory.
const configFile = "bankfeed.yaml"

// runtime bundles the services a command needs.
type runtime struct {
	cfg     *config.Config
	log     zerolog.Logger
	service *ingest.Service
	close   func()
}

// newRuntime loads config (defaults when no file exists), builds the
// profile registry, and connects the store. Without a database URL the
// commands run against an in-memory store, with accountID pre-seeded so
// previews and dry-run imports work locally.
func newRuntime(ctx context.Context, configPath, accountID string) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	reg, err := profile.Load(cfg.Import.ProfilesPath)
	if err != nil {
		return nil, err
	}

	var st store.Store
	closeFn := func() {}
	if cfg.Database.URL != "" {
		pg, err := postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		st = pg
		closeFn = pg.Close
	} else {
		mem := memory.New()
		if accountID != "" {
			mem.AddAccount(store.Account{
				ID:       accountID,
				Currency: cfg.Import.DefaultCurrency,
				Balance:  decimal.Zero,
			})
		}
		st = mem
	}

	svc := ingest.NewService(reg, st, log)
	svc.SetDescriptionLimit(cfg.Import.DescriptionLimit)

	return &runtime{cfg: cfg, log: log, service: svc, close: closeFn}, nil
}

// readDocument loads a statement file into a RawDocument.
func readDocument(path, hint string) (model.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return model.RawDocument{}, err
	}
	return model.RawDocument{
		Content:     content,
		Filename:    path,
		ProfileHint: hint,
	}, nil
}
