package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mtys/internal/db"
	"mtys/internal/importer"
	"mtys/internal/normalize"
	"mtys/internal/store"
	"mtys/internal/tabular"
	"mtys/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var importCommand = &cli.Command{
	Name:      "import",
	Usage:     "Bulk import a muhtar directory or request file without the web UI",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "File kind: muhtar or requests",
			Value:   "requests",
		},
		&cli.BoolFlag{
			Name:  "abort-on-error",
			Usage: "Stop at the first failed row instead of collecting failures",
		},
		&cli.StringFlag{
			Name:  "actor",
			Usage: "Updater name stamped on imported requests",
			Value: "import",
		},
	},
	Action: runImport,
}

func runImport(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("usage: mtys import [--kind muhtar|requests] <file>")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	norm := normalize.Default()

	logRepo := store.NewLogRepository(pool)
	muhtarRepo := store.NewMuhtarRepository(pool, norm)
	requestRepo := store.NewRequestRepository(pool, norm, logRepo)

	im := importer.New(muhtarRepo, requestRepo, logger)

	excel := isExcelFile(path)

	switch c.String("kind") {
	case "muhtar":
		var rows []types.MuhtarInfo
		if excel {
			rows, err = tabular.ParseMuhtarExcel(data)
		} else {
			rows, err = tabular.ParseMuhtarCSV(string(data))
		}
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		if err := im.ReplaceMuhtars(ctx, rows); err != nil {
			return err
		}

		fmt.Printf("Muhtar directory replaced: %d rows\n", len(rows))
		return nil

	case "requests":
		var rows []types.RequestInput
		if excel {
			rows, err = tabular.ParseRequestExcel(data, norm)
		} else {
			rows, err = tabular.ParseRequestCSV(string(data), norm)
		}
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		policy := importer.ContinueOnError
		if c.Bool("abort-on-error") {
			policy = importer.AbortOnError
		}

		result, importErr := im.ImportRequests(ctx, rows, policy, c.String("actor"))
		if result != nil {
			pp.Println(result)
		}

		return importErr

	default:
		return fmt.Errorf("unknown kind %q, want muhtar or requests", c.String("kind"))
	}
}

func isExcelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return true
	}
	return false
}
