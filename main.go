package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"energyvis/logger"
	"energyvis/script"
	"energyvis/source"
	_type "energyvis/type"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "energyvis",
		Usage: "Render the energy dashboard charts from CSV, workbook or MySQL data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  "http",
				Usage: "Port the web dashboard listens on",
			},
			&cli.StringSliceFlag{
				Name:    "dataset",
				Aliases: []string{"f"},
				Usage:   "Dataset source as `name=location`; location is a .csv/.xlsx/.parquet path, an http(s) URL or mysql:<table>",
			},
			&cli.StringFlag{Name: "db-host", Usage: "MySQL host"},
			&cli.StringFlag{Name: "db-port", Usage: "MySQL port"},
			&cli.StringFlag{Name: "db-user", Usage: "MySQL user"},
			&cli.StringFlag{Name: "db-password", Usage: "MySQL password"},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Also save a paper report of every load cycle to this file",
			},
			&cli.BoolFlag{
				Name:  "strict-numbers",
				Usage: "Drop rows with malformed numbers instead of reading them as zero",
			},
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the dashboard over HTTP",
				Action: serveAction,
			},
			{
				Name:  "export",
				Usage: "Load once and write every chart as an image",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Output directory",
						Value: _type.ReportsRootDir + "/charts",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "png or svg",
					},
				},
				Action: exportAction,
			},
			{
				Name:   "report",
				Usage:  "Load once and write the paper report",
				Action: reportAction,
			},
		},
	}
}

// visApp is everything one process needs to run load cycles.
type visApp struct {
	cfg    *_type.Config
	logger *logger.Logger
	loader *script.DataLoader
	db     *gorm.DB
}

func loadConfig(cmd *cli.Command) (*_type.Config, error) {
	cfg, err := _type.LoadConfig(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := cmd.String("http"); v != "" {
		cfg.DstPort = strings.TrimPrefix(v, ":")
	}
	if v := cmd.String("output"); v != "" {
		cfg.ReportFile = v
	}
	if cmd.Bool("strict-numbers") {
		cfg.StrictNumbers = true
	}

	db := map[string]*string{
		"db-host":     &cfg.MySQL.Host,
		"db-port":     &cfg.MySQL.Port,
		"db-user":     &cfg.MySQL.User,
		"db-password": &cfg.MySQL.Password,
	}
	for flag, field := range db {
		if v := cmd.String(flag); v != "" {
			*field = v
		}
	}

	for _, arg := range cmd.StringSlice("dataset") {
		name, loc, ok := strings.Cut(arg, "=")
		if !ok || name == "" || loc == "" {
			return nil, _type.NewErrorf(_type.ErrCodeInvalidConfiguration, "dataset %q: expected name=location", arg)
		}
		applyDataset(cfg, name, loc)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDataset(cfg *_type.Config, name, loc string) {
	for i := range cfg.Datasets {
		if cfg.Datasets[i].Name == name {
			cfg.Datasets[i].Location = loc
			return
		}
	}
	cfg.Datasets = append(cfg.Datasets, _type.DatasetConfig{Name: name, Location: loc})
}

func newVisApp(cmd *cli.Command) (*visApp, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &visApp{cfg: cfg, logger: log}
	if source.NeedsDB(cfg.Datasets) {
		if a.db, err = source.OpenMySQL(cfg.MySQL); err != nil {
			return nil, err
		}
	}

	var (
		sources  []source.Source
		fromDB   []string
		charts   = script.NewCharts(cfg, log.Named("chart"))
		required = make(map[string]bool, len(charts))
	)
	for _, c := range charts {
		required[c.Dataset()] = true
	}
	for _, d := range cfg.Datasets {
		if !required[d.Name] {
			log.Warn("dataset not used by any chart", zap.String("dataset", d.Name))
			continue
		}
		src, err := source.New(d, a.db)
		if err != nil {
			return nil, err
		}
		if _, ok := src.(*source.MySQLSource); ok {
			fromDB = append(fromDB, d.Name)
		}
		sources = append(sources, src)
	}

	var opts []script.LoaderOption
	if len(fromDB) > 0 {
		opts = append(opts, script.WithSnapshot(script.NewSnapshotter(cfg.SnapshotDir, cfg.SnapshotFormat), fromDB...))
	}
	a.loader = script.NewDataLoader(cfg, sources, charts, log, opts...)
	return a, nil
}

func (a *visApp) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = a.logger.Sync()
}

// paperReport saves the report of a cycle when a report file is configured.
func (a *visApp) paperReport(res *script.Result) {
	if a.cfg.ReportFile == "" {
		return
	}
	path, err := script.PaperReportFile(res, a.cfg.ReportFile, _type.ReportsRootDir)
	if err != nil {
		a.logger.Error("paper report failed", zap.Error(err))
		return
	}
	a.logger.Info("paper report saved", zap.String("path", path))
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newVisApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return a.serve(ctx)
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newVisApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	format := cmd.String("format")
	if format == "" {
		format = a.cfg.ImageFormat
	}
	if format != "png" && format != "svg" {
		return _type.NewErrorf(_type.ErrCodeInvalidConfiguration, "unknown image format %q", format)
	}

	res, loadErr := a.loader.Run(ctx)
	a.paperReport(res)
	paths, err := script.ExportImages(res, cmd.String("dir"), format)
	for _, p := range paths {
		a.logger.Info("chart written", zap.String("path", p))
	}
	if err != nil {
		return err
	}
	return loadErr
}

func reportAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newVisApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	res, loadErr := a.loader.Run(ctx)
	path, err := script.PaperReportFile(res, a.cfg.ReportFile, _type.ReportsRootDir)
	if err != nil {
		return err
	}
	a.logger.Info("paper report saved", zap.String("path", path))
	return loadErr
}
