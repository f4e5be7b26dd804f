package app

import (
	"context"

	fyneapp "fyne.io/fyne/v2/app"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"yashubustudio/atlas/atlas"
)

const fyneAppID = "yashubustudio.atlas"

// Run loads configuration, starts the embedder and shows the desktop UI.
func Run(configPath string) error {
	cfg, err := atlas.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := atlas.InitLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	view := newLogView(300)
	logger = logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, view.core())
	}))

	embedder, err := atlas.NewOrtEmbedder(cfg.Embedder, logger.Named("embedder"))
	if err != nil {
		return err
	}
	svc, err := atlas.NewService(embedder, cfg, logger)
	if err != nil {
		embedder.Close()
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := fyneapp.NewWithID(fyneAppID)
	u := buildUI(ctx, a, svc, view, configPath, logger)
	u.w.SetOnClosed(cancel)
	u.loadReference(cfg.Reference.Path, cfg.Reference.PartnerPath)
	u.w.ShowAndRun()
	return nil
}
