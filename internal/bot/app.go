package bot

import (
	"context"
	"fmt"

	coreconfig "github.com/babelpass/babelpass/core/config"
	coretelegram "github.com/babelpass/babelpass/core/telegram"
	"github.com/babelpass/babelpass/core/telegram/commands"
	"github.com/babelpass/babelpass/core/telegram/router"
	"github.com/babelpass/babelpass/internal/charset"
	"github.com/babelpass/babelpass/internal/generator"
	"github.com/babelpass/babelpass/internal/profile"

	"github.com/babelpass/babelpass/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// App wires the password generator and profile store into Telegram handlers.
type App struct {
	cfg   *coreconfig.Config
	store profile.Store
	gen   *generator.Generator
}

var _ ui.FallbackProvider = (*App)(nil)

// New builds the bot application over the given profile store.
func New(cfg *coreconfig.Config, store profile.Store) *App {
	gen := generator.New(charset.Default(),
		generator.WithDefaultLengthRange(cfg.Generator.MinLength, cfg.Generator.MaxLength),
	)
	return &App{cfg: cfg, store: store, gen: gen}
}

// CoreConfig exposes the embedded configuration to the runner.
func (a *App) CoreConfig() *coreconfig.Config { return a.cfg }

// Close releases the underlying profile store.
func (a *App) Close() error { return a.store.Close() }

// TelegramRunOptions assembles registry, routes, and middleware for RunTelegram.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.registerCommands(reg)
	if err := a.registerCallbacks(reg); err != nil {
		return coretelegram.RunOptions{}, fmt.Errorf("bot: callback wiring failed: %w", err)
	}
	reg.SetTextFallback(a.UnknownText())
	reg.SetCallbackNotFound(a.UnknownCallback())

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoute(a, reg, router.TextOptions{}))

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStop: func(_ context.Context, _ coretelegram.Runtime) error {
			return a.Close()
		},
	}, nil
}

func (a *App) registerCommands(reg *coretelegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Open the main menu",
		Aliases:     []string{"menu"},
	})
	reg.RegisterCommand("/version", commands.Command{
		Handler:     a.handleVersion,
		Description: "Show build information",
		AdminOnly:   true,
		Hidden:      true,
	})
}

func (a *App) registerCallbacks(reg *coretelegram.Registry) error {
	handlers := []struct {
		key string
		h   tele.HandlerFunc
	}{
		{cbMainMenu, a.cbMainMenu},
		{cbLanguageSettings, a.cbLanguageSettings},
		{cbLang, a.cbToggleLanguage},
		{cbGeneratePassword, a.cbGenerateMenu},
		{cbRandomMix, a.cbRandomMix},
		{cbSelectedLangs, a.cbSelectedLangs},
		{cbCustomLength, a.cbCustomLength},
		{cbFolders, a.cbFolders},
		{cbViewFolder, a.cbViewFolder},
		{cbCreateFolder, a.cbCreateFolder},
		{cbSavePassword, a.cbSavePassword},
		{cbPickFolder, a.cbPickFolder},
		{cbAddPassword, a.cbSavePassword},
		{cbSecurityInfo, a.cbSecurityInfo},
		{cbCancelInput, a.cbCancelInput},
	}
	for _, reg2 := range handlers {
		if err := reg.RegisterCallback(reg2.key, reg2.h); err != nil {
			return err
		}
	}
	return nil
}
