package enroll

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/bhabibullo/Education-Bot/core/bootstrap"
	corecmd "github.com/bhabibullo/Education-Bot/core/cmd"
	coretelegram "github.com/bhabibullo/Education-Bot/core/telegram"
	"github.com/bhabibullo/Education-Bot/core/telegram/commands"
	tghelpers "github.com/bhabibullo/Education-Bot/core/telegram/helpers"
	"github.com/bhabibullo/Education-Bot/core/telegram/router"
	tgsender "github.com/bhabibullo/Education-Bot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

// App assembles the enrollment bot: session store, engine, flow, optional
// submissions archive, and the Telegram runtime wiring.
type App struct {
	cfg   *Config
	store *Store
	flow  *Flow
	db    *sqlx.DB

	mu sync.Mutex
	rt *coretelegram.Runtime
}

// NewApp bootstraps infrastructure and builds the application.
func NewApp(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("enroll: nil config")
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Core,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	store := NewStore()
	flow := NewFlow(store, NewEngine(cfg.Catalog, cfg.About))
	if res.DB != nil {
		flow.SetArchive(NewArchive(res.DB))
	}

	return &App{
		cfg:   cfg,
		store: store,
		flow:  flow,
		db:    res.DB,
	}, nil
}

// Bootstrap adapts NewApp to the generic runner signature.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("enroll: unexpected config type %T", carrier)
	}
	app, err := NewApp(cfg)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// TelegramRunOptions builds the registry, routes, and lifecycle hooks.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.flow.HandleStart,
		Description: "Kursga yozilish / Записаться на курс",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleStats,
		Description: "Bot statistics",
		AdminOnly:   true,
		Hidden:      true,
	})

	for _, key := range CallbackKeys() {
		if err := reg.RegisterCallback(key, a.flow.CallbackHandler(key)); err != nil {
			return coretelegram.RunOptions{}, err
		}
	}

	// Stale buttons from cleared sessions get a toast; a first message from
	// a new user starts the flow as if /start was sent.
	reg.SetCallbackNotFound(func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: Text(TextChoiceInvalid, LangRU)})
	})
	reg.SetTextFallback(a.flow.HandleStart)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes,
		router.CallbackRoute(reg, router.CallbackOptions{}),
		router.TextRoute(a.flow, reg, router.TextOptions{}),
	)

	return coretelegram.RunOptions{
		Config:   &a.cfg.Core,
		Registry: reg,
		DispatcherOptions: tgsender.Options{
			QueueSize: a.cfg.Sender.QueueSize,
			Workers:   a.cfg.Sender.Workers,
		},
		Middlewares: coretelegram.DefaultMiddlewares(&a.cfg.Core, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.flow.SetNotifier(NewChannelNotifier(rt.Bot))
			a.setRuntime(rt)
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}, nil
}

func (a *App) setRuntime(rt coretelegram.Runtime) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rt = &rt
}

func (a *App) runtime() *coretelegram.Runtime {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rt
}

// handleStats reports live counters to the admin.
func (a *App) handleStats(c tele.Context) error {
	var sendErrors uint64
	if rt := a.runtime(); rt != nil && rt.Dispatcher != nil {
		sendErrors = rt.Dispatcher.ErrorCount()
	}

	text := fmt.Sprintf("Active sessions: %d\nSend errors: %d", a.store.Len(), sendErrors)

	if archive := a.flow.currentArchive(); archive != nil {
		if n, err := archive.Count(tghelpers.BuildContext(c)); err == nil {
			text += fmt.Sprintf("\nArchived submissions: %d", n)
		}
	}

	return tghelpers.SendText(c, text)
}
