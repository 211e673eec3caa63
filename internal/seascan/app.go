package seascan

import (
	"context"
	"fmt"

	coreconfig "github.com/aleRizzolo/SeaScan/core/config"
	tg "github.com/aleRizzolo/SeaScan/core/telegram"
	"github.com/aleRizzolo/SeaScan/core/telegram/commands"
	"github.com/aleRizzolo/SeaScan/core/telegram/router"
	"github.com/aleRizzolo/SeaScan/core/telegram/state"
	"github.com/aleRizzolo/SeaScan/internal/actions"
	"github.com/aleRizzolo/SeaScan/internal/monitor"

	tele "gopkg.in/telebot.v3"
)

// App owns the bot wiring: registry, conversation state, handlers, and the
// optional monitoring schedule.
type App struct {
	cfg      *coreconfig.Config
	registry *tg.Registry
	flows    state.Manager
	handlers *Handlers
	svc      *Service
	monitor  *monitor.Scheduler
}

// NewApp builds the full command and callback wiring over the given
// service. Registration conflicts are returned as errors so startup fails
// before the bot begins serving.
func NewApp(cfg *coreconfig.Config, svc *Service) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("seascan: nil config provided")
	}
	flows := state.NewMemoryManager()
	handlers, err := NewHandlers(svc, flows)
	if err != nil {
		return nil, err
	}

	reg := tg.NewRegistry()
	if err := registerCommands(reg, handlers); err != nil {
		return nil, err
	}
	if err := registerCallbacks(reg, handlers); err != nil {
		return nil, err
	}
	registerContinuations(handlers)

	app := &App{
		cfg:      cfg,
		registry: reg,
		flows:    flows,
		handlers: handlers,
		svc:      svc,
	}
	app.monitor = monitor.New(cfg.Monitor.Schedule, svc.MonitoringSweep)
	return app, nil
}

func registerCommands(reg *tg.Registry, h *Handlers) error {
	defs := []struct {
		name string
		cmd  commands.Command
	}{
		{"/start", commands.Command{Handler: h.Start, Description: "Greeting and pointer to the command list"}},
		{"/help", commands.Command{Handler: h.Help, Description: "Show the command menu"}},
		{"/generateData", commands.Command{Handler: h.GenerateData, Description: "Generate fresh measurement data"}},
		{"/averagePH", commands.Command{Handler: h.AveragePH, Description: "Current ph readings per beach"}},
		{"/averageHydrocarbons", commands.Command{Handler: h.AverageHydrocarbons, Description: "Current hydrocarbon readings per beach"}},
		{"/sendEmail", commands.Command{Handler: h.SendEmail, Description: "Email the full measurement report"}},
		{"/switchSensorOn", commands.Command{Handler: h.SwitchSensorOn, Description: "Switch one beach sensor on"}},
		{"/switchSensorOff", commands.Command{Handler: h.SwitchSensorOff, Description: "Switch one beach sensor off"}},
		{"/ONsensors", commands.Command{Handler: h.SensorsOn, Description: "Switch every sensor on"}},
		{"/OFFsensors", commands.Command{Handler: h.SensorsOff, Description: "Switch every sensor off"}},
		{"/monitor", commands.Command{Handler: h.Monitor, Description: "Trigger a monitoring sweep", AdminOnly: true, Hidden: true}},
	}
	for _, d := range defs {
		if err := reg.RegisterCommand(d.name, d.cmd); err != nil {
			return fmt.Errorf("seascan: register %s: %w", d.name, err)
		}
	}
	return nil
}

// registerCallbacks maps every help-menu button to its command handler.
// The mapping is total: a button key unknown to the registry never reaches
// a handler.
func registerCallbacks(reg *tg.Registry, h *Handlers) error {
	defs := []struct {
		key     string
		handler tele.HandlerFunc
	}{
		{"generateData", h.GenerateData},
		{"averagePH", h.AveragePH},
		{"averageHydrocarbons", h.AverageHydrocarbons},
		{"sendEmail", h.SendEmail},
		{"switchSensorOn", h.SwitchSensorOn},
		{"switchSensorOff", h.SwitchSensorOff},
		{"ONsensors", h.SensorsOn},
		{"OFFsensors", h.SensorsOff},
	}
	for _, d := range defs {
		if err := reg.RegisterCallback(d.key, d.handler); err != nil {
			return fmt.Errorf("seascan: register callback %s: %w", d.key, err)
		}
	}
	return nil
}

func registerContinuations(h *Handlers) {
	state.RegisterHandler(AwaitEmailRecipient, h.EmailRecipientReceived)
	state.RegisterHandler(AwaitBeachOn, h.BeachOnReceived)
	state.RegisterHandler(AwaitBeachOff, h.BeachOffReceived)
}

// FunctionMap translates the action configuration into the mapping the
// Lambda invoker is built from.
func FunctionMap(a coreconfig.ActionsConfig) map[string]string {
	return map[string]string{
		actions.GenerateData:     a.GenerateData,
		actions.ComputeAverages:  a.ComputeAverages,
		actions.AllSensorsOn:     a.AllSensorsOn,
		actions.AllSensorsOff:    a.AllSensorsOff,
		actions.BeachSensorOn:    a.BeachSensorOn,
		actions.BeachSensorOff:   a.BeachSensorOff,
		actions.ActiveMonitoring: a.ActiveMonitoring,
	}
}

// CoreConfig exposes the embedded core configuration.
func (a *App) CoreConfig() *coreconfig.Config { return a.cfg }

// Registry exposes the command and callback table.
func (a *App) Registry() *tg.Registry { return a.registry }

// Flows exposes the conversation state manager.
func (a *App) Flows() state.Manager { return a.flows }

// TelegramRunOptions assembles the runtime wiring for tg.RunTelegram.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.flows, a.registry, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes,
		router.TextRoute(a.flows, a.registry),
		router.CallbackRoute(a.flows, a.registry, router.CallbackOptions{}),
	)

	return tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			return a.monitor.Start()
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			a.monitor.Stop()
			return nil
		},
	}, nil
}
