package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"chargectl/internal/api"
	"chargectl/internal/config"
	"chargectl/internal/notify"
	"chargectl/internal/poller"
	"chargectl/internal/service"
	"chargectl/internal/session"
)

// App wires the client dependency graph.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Sessions *session.Store
	Accounts *service.AccountService
	Requests *api.RequestClient
	Status   *api.StatusClient
	Billing  *api.BillingClient
	Admin    *api.AdminClient

	poller *poller.Poller
	bridge *notify.MQTTPublisher
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) *App {
	store := session.NewStore()
	transport := api.NewClient(cfg.API.BaseURL, api.NewDefaultHTTPClient(cfg.HTTPTimeout()), store, logger)

	accounts := api.NewAccountClient(transport)
	status := api.NewStatusClient(transport)

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Sessions: store,
		Accounts: service.NewAccountService(accounts, store, logger),
		Requests: api.NewRequestClient(transport),
		Status:   status,
		Billing:  api.NewBillingClient(transport),
		Admin:    api.NewAdminClient(transport),
		poller:   poller.New(status, store, cfg.PollInterval(), logger),
	}

	if cfg.MQTTEnabled() {
		a.bridge = notify.NewMQTTPublisher(notify.MQTTConfig{
			BrokerURL:   cfg.MQTT.BrokerURL,
			ClientID:    cfg.MQTT.ClientID,
			Username:    cfg.MQTT.Username,
			Password:    cfg.MQTT.Password,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			QoS:         byte(cfg.MQTT.QoS),
			Retained:    cfg.MQTT.Retained,
		}, logger)
	}

	return a
}

// Watch runs the poller until ctx is cancelled, rendering events to
// stdout and forwarding them to the MQTT bridge when configured.
func (a *App) Watch(ctx context.Context) error {
	if a.bridge != nil {
		if err := a.bridge.Connect(); err != nil {
			return err
		}
		defer a.bridge.Disconnect()
	}

	done := make(chan error, 1)
	go func() { done <- a.poller.Run(ctx) }()

	for ev := range a.poller.Events() {
		a.render(ev)
		if a.bridge != nil {
			a.bridge.Publish(ev)
		}
	}

	if err := <-done; !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) render(ev poller.Event) {
	switch ev.Type {
	case poller.EventStatus:
		line := ev.StatusText
		if qt := ev.Status.QueueText(); qt != "" {
			line += "  " + qt
		}
		if ev.Status.ChargeID != "" {
			line += "  " + ev.Status.ChargeID
		}
		fmt.Printf("[%s] %s\n", ev.ServerTime.DateTime, line)
	case poller.EventCompleted:
		fmt.Println(ev.Message)
	case poller.EventError:
		fmt.Println(ev.Err.Error())
	}
}
