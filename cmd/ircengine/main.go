/*
Command ircengine is a minimal demo wiring config, client, and transport
together: it connects to the configured network, joins no channels on its
own, and logs incoming messages, readiness, errors and disconnection to
stderr until interrupted.
*/
package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"

	"gopkg.in/inconshreveable/log15.v2"

	"github.com/aarondl/ircengine/client"
	"github.com/aarondl/ircengine/config"
	"github.com/aarondl/ircengine/event"
	"github.com/aarondl/ircengine/transport"
)

func main() {
	log := log15.New()
	log.SetHandler(log15.StderrHandler)

	cfgPath := "config.toml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	addr := net.JoinHostPort(cfg.Network.Host, fmt.Sprint(cfg.Network.Port))
	var tlsConfig *tls.Config
	if cfg.Network.SSL {
		tlsConfig = &tls.Config{}
	}

	conn, err := transport.Dial(addr, cfg.Network.SSL, tlsConfig)
	if err != nil {
		log.Error("failed to connect", "addr", addr, "err", err)
		os.Exit(1)
	}

	eng := client.New(
		client.WithLogger(log),
		client.WithSendInterval(cfg.Network.Duration()),
	)

	eng.Bus.On(event.Message, func(ev event.Event) {
		p := ev.Payload.(event.MessagePayload)
		log.Info("message", "from", p.From, "target", p.Target, "text", p.Text)
	})
	eng.Bus.On(event.Ready, func(ev event.Event) {
		log.Info("ready")
	})
	eng.Bus.On(event.Disconnect, func(ev event.Event) {
		log.Info("disconnected")
	})
	eng.Bus.On(event.Error, func(ev event.Event) {
		p := ev.Payload.(event.ErrorPayload)
		log.Error("server error", "type", p.Type, "err", p.Err)
	})

	username := cfg.Network.Username
	if username == "" {
		username = cfg.Network.Nickname
	}

	if err := eng.Connect(conn, cfg.Network.Nickname, username, cfg.Network.Host, cfg.Network.Realname, cfg.Network.Password); err != nil {
		log.Error("handshake failed", "err", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	done := make(chan struct{})
	go func() {
		eng.Wait()
		close(done)
	}()

	select {
	case <-quit:
		_ = eng.Disconnect("shutting down")
	case <-done:
	}

	eng.Wait()
}
