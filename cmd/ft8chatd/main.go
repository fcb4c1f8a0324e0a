// Command ft8chatd runs the FT8 chat protocol engine with every
// configured transport wired in as an observer. Flag parsing and
// config-file loading follow the teacher's main.go.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Philippe-Colt/ft8chat/chatadmin"
	"github.com/Philippe-Colt/ft8chat/chatconfig"
	"github.com/Philippe-Colt/ft8chat/chathealth"
	"github.com/Philippe-Colt/ft8chat/chathub"
	"github.com/Philippe-Colt/ft8chat/chatlog"
	"github.com/Philippe-Colt/ft8chat/chatmetrics"
	"github.com/Philippe-Colt/ft8chat/chatproto"
	"github.com/Philippe-Colt/ft8chat/mcpcontrol"
	"github.com/Philippe-Colt/ft8chat/mqttbridge"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if debugEnv := os.Getenv("DEBUG"); debugEnv != "" {
		*debug = debugEnv == "true" || debugEnv == "1" || debugEnv == "yes"
	}
	if *debug {
		log.Println("debug mode enabled")
	}

	cfg, err := chatconfig.Load(*configPath)
	if err != nil {
		log.Printf("no config file at %s, using defaults: %v", *configPath, err)
		cfg = chatconfig.Default()
	}

	engine := chatproto.New(chatproto.Config{Timing: toEngineTiming(cfg.Timing)})
	engine.SetMyID(cfg.Station.ID)

	if cfg.Log.Enabled {
		logger, err := chatlog.New(cfg.Log.DataDir, true)
		if err != nil {
			log.Fatalf("chatlog: %v", err)
		}
		engine.Subscribe(logger)
		defer logger.Close()
	}

	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		engine.Subscribe(chatmetrics.New(reg))
	}

	if cfg.MQTT.Enabled {
		bridge, err := mqttbridge.Connect(mqttbridge.Config{
			BrokerURL: cfg.MQTT.BrokerURL,
			ClientID:  cfg.MQTT.ClientID,
			TopicRoot: cfg.MQTT.TopicRoot,
		})
		if err != nil {
			log.Printf("mqttbridge: %v", err)
		} else {
			engine.Subscribe(bridge)
			defer bridge.Close()
		}
	}

	var hub *chathub.Hub
	if cfg.Hub.Enabled {
		hub = chathub.New()
		engine.Subscribe(hub)
	}

	locked := chatproto.NewLocked(engine)

	mux := http.NewServeMux()
	if hub != nil {
		mux.Handle("/ws", hub)
	}
	if cfg.Health.Enabled {
		mux.Handle("/health", chathealth.New(locked))
	}
	if cfg.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	if cfg.Admin.Enabled {
		admin, err := chatadmin.New(cfg.Log.DataDir, cfg.Admin.GeoIPDBPath)
		if err != nil {
			log.Fatalf("chatadmin: %v", err)
		}
		mux.HandleFunc("/logs", admin.HandleLogs)
		defer admin.Close()
	}
	if cfg.MCP.Enabled {
		mcp := mcpcontrol.New(locked)
		mux.Handle("/mcp", mcp.HTTPHandler())
	}

	addr := cfg.Hub.ListenAddr
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("ft8chatd listening on %s (station %s)", addr, engine.MyID())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("http server: %v", err)
	}
}

func toEngineTiming(t chatconfig.Timing) chatproto.Timing {
	return chatproto.Timing{
		SessionTimeout:  secondsToDuration(t.SessionTimeoutSeconds),
		ReceiveIdle:     secondsToDuration(t.ReceiveIdleSeconds),
		CompleteDisplay: secondsToDuration(t.CompleteDisplaySeconds),
		DirectTxTick:    secondsToDuration(t.DirectTxTickSeconds),
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
