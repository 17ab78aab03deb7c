package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/websocket"

	"nock-and-loose/server/internal/world"
	"nock-and-loose/server/logging"
	"nock-and-loose/server/logging/sinks"
	"nock-and-loose/server/rules/catalog"
)

type serverConfig struct {
	Addr      string `env:"NOCK_ADDR" envDefault:":8080"`
	RulesPath string `env:"NOCK_RULES_PATH"`
	TickRate  int    `env:"NOCK_TICK_RATE" envDefault:"15"`
	Seed      string `env:"NOCK_SEED" envDefault:"prototype"`
}

func main() {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 15
	}

	router, err := logging.NewRouter(logging.ClockFunc(time.Now), logging.DefaultConfig(), []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsole(os.Stdout)},
	})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer router.Close(context.Background())

	paths := catalog.DefaultPaths()
	if cfg.RulesPath != "" {
		paths = []string{cfg.RulesPath}
	}
	resolver, err := catalog.Load(paths...)
	if err != nil {
		log.Fatalf("rules: %v", err)
	}

	hub := newHub()

	w := world.New(world.Config{Seed: cfg.Seed}, world.Deps{
		Publisher: router,
		Reports:   hub.Broadcast,
	})
	w.Engine().InstallRules(resolver.RuleSet())

	stop := make(chan struct{})
	go runSimulation(w, cfg.TickRate, stop)
	defer close(stop)

	http.HandleFunc("/health", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain")
		rw.Write([]byte("ok"))
	})

	http.HandleFunc("/reload", func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := resolver.Reload(); err != nil {
			log.Printf("rules: reload rejected: %v", err)
			http.Error(rw, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Engine().InstallRules(resolver.RuleSet())
		rw.Write([]byte("reloaded"))
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	http.HandleFunc("/ws", func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			log.Printf("feed: upgrade failed: %v", err)
			return
		}
		id := hub.Subscribe(conn)
		log.Printf("feed: subscriber %d connected (%d total)", id, hub.Count())

		// Drain control frames; the feed is write-only.
		go func() {
			defer hub.Unsubscribe(id)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	log.Printf("listening on %s (tick rate %d)", cfg.Addr, cfg.TickRate)
	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// runSimulation drives the world on a fixed tick until stop closes.
func runSimulation(w *world.World, tickRate int, stop <-chan struct{}) {
	ctx := context.Background()
	interval := time.Second / time.Duration(tickRate)
	dt := interval.Seconds()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			w.Step(ctx, dt)
		}
	}
}
