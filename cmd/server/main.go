// Command server runs one No-Limit Hold'em tournament table: it loads
// configuration from the environment, starts the table's SessionLoop, and
// serves the WebSocket gateway and a health check over HTTP.
package main

import (
	"log"
	"net/http"

	"holdem-host/internal/config"
	"holdem-host/internal/gateway"
	"holdem-host/internal/table"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	t, err := table.New(cfg.Table)
	if err != nil {
		log.Fatalf("table: %v", err)
	}
	gw := gateway.New(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleBot)
	mux.HandleFunc("/spectate", gw.HandleSpectator)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	log.Printf("holdem-host: table %q listening on %s", cfg.Table.TableID, cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, withCORS(mux)); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
