package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/punchamoorthee/payflow/internal/api"
	"github.com/punchamoorthee/payflow/internal/config"
	"github.com/punchamoorthee/payflow/internal/csvio"
	"github.com/punchamoorthee/payflow/internal/ledger"
	"github.com/punchamoorthee/payflow/internal/logging"
	"github.com/punchamoorthee/payflow/internal/replay"
)

func main() {
	var preload string
	flag.StringVar(&preload, "load", "", "Transaction log (CSV) to replay before serving")
	flag.Parse()

	cfg := config.Load()

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := ledger.New()
	if preload != "" {
		if err := preloadLog(db, preload, logger); err != nil {
			logger.Fatal("preload failed", zap.String("path", preload), zap.Error(err))
		}
	}

	worker := replay.NewWorker(db, logger)
	worker.Start()
	defer worker.Stop()

	handler := api.NewHandler(worker)

	r := mux.NewRouter()
	r.Use(api.RequestID)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	handler.Register(r.PathPrefix("/api/v1").Subrouter())

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// preloadLog replays a transaction log into db before the worker takes
// ownership, so the server starts with the log's final balances.
func preloadLog(db *ledger.Ledger, path string, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := csvio.NewReader(f)
	if err != nil {
		return err
	}
	stats, err := replay.Run(db, r, logger)
	if err != nil {
		return err
	}
	logger.Info("preload finished",
		zap.Int("applied", stats.Applied),
		zap.Int("rejected", stats.Rejected),
		zap.Int("malformed", stats.Malformed))
	return nil
}
