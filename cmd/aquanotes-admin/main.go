package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Frey210/Aquanotes-Web-Admin/internal/api"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/config"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/logger"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/querycache"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/session"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/store"
	"github.com/Frey210/Aquanotes-Web-Admin/internal/view"
)

const usage = `aquanotes-admin <command> [flags]

Commands:
  login       -email -password
  logout
  whoami
  dashboard
  ponds       [-tambak id] and create/delete flags
  devices     [-select id] and claim/status/schedule flags
  readings    -uid [-start -end -page -sort] [-export-csv|-export-xlsx]
  alerts      [-mark-read id] [-mark-all-read]
  users       [-search -role -page -sort-by -sort-dir] and create/delete flags
  settings    [-name ...] [-toggle-theme]
`

func main() {
	godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	files, err := store.NewFileStore(cfg.StateDir)
	if err != nil {
		log.Fatal("failed to open state dir", zap.Error(err))
	}

	var kv store.KV
	if cfg.Cache.Backend == "redis" {
		kv = store.NewRedisKV(redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		}))
	} else {
		kv = store.NewMemoryKV()
	}

	cache := querycache.New(kv, time.Duration(cfg.Cache.TTLSeconds)*time.Second, log)
	sess := session.New(files, cache, log)
	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, sess, log)
	sess.AttachClient(client)

	deps := view.Deps{
		Client:  client,
		Cache:   cache,
		Session: sess,
		Config:  cfg,
		Logger:  log,
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	app := &app{deps: deps, out: os.Stdout}
	if err := app.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError 守卫错误给出可操作的提示，其余原样打印
func reportError(err error) {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		fmt.Fprintln(os.Stderr, "not logged in: run `aquanotes-admin login` first")
	case errors.Is(err, session.ErrForbidden):
		fmt.Fprintln(os.Stderr, "your role is not allowed here, go back to the dashboard")
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
	}
}
