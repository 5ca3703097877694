// workspace-chat is the terminal front-end for the workspace assistant.
package main

import (
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/bilalkalyar/workspace-agent-cli/internal/api"
	"github.com/bilalkalyar/workspace-agent-cli/internal/cache"
	"github.com/bilalkalyar/workspace-agent-cli/internal/config"
	"github.com/bilalkalyar/workspace-agent-cli/internal/observability"
	chatsvc "github.com/bilalkalyar/workspace-agent-cli/internal/service/chat"
	"github.com/bilalkalyar/workspace-agent-cli/internal/service/report"
	"github.com/bilalkalyar/workspace-agent-cli/internal/service/suggest"
	"github.com/bilalkalyar/workspace-agent-cli/internal/tui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// The TUI owns the terminal; logs go to a file next to the cache.
	logCfg := cfg.Log
	if logCfg.File == "" {
		logCfg.File = filepath.Join(filepath.Dir(cfg.Cache.Path), "workspace-chat.log")
	}
	logger, err := observability.NewLogger(logCfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	session, err := cache.Open(cfg.Cache.Path, logger)
	if err != nil {
		log.Fatalf("failed to open session cache: %v", err)
	}
	defer session.Close()

	client := api.NewClient(cfg.API, logger)
	store := chatsvc.NewStore(session, logger)
	engine := suggest.NewEngine()

	var prog *tea.Program
	poller := report.NewPoller(client, cfg.API.RefreshDelay, func(data report.Data) {
		if prog != nil {
			prog.Send(tui.DashboardRefreshedMsg{Data: data})
		}
	}, logger)
	defer poller.Close()

	m := tui.New(tui.Deps{
		Store:  store,
		Ctrl:   chatsvc.NewController(store, client, engine, logger),
		Syncer: chatsvc.NewSyncer(client, store, logger),
		Engine: engine,
		Poller: poller,
		Client: client,
		Logger: logger,
	})

	prog = tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		logger.Sync()
		log.Printf("error running program: %v", err)
		os.Exit(1)
	}
}
