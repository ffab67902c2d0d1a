package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"SketchBoard/internal/action"
	"SketchBoard/internal/config"
	"SketchBoard/internal/logging"
	boardnet "SketchBoard/internal/net"
	"SketchBoard/internal/state"
	"SketchBoard/internal/store"
	"SketchBoard/internal/store/sqlite"
	"SketchBoard/internal/ui"
)

// sceneID is the store key of the host's board.
const sceneID = "default"

func main() {
	cfg, cfgPath, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logCfg, err := cfg.LoggingConfig()
	if err != nil {
		log.Fatalf("Invalid logging config: %v", err)
	}
	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	if cfgPath != "" {
		logger.Info("config loaded", "path", cfgPath)
	}

	args := os.Args
	switch {
	case len(args) > 1 && strings.HasPrefix(args[1], boardnet.Scheme):
		runClient(cfg, args[1])
	case len(args) > 1 && args[1] == "discover":
		if err := discover(); err != nil {
			logger.Error("discovery failed", "error", err)
			os.Exit(1)
		}
	case len(args) > 1 && args[1] == "list":
		if err := withStore(cfg, func(ctx context.Context, st store.Store) error {
			return listScenes(ctx, st, os.Stdout)
		}); err != nil {
			logger.Error("list failed", "error", err)
			os.Exit(1)
		}
	case len(args) > 2 && args[1] == "delete":
		if err := withStore(cfg, func(ctx context.Context, st store.Store) error {
			return st.DeleteScene(ctx, args[2])
		}); err != nil {
			logger.Error("delete failed", "scene", args[2], "error", err)
			os.Exit(1)
		}
	case len(args) > 1 && args[1] == "init-config":
		if err := initConfig(config.DefaultConfigPath()); err != nil {
			logger.Error("init config failed", "error", err)
			os.Exit(1)
		}
	default:
		if err := runHost(cfg); err != nil {
			logger.Error("host failed", "error", err)
			os.Exit(1)
		}
	}
}

func runHost(cfg *config.Config) error {
	logger := logging.L()
	logger.Info("starting as host", "port", cfg.Network.Port)

	scene := state.NewScene(&cfg.Style)

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()
	if saved, err := repo.LoadScene(ctx, sceneID); err == nil {
		saved.Restore(scene)
		logger.Info("restored scene", "elements", len(saved.Elements))
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	actions := action.NewManager(scene)
	board := ui.NewBoardWidget(scene, actions)
	hub := boardnet.NewHub(scene)
	defer hub.Close()

	scene.OnChange = hub.Publish
	hub.OnRemoteChange = board.RemoteChanged

	mux := http.NewServeMux()
	mux.Handle(boardnet.WebSocketPath, hub)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Network.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("hub server stopped", "error", err)
			board.SetStatus(fmt.Sprintf("Hosting failed: %v", err))
		}
	}()
	defer srv.Close()

	if cfg.Network.MDNSEnabled() {
		server, err := boardnet.Advertise(cfg.Network.Port, cfg.Network.Name)
		if err != nil {
			logger.Warn("mdns advertise failed", "error", err)
		} else {
			defer server.Shutdown()
		}
	}

	hostIP, err := boardnet.OutgoingIP()
	if err != nil {
		logger.Warn("no outgoing address, sharing loopback", "error", err)
		hostIP = "127.0.0.1"
	}
	shareLink := boardnet.ShareLink(hostIP, cfg.Network.Port)
	logger.Info("share link ready", "link", shareLink)

	ui.RunApp(shareLink, board)

	if err := repo.SaveScene(ctx, store.Capture(sceneID, scene)); err != nil {
		return fmt.Errorf("save scene: %w", err)
	}
	logger.Info("scene saved", "path", cfg.Database.Path)
	return nil
}

func runClient(cfg *config.Config, link string) {
	logging.L().Info("starting as client", "link", link)
	scene := state.NewScene(&cfg.Style)
	board := ui.NewBoardWidget(scene, action.NewManager(scene))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go connectToHost(ctx, link, board)
	ui.RunApp("", board)
}

func connectToHost(ctx context.Context, link string, board *ui.BoardWidget) {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := boardnet.Dial(dialCtx, link)
	cancel()
	if err != nil {
		board.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer client.Close()

	board.SetStatus("Connected to host as " + client.LocalAddr())
	logging.L().Info("client connected", "addr", client.LocalAddr())

	if err := client.Sync(ctx, board.Scene(), board.RemoteChanged); err != nil && !errors.Is(err, context.Canceled) {
		board.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
		return
	}
	board.SetStatus("Disconnected from host")
}

// withStore opens the configured scene store for the length of fn.
func withStore(cfg *config.Config, fn func(context.Context, store.Store) error) error {
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer repo.Close()
	return fn(context.Background(), repo)
}

// listScenes prints one line per stored scene, newest first.
func listScenes(ctx context.Context, st store.Store, w io.Writer) error {
	scenes, err := st.ListScenes(ctx)
	if err != nil {
		return err
	}
	for _, sc := range scenes {
		fmt.Fprintf(w, "%s\t%s\t%d elements\t%s\n", sc.ID, sc.Name, sc.Elements, sc.Updated.Format(time.RFC3339))
	}
	return nil
}

// initConfig writes the default configuration to path unless a file is
// already there.
func initConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

// discover prints a share link for every host found on the LAN.
func discover() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return boardnet.Browse(ctx, func(addr string) {
		fmt.Println(boardnet.Scheme + addr)
	})
}
