package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/sanandreas/api"
	"github.com/wricardo/sanandreas/game/service"
	"github.com/wricardo/sanandreas/game/session"
	"github.com/wricardo/sanandreas/transport/mcp"
	"github.com/wricardo/sanandreas/transport/websocket"
)

const (
	sessionMaxAge   = 24 * time.Hour
	cleanupInterval = time.Hour
	syncInterval    = 5 * time.Second
)

// services is the hosted-game stack shared by serve and mcp.
type services struct {
	game        service.GameService
	sessions    *session.Manager
	persistence *session.FilePersistence
}

// initializeServices wires scenarios, session persistence and the game
// service. Persisted sessions are loaded up front.
func (a *app) initializeServices(opts ...service.Option) (*services, error) {
	scenarios, err := a.scenarios()
	if err != nil {
		return nil, err
	}

	persistence, err := session.NewFilePersistence(a.settings.SessionsDir, scenarios)
	if err != nil {
		return nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	sessions := session.NewManager(scenarios,
		session.WithPersistence(persistence),
		session.WithRules(a.settings.Rules),
		session.WithSeed(a.settings.Seed),
		session.WithLogger(a.log),
	)
	if err := sessions.LoadPersistedSessions(); err != nil {
		a.log.Warn().Err(err).Msg("failed to load persisted sessions")
	}

	opts = append([]service.Option{service.WithLogger(a.log)}, opts...)
	return &services{
		game:        service.NewGameService(sessions, scenarios, opts...),
		sessions:    sessions,
		persistence: persistence,
	}, nil
}

// newRouter mounts the REST API at the root and the MCP endpoint at /mcp.
func (a *app) newRouter(svc service.GameService, hub *websocket.Hub) http.Handler {
	apiServer := api.NewServer(svc, hub, a.log)
	mcpServer := mcp.NewServer(svc, a.log)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.HandleMessage(r.Context(), body)
		respondJSON(w, response)
	})
	return mainRouter
}

func (a *app) serve(ctx context.Context, cmd *cli.Command) error {
	addr := a.settings.Server.Addr
	if cmd.IsSet("addr") {
		addr = cmd.String("addr")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub(a.log)
	go hub.Run(ctx)

	svcs, err := a.initializeServices(service.WithListener(hub.Publish))
	if err != nil {
		return err
	}
	router := a.newRouter(svcs.game, hub)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.log.Info().
			Str("addr", addr).
			Str("api", "/api").
			Str("ws", "/ws?session=<session_id>").
			Str("mcp", "/mcp").
			Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	wg.Add(2)
	go func() {
		defer wg.Done()
		a.sessionCleanupRoutine(ctx, svcs.sessions)
	}()
	go func() {
		defer wg.Done()
		a.filesystemSyncRoutine(ctx, svcs.sessions, svcs.persistence)
	}()

	if a.settings.Server.Ngrok || cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.runNgrok(ctx, router, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"))
		}()
	}

	select {
	case <-ctx.Done():
		a.log.Info().Msg("shutting down")
	case err = <-serveErr:
		a.log.Error().Err(err).Msg("HTTP server failed")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if serr := httpServer.Shutdown(shutdownCtx); serr != nil {
		a.log.Error().Err(serr).Msg("HTTP server shutdown")
	}
	wg.Wait()

	if serr := svcs.sessions.SaveAllSessions(); serr != nil {
		a.log.Error().Err(serr).Msg("saving sessions on shutdown")
	}
	a.log.Info().Msg("server stopped")
	return err
}

// runNgrok serves router through a public tunnel until ctx is done.
func (a *app) runNgrok(ctx context.Context, router http.Handler, authToken, domain string) {
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
		if authToken == "" {
			authToken = os.Getenv("NGROK_AUTH_TOKEN")
		}
	}
	if authToken == "" {
		a.log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}
	if domain == "" {
		domain = os.Getenv("NGROK_DOMAIN")
	}

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		a.log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()
	a.log.Info().Str("url", tun.URL()).Msg("ngrok tunnel established")

	tunnelServer := &http.Server{Handler: router}
	go func() {
		<-ctx.Done()
		tunnelServer.Close()
	}()
	if err := tunnelServer.Serve(tun); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error().Err(err).Msg("ngrok server error")
	}
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionMaxAge.
func (a *app) sessionCleanupRoutine(ctx context.Context, manager *session.Manager) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(sessionMaxAge); removed > 0 {
				a.log.Info().Int("removed", removed).Msg("cleaned up expired sessions")
			}
		}
	}
}

// filesystemSyncRoutine drops sessions from memory once their files are
// deleted on disk.
func (a *app) filesystemSyncRoutine(ctx context.Context, manager *session.Manager, persistence session.SessionPersistence) {
	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.pruneOrphans(manager, persistence)
		}
	}
}

func (a *app) pruneOrphans(manager *session.Manager, persistence session.SessionPersistence) int {
	pruned := 0
	for _, sess := range manager.List() {
		if persistence.Exists(sess.ID) {
			continue
		}
		if err := manager.DeleteFromMemory(sess.ID); err == nil {
			pruned++
			a.log.Info().Str("session", sess.ID).Msg("pruned session from memory (file deleted)")
		}
	}
	return pruned
}

// mcpStdio serves the MCP tools on stdin and stdout.
func (a *app) mcpStdio(ctx context.Context, cmd *cli.Command) error {
	svcs, err := a.initializeServices()
	if err != nil {
		return err
	}
	defer func() {
		if err := svcs.sessions.SaveAllSessions(); err != nil {
			a.log.Error().Err(err).Msg("saving sessions on exit")
		}
	}()

	a.log.Info().Msg("MCP stdio server ready")
	return mcp.NewServer(svcs.game, a.log).ServeStdio()
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
	}
}
