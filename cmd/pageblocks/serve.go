package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pageblocks/internal/watch"
	"github.com/goliatone/go-pageblocks/pkg/renderers/vanilla"
	"github.com/goliatone/go-pageblocks/pkg/server"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the edit host",
	Long: `Serves the page in edit mode with the in-place editor, a JSON API for
edits and uploads, and a live preview. The content file is watched and
reloaded when it changes on disk while the session has no unsaved edits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		cfgTheme, err := themeConfig(ctx)
		if err != nil {
			return err
		}
		html, err := vanilla.New(vanilla.WithTemplatesDir(cfg.Templates), vanilla.WithLogger(logger))
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.StaticDir, 0o755); err != nil {
			return err
		}

		host, err := server.New(sess,
			server.WithLogger(logger),
			server.WithRenderer(html),
			server.WithAssets(store.NewAssetDir(cfg.StaticDir)),
			server.WithStatic(os.DirFS(cfg.StaticDir)),
			server.WithTheme(cfgTheme),
			server.WithTitle(cfg.Title),
		)
		if err != nil {
			return err
		}

		if cfg.Watch {
			watcher, err := watch.New(cfg.Content, watch.WithDebounce(cfg.Debounce), watch.WithLogger(logger))
			if err != nil {
				return err
			}
			defer watcher.Close()
			go func() {
				if err := watcher.Run(ctx, host.ContentChanged); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("watcher stopped", "error", err)
				}
			}()
		}

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           host,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("edit host listening", "addr", srv.Addr, "content", cfg.Content, "static", cfg.StaticDir)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				return srv.Close()
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "listen address")
	serveCmd.Flags().String("title", "Home", "document title")
	serveCmd.Flags().Bool("watch", true, "reload the content file when it changes on disk")
	serveCmd.Flags().Duration("debounce", 300*time.Millisecond, "quiet period before reloading")
	serveCmd.Flags().Bool("create", false, "start from an empty page when the document is missing")
}
