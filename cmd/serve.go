package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/coala-info/coala/mcp"
	"github.com/mattn/go-isatty"
	mcpsrv "github.com/viant/mcp"
	"github.com/viant/mcp/server"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

// ServeCmd launches an MCP server that exposes the registered tools. The
// server configuration (transport, auth, ...) is taken from the server section
// of the config file. Without an explicit transport the server speaks stdio
// when stdin is not a terminal, as it does when launched by an agent host.
type ServeCmd struct {
	Address string `short:"a" long:"addr" description:"HTTP listen address, e.g. :5000"`
	Stdio   bool   `long:"stdio" description:"serve over stdin/stdout"`
}

func (c *ServeCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	cfg := svc.Config()
	var srvOpts *mcpsrv.ServerOptions
	if cfg != nil {
		srvOpts = cfg.Server
	}

	mcpServer, err := mcpsrv.NewServer(svc.NewHandler, srvOpts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if c.transport(srvOpts, isatty.IsTerminal(os.Stdin.Fd())) == transportStdio {
		return serveStdio(ctx, svc, mcpServer)
	}
	return c.serveHTTP(ctx, svc, mcpServer)
}

// transport selects stdio or http: flags win over the configured transport
// type, which wins over stdin detection.
func (c *ServeCmd) transport(options *mcpsrv.ServerOptions, interactive bool) string {
	switch {
	case c.Stdio:
		return transportStdio
	case c.Address != "":
		return transportHTTP
	}
	if options != nil && options.Transport != nil {
		kind := options.Transport.Type
		if kind == "" && options.Transport.Options != nil {
			kind = options.Transport.Options.Type
		}
		if kind == transportStdio {
			return transportStdio
		}
		if kind != "" {
			return transportHTTP
		}
	}
	if interactive {
		return transportHTTP
	}
	return transportStdio
}

// serveStdio runs until stdin is closed. Logs go to stderr, stdout carries
// protocol messages only.
func serveStdio(ctx context.Context, svc *mcp.Service, mcpServer *server.Server) error {
	svc.Logger().Info().Strs("tools", svc.ToolNames()).Msg("MCP server serving stdio")
	err := mcpServer.Stdio(ctx).ListenAndServe()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c *ServeCmd) serveHTTP(ctx context.Context, svc *mcp.Service, mcpServer *server.Server) error {
	logger := svc.Logger()
	httpSrv := mcpServer.HTTP(ctx, c.Address)
	failed := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()
	logger.Info().Str("addr", httpSrv.Addr).Strs("tools", svc.ToolNames()).Msg("MCP server listening")

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		_ = httpSrv.Close()
		return err
	}
	return nil
}
