package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-contactbook/pkg/book"
	"github.com/goliatone/go-contactbook/pkg/config"
	"github.com/goliatone/go-contactbook/pkg/model"
	"github.com/goliatone/go-contactbook/pkg/render"
	"github.com/goliatone/go-contactbook/pkg/renderers"
	"github.com/goliatone/go-contactbook/pkg/renderers/html"
	"github.com/goliatone/go-contactbook/pkg/shell"
	"github.com/goliatone/go-contactbook/pkg/web"
)

var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"Path to a YAML config file." default:"contactbook.yaml" type:"path"`
}

// CLI is the top-level command structure.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Serve   ServeCmd         `cmd:"" help:"Serve the contact book over HTTP."`
	Shell   ShellCmd         `cmd:"" help:"Run the contact book in the terminal."`
	Render  RenderCmd        `cmd:"" help:"Print a snapshot of the page."`
}

// ServeCmd runs the HTTP server until interrupted.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)."`
}

// Run executes the serve command.
func (c *ServeCmd) Run(globals *Globals) error {
	cfg, err := loadConfig(globals)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Addr = c.Addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	handler, err := newHandler(cfg, book.New(book.WithTitle(cfg.Page.Title)))
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on %s (theme %s/%s)", cfg.Server.Addr, cfg.Theme.Name, cfg.Theme.Variant)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	return nil
}

// ShellCmd runs the interactive terminal shell.
type ShellCmd struct{}

// Run executes the shell command.
func (c *ShellCmd) Run(globals *Globals) error {
	if !shell.Interactive() {
		return shell.ErrNotInteractive
	}
	cfg, err := loadConfig(globals)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return shell.New(book.New(book.WithTitle(cfg.Page.Title))).Run(ctx)
}

// RenderCmd prints the page for a seeded list of contacts.
type RenderCmd struct {
	Format string `help:"Output format." enum:"html,text" default:"text"`
	Seed   string `help:"YAML file listing contacts to render." type:"path"`
	Modal  bool   `help:"Render with the Add-Contact dialog open."`

	out io.Writer `kong:"-"`
}

// Run executes the render command.
func (c *RenderCmd) Run(globals *Globals) error {
	cfg, err := loadConfig(globals)
	if err != nil {
		return err
	}

	var contacts model.ContactList
	if c.Seed != "" {
		contacts, err = config.LoadContacts(c.Seed)
		if err != nil {
			return err
		}
	}

	b := book.New(book.WithTitle(cfg.Page.Title), book.WithContacts(contacts))
	if c.Modal {
		b.OpenModal()
	}

	registry, err := renderers.NewRegistry(htmlOptions(cfg)...)
	if err != nil {
		return err
	}
	renderer, err := registry.Get(c.Format)
	if err != nil {
		return err
	}
	themeCfg, err := render.ResolveTheme(render.NewManifestSelector(), cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return err
	}

	output, err := renderer.Render(context.Background(), b.View(), render.RenderOptions{Theme: themeCfg})
	if err != nil {
		return err
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, string(output))
	return err
}

func loadConfig(globals *Globals) (*config.Config, error) {
	path := ""
	if globals != nil {
		path = globals.Config
	}
	return config.LoadWithEnv(path)
}

func htmlOptions(cfg *config.Config) []html.Option {
	opts := []html.Option{html.WithStylesheet(web.AssetsPrefix + html.StylesheetName)}
	if cfg.Page.TemplatesDir != "" {
		opts = append(opts, html.WithTemplatesDir(cfg.Page.TemplatesDir))
	}
	return opts
}

func newHandler(cfg *config.Config, b *book.Book) (http.Handler, error) {
	registry, err := renderers.NewRegistry(htmlOptions(cfg)...)
	if err != nil {
		return nil, err
	}
	themeCfg, err := render.ResolveTheme(render.NewManifestSelector(), cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, err
	}
	return web.NewHandler(b, registry,
		web.WithRenderOptions(render.RenderOptions{Theme: themeCfg}),
		web.WithAssets(html.AssetsFS()),
	)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contactbook"),
		kong.Description("A small contact book served as HTML or driven from the terminal."),
		kong.Vars{"version": version},
	)
	if err := ctx.Run(&cli.Globals); err != nil {
		log.Fatalf("error: %v", err)
	}
}
