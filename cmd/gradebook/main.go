package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gradebook/internal/backend"
	"gradebook/internal/config"
	"gradebook/internal/eventbus"
	"gradebook/internal/export"
	"gradebook/internal/i18n"
	"gradebook/internal/ui/panel"
	"gradebook/internal/ui/sections"
)

type options struct {
	configPath string
	section    string
	lang       string
	baseURL    string
}

// programAware is implemented by sections that hand the terminal to
// external programs
type programAware interface {
	SetProgram(p *tea.Program)
}

func main() {
	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "gradebook",
		Short:        "Remote gradebook instructor panel",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := root.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default "+config.NewConfigService().Path()+")")
	f.StringVar(&opts.section, "section", panel.SectionID, "dashboard section to open")
	f.StringVar(&opts.lang, "lang", "", "language of panel messages, e.g. en or es")
	f.StringVar(&opts.baseURL, "base-url", "", "course backend base URL (e.g. http://127.0.0.1:8080)")
	return root
}

func loadConfig(opts *options) (*config.Config, error) {
	svc := config.NewConfigService()
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = svc.LoadFromPath(opts.configPath)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.lang != "" {
		cfg.Lang = opts.lang
	}
	if opts.baseURL != "" {
		cfg.BaseURL = opts.baseURL
	}
	return cfg, cfg.Validate()
}

// setupLogging sends log output to path; the terminal belongs to the UI
func setupLogging(path string) (*logrus.Logger, func()) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		log.SetLevel(logrus.PanicLevel)
		return log, func() {}
	}
	log.SetOutput(logFile)
	return log, func() { _ = logFile.Close() }
}

func run(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return err
	}

	log, closeLog := setupLogging(cfg.LogFile)
	defer closeLog()
	log.WithFields(logrus.Fields{"base_url": cfg.BaseURL, "lang": cfg.Lang}).Info("starting gradebook")

	bus := eventbus.New(log)
	defer bus.Close()
	unsubscribe := subscribeAudit(bus, log)
	defer unsubscribe()

	client, err := backend.New(cfg.BaseURL, backend.WithLogger(log))
	if err != nil {
		return err
	}

	deps := panel.Deps{
		Backend:    client,
		Navigator:  export.NewDownloader(client, cfg),
		Templater:  panel.NewTableTemplate(),
		Translator: i18n.New(cfg.Lang),
		Bus:        bus,
		Logger:     log,
	}

	registry := sections.NewRegistry()
	if err := registry.Register(panel.SectionID, func() (tea.Model, error) {
		return panel.New(ctx, deps, cfg), nil
	}); err != nil {
		return err
	}

	model, err := sections.Mount(registry, opts.section)
	if err != nil {
		err = fmt.Errorf("%w (available: %s)", err, strings.Join(registry.IDs(), ", "))
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if pa, ok := model.(programAware); ok {
		pa.SetProgram(p)
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Printf("Error running program: %v\n", err)
		return err
	}
	log.Info("gradebook exited")
	return nil
}
