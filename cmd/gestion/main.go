// Command gestion is a terminal front-end for the gestion_commandes_api
// backend: clients, products, orders and pro-formas.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"github.com/diewo77/gestion-commandes/i18n"
	"github.com/diewo77/gestion-commandes/internal/client"
	"github.com/diewo77/gestion-commandes/internal/config"
	"github.com/diewo77/gestion-commandes/internal/screens"
	"github.com/diewo77/gestion-commandes/internal/session"
)

const usage = `usage: gestion [options] <commande> [action] [options]

commandes:
  login | register                 vérifie ou crée le compte (-email, -password)
  clients   list|add|edit|delete
  produits  list|add|edit|delete
  commandes list|add|edit|delete|lignes|ajouter-ligne|retirer-ligne
  proformas list|add|edit|delete
  nouvelle-commande                -client CODE -produit CODE=QTE ...
  nouvelle-proforma                -client CODE -produit CODE=QTE ...
`

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("GESTION_CONFIG"), "YAML configuration file")
	serverURL := flag.String("server", "", "Override the API base URL")
	lang := flag.String("lang", "", "Notice language (fr, en)")
	email := flag.String("email", "", "Account email")
	password := flag.String("password", "", "Account password")
	yes := flag.Bool("yes", false, "Confirm every staged action without asking")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.BaseURL = *serverURL
	}
	if *lang != "" {
		cfg.Lang = *lang
	}
	if *email != "" {
		cfg.Email = *email
	}
	if *password != "" {
		cfg.Password = *password
	}
	cfg.Lang = i18n.DetectLanguage(cfg.Lang)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(cfg, *yes, os.Stdin, os.Stdout, os.Stderr)
	if err := a.run(ctx, flag.Args()); err != nil {
		if !a.notified {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

type app struct {
	cfg      config.ClientConfig
	api      *client.Client
	sess     *session.Session
	deps     screens.Deps
	yes      bool
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	notified bool
}

func newApp(cfg config.ClientConfig, yes bool, in io.Reader, out, errOut io.Writer) *app {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
	sess := session.New()
	a := &app{
		cfg:    cfg,
		api:    client.New(cfg.BaseURL, client.WithTimeout(cfg.Timeout), client.WithTokenSource(sess), client.WithLogger(logger)),
		sess:   sess,
		yes:    yes,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
	a.deps = screens.Deps{Session: sess, Lang: cfg.Lang, Logger: logger, Notify: a.notify}
	return a
}

func (a *app) notify(n screens.Notice) {
	if n.Level == screens.LevelError {
		a.notified = true
		fmt.Fprintln(a.errOut, n.Text)
		return
	}
	fmt.Fprintln(a.out, n.Text)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.errOut, usage)
		return errors.New("missing command")
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login", "register":
		return a.authenticate(ctx, cmd == "register")
	}
	if err := a.authenticate(ctx, false); err != nil {
		return err
	}
	switch cmd {
	case "clients":
		return a.clients(ctx, rest)
	case "produits":
		return a.products(ctx, rest)
	case "commandes":
		return a.orders(ctx, rest)
	case "proformas":
		return a.proformas(ctx, rest)
	case "nouvelle-commande":
		return a.newDocument(ctx, screens.KindOrder, rest)
	case "nouvelle-proforma":
		return a.newDocument(ctx, screens.KindProforma, rest)
	default:
		fmt.Fprint(a.errOut, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// authenticate logs in with the configured credentials. Without
// credentials the session stays anonymous and guarded screens refuse to open.
func (a *app) authenticate(ctx context.Context, register bool) error {
	if a.cfg.Email == "" && !register {
		return nil
	}
	s := screens.NewAuthScreen(a.api, a.deps)
	s.Register = register
	if err := s.Submit(ctx, a.cfg.Email, a.cfg.Password); err != nil {
		return err
	}
	home := screens.NewHomeScreen(a.deps)
	if err := home.Open(); err != nil {
		return err
	}
	a.deps.Logger.Debug("session ready", "greeting", home.Greeting())
	return nil
}

// stager is a screen holding a staged destructive action.
type stager interface {
	Prompt() string
	Confirm(ctx context.Context) error
	Cancel() bool
}

// confirm asks before running the action staged on s. Anything but an
// explicit yes cancels it.
func (a *app) confirm(ctx context.Context, s stager) error {
	prompt := s.Prompt()
	if prompt == "" {
		return nil
	}
	if !a.yes {
		fmt.Fprintf(a.out, "%s [o/N] ", prompt)
		line, _ := a.in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "o", "oui", "y", "yes":
		default:
			s.Cancel()
			fmt.Fprintln(a.out, "Annulé.")
			return nil
		}
	}
	return s.Confirm(ctx)
}

// subcommand splits args into an action and a parsed flag set.
func subcommand(name string, args []string, define func(fs *flag.FlagSet)) (string, error) {
	action := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		action, args = args[0], args[1:]
	}
	fs := flag.NewFlagSet(name+" "+action, flag.ContinueOnError)
	define(fs)
	return action, fs.Parse(args)
}
