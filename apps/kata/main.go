package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	githubadapter "github.com/tilsley/kata/apps/kata/internal/adapters/github"
	"github.com/tilsley/kata/apps/kata/internal/config"
	"github.com/tilsley/kata/apps/kata/internal/download"
	"github.com/tilsley/kata/apps/kata/internal/gitinit"
	"github.com/tilsley/kata/apps/kata/internal/kata"
	platformgithub "github.com/tilsley/kata/apps/kata/internal/platform/github"
	"github.com/tilsley/kata/apps/kata/internal/templates"
	"github.com/tilsley/kata/apps/kata/internal/walk"
	"github.com/tilsley/kata/pkg/logging"
)

var cli struct {
	Config  string `short:"c" help:"Config file path (default: $KATA_CONFIG or the user config dir)."`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Init      initCmd      `cmd:"" help:"Scaffold a new kata directory from a template."`
	Languages languagesCmd `cmd:"" help:"List available template languages."`
	Templates templatesCmd `cmd:"" help:"List templates for a language."`
	Login     loginCmd     `cmd:"" help:"Store a GitHub token for authenticated API access."`
}

// app holds the wired collaborators shared by all commands.
type app struct {
	log      *slog.Logger
	cfg      *config.Config
	cfgPath  string
	catalog  *templates.Catalog
	collect  *walk.Collector
	download *download.Downloader
}

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	ktx := kong.Parse(&cli,
		kong.Name("kata"),
		kong.Description("Scaffold practice-exercise directories from a GitHub templates repository."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	log := logging.NewWithWriter(os.Stderr, level)

	a, err := newApp(log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}

	ktx.FatalIfErrorf(ktx.Run(a))
}

func newApp(log *slog.Logger) (*app, error) {
	cfgPath := cli.Config
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	owner, repo, err := cfg.SplitTemplatesRepo()
	if err != nil {
		return nil, err
	}

	gh := platformgithub.NewTokenClient(cfg.Token(), cfg.GithubAPIURL)
	client := githubadapter.New(gh)

	return &app{
		log:      log,
		cfg:      cfg,
		cfgPath:  cfgPath,
		catalog:  &templates.Catalog{Client: client, Owner: owner, Repo: repo},
		collect:  walk.NewCollector(client, walk.DefaultMaxInFlight),
		download: &download.Downloader{Log: log},
	}, nil
}

type initCmd struct {
	Name     string `arg:"" help:"Kata name (lowercase letters and underscores)."`
	Language string `arg:"" help:"Template language, e.g. go or java."`
	Template string `arg:"" optional:"" help:"Template name; optional when the language has only one."`

	Dir string `short:"d" default:"." help:"Parent directory for the new kata."`
	Git bool   `help:"Initialize a git repository with an initial commit."`
}

func (c *initCmd) Run(a *app) error {
	svc := &kata.InitService{
		Owner:      a.catalog.Owner,
		Repo:       a.catalog.Repo,
		Resolver:   a.catalog,
		Collector:  a.collect,
		Downloader: a.download,
		GitInit:    gitinit.Init,
		Log:        a.log,
	}

	kataDir, err := svc.Init(context.Background(), kata.InitRequest{
		ParentDir: c.Dir,
		Name:      c.Name,
		Language:  c.Language,
		Template:  c.Template,
		GitInit:   c.Git,
	})
	if err != nil {
		return err
	}

	fmt.Println(kataDir)
	return nil
}

type languagesCmd struct{}

func (c *languagesCmd) Run(a *app) error {
	langs, err := a.catalog.Languages(context.Background())
	if err != nil {
		return err
	}
	for _, l := range langs {
		fmt.Println(l)
	}
	return nil
}

type templatesCmd struct {
	Language string `arg:"" help:"Language to list templates for."`
}

func (c *templatesCmd) Run(a *app) error {
	names, err := a.catalog.TemplatesFor(context.Background(), c.Language)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Printf("%s has a single template (no name needed)\n", c.Language)
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

type loginCmd struct {
	Token string `required:"" help:"GitHub personal access token."`
}

func (c *loginCmd) Run(a *app) error {
	a.cfg.Auth.Token = c.Token
	if err := config.Save(a.cfgPath, a.cfg); err != nil {
		return err
	}
	a.log.Info("token stored", "config", a.cfgPath)
	return nil
}
