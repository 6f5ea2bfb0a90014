package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/willmadison/patreon-sync-tools/patreon"
	patreonhttp "github.com/willmadison/patreon-sync-tools/patreon/http"
	"github.com/willmadison/patreon-sync-tools/patreon/sqlite"
)

// Environment provides an abstraction around the execution environment
type Environment struct {
	Args   []string
	Stderr io.Writer
	Stdout io.Writer
	Stdin  io.Reader
}

type SyncCmd struct {
	CampaignID string `help:"only sync this campaign (defaults to every campaign the token can see)."`
}

func (cmd *SyncCmd) Run(env *Environment, client patreonhttp.Client, store sqlite.Store) error {
	defer store.Close()

	ctx := context.Background()

	var campaigns []patreon.Campaign

	if cmd.CampaignID != "" {
		campaign, err := client.Campaign(ctx, cmd.CampaignID)
		if err != nil {
			return fmt.Errorf("failed to fetch campaign %s: %w", cmd.CampaignID, err)
		}
		campaigns = append(campaigns, campaign)
	} else {
		page, err := client.Campaigns(ctx)
		if err != nil {
			return fmt.Errorf("failed to list campaigns: %w", err)
		}
		logRejected(page.Rejected)
		campaigns = page.Items
	}

	for _, campaign := range campaigns {
		logger := log.WithField("campaign", campaign.ID)

		batch := []patreon.Entity{&campaign}
		batch = append(batch, embedded(logger, campaign.Tiers)...)
		batch = append(batch, embedded(logger, campaign.Goals)...)

		if err := store.SaveAll(ctx, batch...); err != nil {
			return err
		}

		members, err := syncPages(ctx, store, func(cursor string) (patreonhttp.Page[patreon.Member], error) {
			return client.Members(ctx, campaign.ID, cursor)
		})
		if err != nil {
			return err
		}

		posts, err := syncPages(ctx, store, func(cursor string) (patreonhttp.Page[patreon.Post], error) {
			return client.Posts(ctx, campaign.ID, cursor)
		})
		if err != nil {
			return err
		}

		logger.WithField("members", members).WithField("posts", posts).Info("campaign synced")
		fmt.Fprintf(env.Stdout, "%s: %d members, %d posts\n", campaign.ID, members, posts)
	}

	return nil
}

// syncPages walks every page returned by fetch, saving the accepted records
// of each page together and logging the rejected ones. It returns the
// number of records saved.
func syncPages[T any, P interface {
	*T
	patreon.Entity
}](ctx context.Context, store sqlite.Store, fetch func(cursor string) (patreonhttp.Page[T], error)) (int, error) {
	var saved int
	var cursor string

	for {
		page, err := fetch(cursor)
		if err != nil {
			return saved, err
		}

		logRejected(page.Rejected)

		entities := make([]patreon.Entity, 0, len(page.Items))
		for i := range page.Items {
			entities = append(entities, P(&page.Items[i]))
		}

		if err := store.SaveAll(ctx, entities...); err != nil {
			return saved, err
		}
		saved += len(entities)

		if page.Next == "" {
			return saved, nil
		}
		cursor = page.Next
	}
}

// embedded returns the related records that came embedded in refs. Linked
// ones are logged and skipped.
func embedded[T any, P interface {
	*T
	patreon.Entity
}](logger *log.Entry, refs patreon.Refs[T]) []patreon.Entity {
	var entities []patreon.Entity

	for i := 0; i < refs.Len(); i++ {
		ref := refs.At(i)

		v, err := ref.Get()
		if err != nil {
			logger.WithError(err).WithField("kind", ref.Kind()).WithField("id", ref.ID()).Warn("skipping related record that was not embedded")
			continue
		}

		entities = append(entities, P(&v))
	}

	return entities
}

func logRejected(rejected []patreonhttp.Rejection) {
	for _, r := range rejected {
		log.WithError(r.Err).WithField("kind", r.Kind).WithField("id", r.ID).Warn("rejected record")
	}
}

type ServeCmd struct {
	WebhookSecret string `required:"" env:"PATREON_WEBHOOK_SECRET" help:"the secret Patreon signs webhook deliveries with."`
	Port          string `env:"PORT" default:"8080" help:"the port to listen on."`
}

func (cmd *ServeCmd) Run(env *Environment, store sqlite.Store) error {
	defer store.Close()

	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/health", patreonhttp.HealthHandler)

		api.GET("/members", patreonhttp.MembersHandler(store, ""))
		api.GET("/campaigns/:id/members", func(c *gin.Context) {
			patreonhttp.MembersHandler(store, c.Param("id"))(c)
		})

		api.POST("/webhooks/patreon", patreonhttp.WebhookHandler(cmd.WebhookSecret, store))
	}

	srv := &http.Server{
		Addr:    ":" + cmd.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %s", err)
		}
	}()
	log.Infof("Server running on :%v", cmd.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")

	return nil
}

type DecodeCmd struct {
	Kind string `arg:"" help:"the kind of record to decode (member, campaign, tier, ...)."`
	File string `arg:"" optional:"" type:"existingfile" help:"a file holding one raw JSON object; stdin when omitted."`
}

func (cmd *DecodeCmd) Run(env *Environment) error {
	in := env.Stdin

	if cmd.File != "" {
		f, err := os.Open(cmd.File)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var raw map[string]any

	dec := json.NewDecoder(in)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	entity, err := patreon.Decode(patreon.Kind(cmd.Kind), raw)
	if err != nil {
		return err
	}

	encoded, err := patreon.Encode(entity)
	if err != nil {
		return err
	}

	out := json.NewEncoder(env.Stdout)
	out.SetIndent("", "  ")
	return out.Encode(encoded)
}

type CLI struct {
	AccessToken string `env:"PATREON_ACCESS_TOKEN" help:"the creator access token used against the Patreon API."`
	APIURL      string `name:"api-url" env:"PATREON_API_URL" default:"https://www.patreon.com/api/oauth2/v2" help:"the Patreon API base url."`
	DatabaseURL string `env:"DATABASE_URL" default:"file:patreon.db" help:"where records are cached (libsql://... or file:...)."`
	LogLevel    string `default:"info" enum:"debug,info,warn,error" help:"the log level."`
	LogFormat   string `default:"text" enum:"text,json" help:"the log format."`

	Sync   SyncCmd   `cmd:"" help:"Syncs campaigns, members and posts from Patreon into the local cache."`
	Serve  ServeCmd  `cmd:"" help:"Serves the webhook receiver and the cached member overview."`
	Decode DecodeCmd `cmd:"" help:"Validates a raw record and prints it normalised."`
}

func configureLogging(env Environment, level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}

	log.SetLevel(lvl)
	log.SetOutput(env.Stderr)

	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{})
	}

	return nil
}

func Run(env Environment) int {
	app := CLI{}

	parser, err := kong.New(&app,
		kong.Name("patreon-sync"),
		kong.Description("patreon utils"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(env.Stdout, env.Stderr),
		kong.BindToProvider(func() (patreonhttp.Client, error) {
			return patreonhttp.NewPatreonClient(app.APIURL, app.AccessToken)
		}),
		kong.BindToProvider(func() (sqlite.Store, error) {
			return sqlite.Open(context.Background(), app.DatabaseURL)
		}),
	)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return 1
	}

	cntx, err := parser.Parse(env.Args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "patreon-sync: error: %v\n", err)
		return 2
	}

	if err := configureLogging(env, app.LogLevel, app.LogFormat); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return 2
	}

	if err := cntx.Run(&env); err != nil {
		log.WithError(err).WithField("command", cntx.Command()).Error("command failed")
		return 1
	}

	return 0
}
