package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"instafeed/internal/config"
	"instafeed/internal/featureflags"
	"instafeed/internal/feedclient"
	"instafeed/internal/interaction"

	"github.com/spf13/cobra"
)

// cli carries the persistent flags and the lazily built client.
type cli struct {
	backendURL string
	timeout    time.Duration
	output     string
	subject    string
	flags      *featureflags.Manager
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	c := &cli{flags: featureflags.NewManager(cfg.FeatureFlags)}

	root := &cobra.Command{
		Use:           "feedctl",
		Short:         "Browse and interact with an Instafeed backend",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch c.output {
			case outputTable, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unsupported output %q (want table, json or yaml)", c.output)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.backendURL, "backend", cfg.BackendURL, "Backend base URL")
	pf.DurationVar(&c.timeout, "timeout", cfg.ClientRequestTimeout, "Per-request timeout")
	pf.StringVarP(&c.output, "output", "o", outputTable, "Output format: table, json or yaml")
	pf.StringVar(&c.subject, "subject", "feedctl", "Feature flag rollout subject")

	root.AddCommand(
		c.feedCmd(),
		c.storiesCmd(),
		c.reelsCmd(),
		c.likeCmd(),
		c.saveCmd(),
		c.tapCmd(),
		c.seenCmd(),
		c.exploreCmd(),
		c.profileCmd(),
		c.commentsCmd(),
		c.formatCmd(),
	)
	return root
}

func (c *cli) client() *feedclient.Client {
	return feedclient.New(c.backendURL, feedclient.WithTimeout(c.timeout))
}

// failures collects persist errors reported by the store.
type failures struct {
	mu   sync.Mutex
	errs []error
}

func (f *failures) add(_ context.Context, kind, id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, fmt.Errorf("%s %s: %w", kind, id, err))
}

func (f *failures) err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return errors.Join(f.errs...)
}

// openStore builds a store over the backend and loads every collection.
func (c *cli) openStore(ctx context.Context, opts ...interaction.Option) (*interaction.Store, *failures, error) {
	sink := &failures{}
	base := []interaction.Option{
		interaction.WithBaseContext(ctx),
		interaction.WithRequestTimeout(c.timeout),
		interaction.WithFeatureFlags(c.flags, c.subject),
		interaction.WithFailureSink(interaction.FailureSinkFunc(sink.add)),
	}
	store := interaction.New(c.client(), append(base, opts...)...)
	if err := store.Refresh(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("load feed: %w", err)
	}
	return store, sink, nil
}
