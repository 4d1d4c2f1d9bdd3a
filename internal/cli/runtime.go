package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/commentdash/internal/config"
	"github.com/rshade/commentdash/internal/logging"
	"github.com/rshade/commentdash/internal/session"
	"github.com/rshade/commentdash/internal/source"
	"github.com/rshade/commentdash/internal/source/cache"
	"github.com/rshade/commentdash/internal/store"
)

// loadConfig reads the config file named by --config (or the default),
// overlays the project config, applies the global flag overrides, and
// installs the result as the global config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
		cmd.SetContext(ctx)
	}

	path, _ := cmd.Flags().GetString(flagConfig)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, &ExitError{Code: ExitConfig, Err: err}
	}

	projectFlag, _ := cmd.Flags().GetString(flagProjectDir)
	wd, _ := os.Getwd()
	cfg = config.NewWithProjectDir(ctx, cfg, config.ResolveProjectDir(ctx, projectFlag, wd))

	if backend, _ := cmd.Flags().GetString(flagStore); backend != "" {
		cfg.Store.Backend = backend
	}
	if baseURL, _ := cmd.Flags().GetString(flagBaseURL); baseURL != "" {
		cfg.Source.BaseURL = baseURL
	}
	if noCache, _ := cmd.Flags().GetBool(flagNoCache); noCache {
		cfg.Cache.Enabled = false
	}

	config.SetGlobalConfig(cfg)
	return cfg, nil
}

// runtime holds the services a data command needs.
type runtime struct {
	cfg     *config.Config
	store   store.Store
	source  *source.Client
	session *session.Session
}

// openRuntime validates the global config and builds the store, data
// source, and session from it. Callers must Close the runtime.
func openRuntime(ctx context.Context) (*runtime, error) {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return nil, &ExitError{Code: ExitConfig, Err: err}
	}

	storePath, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Store.Backend, storePath)
	if err != nil {
		return nil, fmt.Errorf("opening %s state store: %w", cfg.Store.Backend, err)
	}

	client, err := newSourceClient(ctx, cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	sess := session.New(st, client)
	sess.SetDefaultViewState(cfg.DefaultViewState())

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("store_backend", cfg.Store.Backend).
		Str("store_path", storePath).
		Str("base_url", client.BaseURL()).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("runtime ready")

	return &runtime{cfg: cfg, store: st, source: client, session: sess}, nil
}

// Close releases the store.
func (r *runtime) Close() error {
	return r.store.Close()
}

// newSourceClient builds the HTTP data source, with the response cache when
// it is enabled.
func newSourceClient(ctx context.Context, cfg *config.Config) (*source.Client, error) {
	timeout, err := cfg.Source.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	opts := source.Options{
		BaseURL:   cfg.Source.BaseURL,
		Timeout:   timeout,
		UserAgent: cfg.Source.UserAgent,
	}

	if cfg.Cache.Enabled {
		fileCache, cacheErr := openCache(cfg)
		if cacheErr != nil {
			logging.FromContext(ctx).Warn().Ctx(ctx).Err(cacheErr).Msg("response cache unavailable, fetching directly")
		} else {
			if cleanupErr := fileCache.CleanupExpired(); cleanupErr != nil {
				logging.FromContext(ctx).Debug().Ctx(ctx).Err(cleanupErr).Msg("cache cleanup failed")
			}
			opts.Cache = fileCache
		}
	}

	return source.NewClient(opts), nil
}

func openCache(cfg *config.Config) (*cache.FileStore, error) {
	ttl, err := cfg.Cache.TTLDuration()
	if err != nil {
		return nil, err
	}
	dir, err := cfg.CacheDirectory()
	if err != nil {
		return nil, err
	}
	return cache.NewFileStore(dir, true, ttl)
}
