package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/quepf/deluge-rpc/internal/catalog"
	"github.com/quepf/deluge-rpc/internal/config"
	"github.com/quepf/deluge-rpc/internal/deluge"
	"github.com/quepf/deluge-rpc/internal/hostlist"
	"github.com/quepf/deluge-rpc/internal/logging"
	"github.com/quepf/deluge-rpc/internal/wire"
)

type commandContext struct {
	configFlag *string
	hostFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, hostFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		hostFlag:   hostFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDataDir(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// endpoint resolves which daemon to talk to: the --host flag selects a saved
// hostlist entry, otherwise the config file's [daemon] section applies.
func (c *commandContext) endpoint() (addr, username, password string, err error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", "", "", err
	}
	if c.hostFlag != nil && strings.TrimSpace(*c.hostFlag) != "" {
		list, err := hostlist.Load(cfg.HostlistPath())
		if err != nil {
			return "", "", "", err
		}
		host, err := list.Get(strings.TrimSpace(*c.hostFlag))
		if err != nil {
			return "", "", "", err
		}
		return host.Addr(), host.Username, host.Password, nil
	}
	return cfg.Addr(), cfg.Daemon.Username, cfg.Daemon.Password, nil
}

func (c *commandContext) callTimeout() time.Duration {
	cfg, err := c.ensureConfig()
	if err != nil {
		return 30 * time.Second
	}
	return time.Duration(cfg.Daemon.TimeoutSeconds) * time.Second
}

// withSession dials, logs in, runs fn, and tears the session down.
func (c *commandContext) withSession(fn func(context.Context, *deluge.Session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	addr, username, password, err := c.endpoint()
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.callTimeout())
	defer cancel()

	session, err := deluge.Connect(ctx, deluge.Options{
		Addr:   addr,
		TLS:    wire.DialOptions{InsecureSkipVerify: cfg.Daemon.TLSSkipVerify},
		Logger: logger,
	})
	if err != nil {
		return wrapDialError(err, addr)
	}
	defer session.Close()

	if username != "" {
		if _, err := session.Login(ctx, username, password); err != nil {
			return fmt.Errorf("login as %s: %w", username, err)
		}
	}
	return fn(ctx, session)
}

func (c *commandContext) withCatalog(fn func(*catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg.CatalogPath())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func wrapDialError(err error, addr string) error {
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("connect to daemon: %s refused the connection; verify deluged is running", addr)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("connect to daemon: %s did not answer in time", addr)
	default:
		return fmt.Errorf("connect to daemon: %w", err)
	}
}
