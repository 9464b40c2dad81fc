package config

import (
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// RoleSeed is one entry of the role registry seeded on first use.
type RoleSeed struct {
	Name       string `mapstructure:"name"`
	Privileged bool   `mapstructure:"privileged"`
}

// RosterConfig carries the ward-specific roster settings: the default
// role registry and the priesthood tiers allowed to fill privileged
// roles. Both can be overridden from a roster.yml file; the defaults
// match the ward this application was originally built for.
type RosterConfig struct {
	Roles           []RoleSeed `mapstructure:"roles"`
	PrivilegedTiers []string   `mapstructure:"privilegedTiers"`
}

func DefaultRosterConfig() RosterConfig {
	return RosterConfig{
		Roles: []RoleSeed{
			{Name: "祝福パン", Privileged: true},
			{Name: "祝福水", Privileged: true},
			{Name: "パス1"},
			{Name: "パス2"},
			{Name: "パス3"},
			{Name: "パス4"},
		},
		PrivilegedTiers: []string{"melchizedek", "priest"},
	}
}

// RosterConfigHolder exposes the current roster configuration and keeps
// it fresh when the backing file changes.
type RosterConfigHolder struct {
	current atomic.Value // holds RosterConfig
}

func NewRosterConfigHolder() (*RosterConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("roster")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/roster")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &RosterConfigHolder{}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		holder.current.Store(DefaultRosterConfig())
		return holder, nil
	}

	cfg, err := unmarshalRoster(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(cfg)

	v.OnConfigChange(func(_ fsnotify.Event) {
		updated, err := unmarshalRoster(v)
		if err != nil {
			zap.L().Warn("roster config reload failed", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		zap.L().Info("roster config reloaded",
			zap.Int("roles", len(updated.Roles)),
		)
	})
	v.WatchConfig()

	return holder, nil
}

// Current returns the latest roster configuration snapshot.
func (h *RosterConfigHolder) Current() RosterConfig {
	cfg, ok := h.current.Load().(RosterConfig)
	if !ok {
		return DefaultRosterConfig()
	}
	return cfg
}

func unmarshalRoster(v *viper.Viper) (RosterConfig, error) {
	var cfg RosterConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return RosterConfig{}, err
	}
	if len(cfg.Roles) == 0 {
		cfg.Roles = DefaultRosterConfig().Roles
	}
	if len(cfg.PrivilegedTiers) == 0 {
		cfg.PrivilegedTiers = DefaultRosterConfig().PrivilegedTiers
	}
	return cfg, nil
}
