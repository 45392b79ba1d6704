package main

import (
	"strings"
	"sync"

	"telecine/internal/client"
	"telecine/internal/config"
)

type commandContext struct {
	configFlag *string
	bindFlag   *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, bindFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		bindFlag:   bindFlag,
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
		c.config = cfg
	})
	return c.config, c.configErr
}

// apiClient resolves the daemon address from the --address flag, falling
// back to the configured bind address.
func (c *commandContext) apiClient() (*client.Client, error) {
	if c.bindFlag != nil && strings.TrimSpace(*c.bindFlag) != "" {
		return client.New(*c.bindFlag), nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return client.New(cfg.Paths.APIBind), nil
}
