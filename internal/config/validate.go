package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateInspect(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.MediaDir == "" {
		return errors.New("paths.media_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.MediaDir == c.Paths.OutputDir {
		return errors.New("paths.output_dir must differ from paths.media_dir")
	}
	return nil
}

func (c *Config) validateInspect() error {
	if c.Inspect.CropSampleSeconds > 60 {
		return errors.New("inspect.crop_sample_seconds must be 60 or less")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
