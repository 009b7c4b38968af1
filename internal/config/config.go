// Package config loads the site configuration and the runtime flags derived
// from it.
package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"

	"github.com/gopatchy/stakx/internal/file"
	"github.com/gopatchy/stakx/internal/frontmatter"
	"github.com/gopatchy/stakx/internal/fsys"
	"github.com/gopatchy/stakx/pkg/errors"
)

// Collection is a named folder of content items.
type Collection struct {
	Name   string
	Folder string
}

// Validate validates the collection.
func (c Collection) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Folder, validation.Required),
	)
}

// Config is the site configuration.
type Config struct {
	Title         string
	BaseURL       string
	Target        string
	PageViews     []string
	Collections   []Collection
	Data          []string
	Timezone      string
	PreserveCase  bool
	IncludeDrafts bool
	StrictRoutes  bool

	// Site is the full decoded configuration, exposed to front matter as
	// %{site.*}.
	Site map[string]any
}

// NewDefault returns a Config with default values.
func NewDefault() *Config {
	return &Config{
		Target:       "_site",
		PageViews:    []string{"_pages"},
		Collections:  []Collection{},
		Data:         []string{"_data"},
		StrictRoutes: true,
		Site:         map[string]any{},
	}
}

// Load reads the configuration at path, or the first _config.<ext> in the
// site root when path is "". A site without a config file uses defaults.
func Load(fsys *fsys.FS, path string) (*Config, error) {
	if path == "" {
		path = fsys.FindFile("_config")
	}

	if path == "" {
		cfg := NewDefault()
		return cfg, cfg.Validate()
	}

	data, err := file.LoadData(fsys, path)
	if err != nil {
		return nil, err
	}

	cfg, err := FromData(data)
	if err != nil {
		return nil, errors.WithFile(path, err)
	}

	return cfg, nil
}

// FromData builds a validated Config from decoded configuration data.
func FromData(data any) (*Config, error) {
	cfg := NewDefault()

	if data == nil {
		return cfg, cfg.Validate()
	}

	m, ok := frontmatter.Plain(data).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%T: not a mapping (%w)", data, errors.ErrInvalidConfig)
	}

	cfg.Site = m

	err := cfg.decode(m)
	if err != nil {
		return nil, fmt.Errorf("%w (%w)", err, errors.ErrInvalidConfig)
	}

	return cfg, cfg.Validate()
}

func (c *Config) decode(m map[string]any) error {
	var err error

	for key, dst := range map[string]*string{
		"title":    &c.Title,
		"baseurl":  &c.BaseURL,
		"target":   &c.Target,
		"timezone": &c.Timezone,
	} {
		v, found := m[key]
		if !found {
			continue
		}

		*dst, err = cast.ToStringE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	for key, dst := range map[string]*bool{
		"preserve_case":  &c.PreserveCase,
		"include_drafts": &c.IncludeDrafts,
		"strict_routes":  &c.StrictRoutes,
	} {
		v, found := m[key]
		if !found {
			continue
		}

		*dst, err = cast.ToBoolE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	for key, dst := range map[string]*[]string{
		"pageviews": &c.PageViews,
		"data":      &c.Data,
	} {
		v, found := m[key]
		if !found {
			continue
		}

		*dst, err = cast.ToStringSliceE(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	if v, found := m["collections"]; found {
		c.Collections, err = decodeCollections(v)
		if err != nil {
			return fmt.Errorf("collections: %w", err)
		}
	}

	return nil
}

func decodeCollections(v any) ([]Collection, error) {
	list, err := cast.ToSliceE(v)
	if err != nil {
		return nil, err
	}

	ret := []Collection{}

	for i, e := range list {
		m, err := cast.ToStringMapE(e)
		if err != nil {
			return nil, fmt.Errorf("%d: %w", i, err)
		}

		ret = append(ret, Collection{
			Name:   cast.ToString(m["name"]),
			Folder: cast.ToString(m["folder"]),
		})
	}

	return ret, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Target, validation.Required),
		validation.Field(&c.Collections, validation.By(uniqueCollections)),
		validation.Field(&c.Timezone, validation.By(loadableTimezone)),
	)
	if err != nil {
		return fmt.Errorf("%w (%w)", err, errors.ErrInvalidConfig)
	}

	return nil
}

func uniqueCollections(value any) error {
	seen := map[string]bool{}

	for _, c := range value.([]Collection) {
		if seen[c.Name] {
			return fmt.Errorf("duplicate collection %q", c.Name)
		}
		seen[c.Name] = true
	}

	return nil
}

func loadableTimezone(value any) error {
	_, err := time.LoadLocation(value.(string))
	return err
}

// Location returns the configured time zone, or time.Local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}

	return loc
}

// Collection returns the collection with the given name.
func (c *Config) Collection(name string) (Collection, error) {
	for _, col := range c.Collections {
		if col.Name == name {
			return col, nil
		}
	}

	return Collection{}, fmt.Errorf("%s: %w", name, errors.ErrUnknownCollection)
}
