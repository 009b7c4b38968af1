package config

import (
	"time"

	"github.com/gopatchy/stakx/internal/frontmatter"
	"github.com/gopatchy/stakx/internal/permalink"
)

// Flags are the runtime switches passed explicitly to each build stage.
type Flags struct {
	PreserveCase  bool
	IncludeDrafts bool
	StrictRoutes  bool
	Location      *time.Location
}

// Flags returns the runtime flags set by the configuration.
func (c *Config) Flags() Flags {
	return Flags{
		PreserveCase:  c.PreserveCase,
		IncludeDrafts: c.IncludeDrafts,
		StrictRoutes:  c.StrictRoutes,
		Location:      c.Location(),
	}
}

func (f Flags) FrontMatter() frontmatter.Options {
	return frontmatter.Options{
		Location: f.Location,
	}
}

func (f Flags) Permalink() permalink.Options {
	return permalink.Options{
		PreserveCase: f.PreserveCase,
	}
}
