package ipl

import "github.com/go-stdlog/stdlog"

type Config struct {
	// Models resolves model IDs to display names when encoding text output
	// and when annotating the LOD table artifact. If unset, every lookup
	// yields the "unknown" placeholder.
	Models ModelResolver

	// Logger allows a given stdlog.Logger instance to be set as the system
	// logger. If unset, no logs will be generated.
	Logger stdlog.Logger
}

func (c Config) GetModels() ModelResolver {
	if c.Models != nil {
		return c.Models
	}
	return TableResolver(nil)
}

func (c Config) GetLogger() stdlog.Logger {
	if c.Logger != nil {
		return c.Logger.Named("ipl")
	}
	return stdlog.Discard
}
