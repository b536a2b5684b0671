package bootstrap

import (
	"github.com/kbukum/speechkit/config"
)

// Config is the interface constraint for application configuration types.
// Any struct that embeds config.ServiceConfig satisfies it through promoted
// methods, as long as it overrides ApplyDefaults and Validate when it adds
// sections of its own.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
