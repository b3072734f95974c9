package oauth

import (
	"github.com/sduck/slim-oauth/lib/kflags"
)

// Flags holds the command line configuration of the middleware.
type Flags struct {
	// ConfigFile is the path of the yaml provider configuration.
	ConfigFile string
	// Storage overrides the storage backend from the config file.
	Storage string
	// TokenCookie and TokenURLParam override the token delivery mechanism.
	TokenCookie   string
	TokenURLParam string
}

func DefaultFlags() *Flags {
	return &Flags{}
}

// Register registers the flags on the given FlagSet, prefixed.
func (f *Flags) Register(set kflags.FlagSet, prefix string) *Flags {
	set.StringVar(&f.ConfigFile, prefix+"config", f.ConfigFile, "Path of the yaml file holding provider credentials")
	set.StringVar(&f.Storage, prefix+"storage", f.Storage, "Return URL storage backend (session or cookie)")
	set.StringVar(&f.TokenCookie, prefix+"token-cookie", f.TokenCookie, "Name of the cookie delivering the token to the client")
	set.StringVar(&f.TokenURLParam, prefix+"token-urlparam", f.TokenURLParam, "Name of the query parameter delivering the token to the client")
	return f
}

// FromFlags returns a Modifier applying the configuration from flags.
//
// The config file, when set, is loaded first; individual flags then
// override its global options. The merged result is validated.
func FromFlags(flags *Flags) Modifier {
	return func(o *options) error {
		config := &Config{}
		if flags.ConfigFile != "" {
			loaded, err := LoadConfig(flags.ConfigFile)
			if err != nil {
				return err
			}
			config = loaded
		}

		if flags.Storage != "" {
			config.Storage = StorageBackend(flags.Storage)
		}
		if flags.TokenCookie != "" {
			config.TokenCookie = flags.TokenCookie
		}
		if flags.TokenURLParam != "" {
			config.TokenURLParam = flags.TokenURLParam
		}

		return WithConfig(config)(o)
	}
}
