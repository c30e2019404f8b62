package storage

import (
	"net/url"
	"strings"

	"github.com/mutualnet/mutualpool/lib/errors"
)

// Config is parsed from a storage uri,
//  * "file:///var/lib/mutualpool/db"
//  * "memory://"
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.StorageConfigInvalid.Clone().SetData("uri", s)
	}

	switch u.Scheme {
	case "memory":
		return &Config{Scheme: "memory"}, nil
	case "file":
		path := u.Path
		if len(u.Host) > 0 {
			path = u.Host + u.Path
		}
		if len(strings.TrimSpace(path)) < 1 {
			return nil, errors.StorageConfigInvalid.Clone().SetData("uri", s)
		}
		return &Config{Scheme: "file", Path: path}, nil
	default:
		return nil, errors.StorageConfigInvalid.Clone().SetData("uri", s)
	}
}

func (c *Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}
	return "file://" + c.Path
}
