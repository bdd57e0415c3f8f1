/*
Package config loads the flat network configuration an Engine needs to
connect, using toml.

An example configuration looks like this:

	[network]
	host = "irc.example.org"
	port = 6697
	nickname = "mybot"
	username = "mybot"
	realname = "IRC Engine Bot"
	password = ""
	ssl = true
	sendinterval = "100ms"
*/
package config

import (
	"io"
	"io/ioutil"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// DefaultSendInterval mirrors client.DefaultSendInterval so this package
// does not need to import client just to name the fallback value.
const DefaultSendInterval = 100 * time.Millisecond

// Network holds the connection/handshake parameters for a single server.
type Network struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`

	Nickname string `toml:"nickname"`
	Username string `toml:"username"`
	Realname string `toml:"realname"`
	Password string `toml:"password"`

	SSL bool `toml:"ssl"`

	SendInterval duration `toml:"sendinterval"`
}

// Config is the top-level decoded document; only a [network] table is
// recognized, matching the single-connection shape of this module.
type Config struct {
	Network Network `toml:"network"`
}

// duration wraps time.Duration so toml.Decode can parse a human string like
// "100ms" via encoding.TextUnmarshaler, rather than requiring callers to
// write out nanoseconds.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(err, "config: invalid sendinterval")
	}
	*d = duration(parsed)
	return nil
}

// Duration returns the configured send interval, or DefaultSendInterval if
// the field was left unset.
func (n Network) Duration() time.Duration {
	if n.SendInterval == 0 {
		return DefaultSendInterval
	}
	return time.Duration(n.SendInterval)
}

// Load reads and decodes a TOML config file from disk.
func Load(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, errors.Wrapf(err, "config: failed to load %q", path)
	}
	return &c, nil
}

// FromReader decodes a TOML config document from an arbitrary reader.
func FromReader(r io.Reader) (*Config, error) {
	buf, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "config: failed to read config")
	}

	var c Config
	if _, err := toml.Decode(string(buf), &c); err != nil {
		return nil, errors.Wrap(err, "config: failed to decode config")
	}
	return &c, nil
}
