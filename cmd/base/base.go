// Package base holds the configuration and logging setup shared by the udpframe commands.
package base

import (
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stoewer/go-strcase"
	"os"
	"projekt/udpframe/lib/beacon"
	"projekt/udpframe/lib/ipaddr"
	"time"
)

var (
	Port      = 23520
	Magic     = "sync"
	Announce  = "hello"
	EnvPrefix = "UDPFRAME"
)

const (
	KeyPort        = "port"
	KeyMagic       = "magic"
	KeyInterface   = "interface"
	KeyTarget      = "target"
	KeyLock        = "lock"
	KeyAnnounce    = "announce"
	KeyInterval    = "interval"
	KeyPoll        = "poll"
	KeyFilterLocal = "filter-local"
	KeyLogLevel    = "log-level"
)

var keys = []string{
	KeyPort, KeyMagic, KeyInterface, KeyTarget, KeyLock,
	KeyAnnounce, KeyInterval, KeyPoll, KeyFilterLocal, KeyLogLevel,
}

var (
	ErrPort    = errors.New("base: port must be between 1 and 65535")
	ErrAddress = errors.New("base: invalid IPv4 address")
)

type Config struct {
	Port        uint16
	Magic       string
	Interface   ipaddr.Addr
	Target      ipaddr.Addr
	Lock        bool
	Announce    string
	Interval    time.Duration
	Poll        time.Duration
	FilterLocal bool
	LogLevel    logrus.Level
}

// Flags registers a flag for every configuration key.
func Flags(fs *pflag.FlagSet) {
	fs.Int(KeyPort, Port, "UDP port to bind and send to")
	fs.String(KeyMagic, Magic, "magic prefix of every datagram")
	fs.String(KeyInterface, ipaddr.Any.String(), "address of the interface to bind")
	fs.String(KeyTarget, ipaddr.Broadcast.String(), "address to send to")
	fs.Bool(KeyLock, false, "ignore datagrams from anyone but the target")
	fs.String(KeyAnnounce, Announce, "payload broadcast until a peer answers")
	fs.Duration(KeyInterval, beacon.DefaultAnnounceInterval, "interval between announcements")
	fs.Duration(KeyPoll, beacon.DefaultPollInterval, "interval between receive polls")
	fs.Bool(KeyFilterLocal, true, "ignore datagrams sent from this host")
	fs.String(KeyLogLevel, logrus.InfoLevel.String(), "log level")
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strcase.UpperSnakeCase(key)
}

// Load reads the configuration with the precedence flag, environment, config file, default.
// The config file is optional and skipped if file is empty.
func Load(fs *pflag.FlagSet, file string) (*Config, error) {
	v := viper.New()
	for _, key := range keys {
		if err := v.BindEnv(key, EnvName(key)); err != nil {
			return nil, err
		}
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (c *Config, err error) {
	c = &Config{
		Magic:       v.GetString(KeyMagic),
		Lock:        v.GetBool(KeyLock),
		Announce:    v.GetString(KeyAnnounce),
		Interval:    v.GetDuration(KeyInterval),
		Poll:        v.GetDuration(KeyPoll),
		FilterLocal: v.GetBool(KeyFilterLocal),
	}
	port := v.GetInt(KeyPort)
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("%w: %d", ErrPort, port)
	}
	c.Port = uint16(port)
	if c.Interface, err = address(v, KeyInterface); err != nil {
		return nil, err
	}
	if c.Target, err = address(v, KeyTarget); err != nil {
		return nil, err
	}
	if c.LogLevel, err = logrus.ParseLevel(v.GetString(KeyLogLevel)); err != nil {
		return nil, err
	}
	return c, nil
}

func address(v *viper.Viper, key string) (ipaddr.Addr, error) {
	s := v.GetString(key)
	a, ok := ipaddr.Parse(s)
	if !ok {
		return ipaddr.Any, fmt.Errorf("%w for %s: %q", ErrAddress, key, s)
	}
	return a, nil
}

// SetupLogging configures the standard logrus logger that all commands log with.
func SetupLogging(level logrus.Level) {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.TimeOnly,
	})
}
