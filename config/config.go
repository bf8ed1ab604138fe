package config

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Structs

// Config holds all information parsed from
// supplied config file.
type Config struct {
	Server Server
	Client Client
}

// Server describes the remote IMAP endpoint a session
// is established against.
type Server struct {
	Addr               string
	UseTLS             bool
	StartTLS           bool
	RootCertLoc        string
	InsecureSkipVerify bool
}

// Client is the part of the TOML config file concerned
// with the behavior of the local session.
type Client struct {
	PrometheusAddr string
	ReadTimeoutMS  int
}

// Functions

// LoadConfig takes in the path to the main config file of
// go-imap4 in TOML syntax and places the values from the file
// in the corresponding struct.
func LoadConfig(configFile string) (*Config, error) {

	conf := new(Config)

	// Parse values from TOML file into struct.
	if _, err := toml.DecodeFile(configFile, conf); err != nil {
		return nil, fmt.Errorf("failed to read in TOML config file at '%s' with: %v", configFile, err)
	}

	if conf.Server.Addr == "" {
		return nil, fmt.Errorf("config at '%s' does not name a server address", configFile)
	}

	if conf.Server.UseTLS && conf.Server.StartTLS {
		return nil, fmt.Errorf("UseTLS and StartTLS are mutually exclusive, the connection is either implicitly or explicitly encrypted")
	}

	// Resolve a relative root certificate location against
	// the directory the config file lives in.
	if (conf.Server.RootCertLoc != "") && !filepath.IsAbs(conf.Server.RootCertLoc) {

		confDir, err := filepath.Abs(filepath.Dir(configFile))
		if err != nil {
			return nil, fmt.Errorf("could not get absolute path of config directory: %v", err)
		}

		conf.Server.RootCertLoc = filepath.Join(confDir, conf.Server.RootCertLoc)
	}

	return conf, nil
}
