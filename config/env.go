package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Structs

// Env holds the credentials for the remote mail
// account. They live in an .env file next to the
// binary instead of the main config file so that
// the latter can be checked in without secrets.
type Env struct {
	User     string
	Password string
}

// Functions

// LoadEnv looks for an .env file in the working directory
// of go-imap4 and reads in all defined values.
func LoadEnv() (*Env, error) {

	// Load environment file.
	if err := godotenv.Load(".env"); err != nil {
		return nil, fmt.Errorf("failed to read in .env file with: %v", err)
	}

	// Fill variables from .env into struct.
	env := &Env{
		User:     os.Getenv("IMAP4_USER"),
		Password: os.Getenv("IMAP4_PASSWORD"),
	}

	if (env.User == "") || (env.Password == "") {
		return nil, fmt.Errorf("the .env file has to define both IMAP4_USER and IMAP4_PASSWORD")
	}

	return env, nil
}
