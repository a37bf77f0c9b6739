package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

const DEFAULT_RATINGS_BASE_URL = "https://ratings.ranked-rtanks.online"
const DEFAULT_PORT = "8080"

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

type Config struct {
	ratingsBaseURL     string
	sentryDSN          string
	googleCloudProject string
	port               string
	env                environment
}

func (c *Config) RatingsBaseURL() string {
	return c.ratingsBaseURL
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) GoogleCloudProject() string {
	return c.googleCloudProject
}

func (c *Config) Port() string {
	return c.port
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf("Config{env: %s, ratingsBaseURL: %s, port: %s, ...}", string(c.env), c.ratingsBaseURL, c.port)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("SEARCHLIGHT_ENVIRONMENT")
	if !ok {
		return missingKey("SEARCHLIGHT_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return Config{}, fmt.Errorf("%w: SEARCHLIGHT_ENVIRONMENT (%s)", ErrInvalidValue, rawEnv)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	ratingsBaseURL := os.Getenv("RATINGS_BASE_URL")
	if ratingsBaseURL == "" {
		ratingsBaseURL = DEFAULT_RATINGS_BASE_URL
	}
	parsedBaseURL, err := url.Parse(ratingsBaseURL)
	if err != nil || parsedBaseURL.Host == "" || (parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https") {
		return Config{}, fmt.Errorf("%w: RATINGS_BASE_URL (%s)", ErrInvalidValue, ratingsBaseURL)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	googleCloudProject := os.Getenv("GOOGLE_CLOUD_PROJECT")

	port := os.Getenv("PORT")
	if port == "" {
		port = DEFAULT_PORT
	}

	if env == production || env == staging {
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return Config{
		ratingsBaseURL:     ratingsBaseURL,
		sentryDSN:          sentryDSN,
		googleCloudProject: googleCloudProject,
		port:               port,
		env:                env,
	}, nil
}
