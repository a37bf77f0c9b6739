package config_test

import (
	"testing"

	"github.com/bennysakos/searchlight/internal/config"
	"github.com/stretchr/testify/require"
)

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

var allVariablesExceptEnv = []string{"RATINGS_BASE_URL", "SENTRY_DSN", "GOOGLE_CLOUD_PROJECT", "PORT"}

func TestGetConfig(t *testing.T) {
	compareConfig := func(ratingsBaseURL, sentryDSN, googleCloudProject, port string, env environment, conf config.Config) {
		t.Helper()
		require.Equal(t, ratingsBaseURL, conf.RatingsBaseURL())
		require.Equal(t, sentryDSN, conf.SentryDSN())
		require.Equal(t, googleCloudProject, conf.GoogleCloudProject())
		require.Equal(t, port, conf.Port())
		require.Equal(t, env == production, conf.IsProduction())
		require.Equal(t, env == staging, conf.IsStaging())
		require.Equal(t, env == development, conf.IsDevelopment())
	}

	t.Run("ensure base environment is clean", func(t *testing.T) {
		t.Run("environment is missing", func(t *testing.T) {
			// SEARCHLIGHT_ENVIRONMENT is required, so this should fail
			_, err := config.ConfigFromEnv()
			require.ErrorIs(t, err, config.ErrMissingRequiredValue)
		})

		t.Run("development environment uses defaults", func(t *testing.T) {
			t.Setenv("SEARCHLIGHT_ENVIRONMENT", "development")

			conf, err := config.ConfigFromEnv()
			require.NoError(t, err)
			compareConfig(config.DEFAULT_RATINGS_BASE_URL, "", "", config.DEFAULT_PORT, development, conf)
		})
	})

	t.Run("values are read correctly", func(t *testing.T) {
		t.Setenv("RATINGS_BASE_URL", "https://ratings.example.com")
		t.Setenv("SENTRY_DSN", "SENTRY_DSN")
		t.Setenv("GOOGLE_CLOUD_PROJECT", "GOOGLE_CLOUD_PROJECT")
		t.Setenv("PORT", "9090")

		for _, env := range []environment{production, staging, development} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("SEARCHLIGHT_ENVIRONMENT", string(env))

				conf, err := config.ConfigFromEnv()
				require.NoError(t, err)
				compareConfig("https://ratings.example.com", "SENTRY_DSN", "GOOGLE_CLOUD_PROJECT", "9090", env, conf)
			})
		}
	})

	t.Run("production and staging fail when missing sentry dsn", func(t *testing.T) {
		for _, variable := range allVariablesExceptEnv {
			t.Setenv(variable, "placeholder_value")
		}
		t.Setenv("RATINGS_BASE_URL", "https://ratings.example.com")

		for _, env := range []environment{production, staging} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("SEARCHLIGHT_ENVIRONMENT", string(env))
				t.Setenv("SENTRY_DSN", "")

				_, err := config.ConfigFromEnv()
				require.ErrorIs(t, err, config.ErrMissingRequiredValue)
			})
		}
	})

	t.Run("invalid environment", func(t *testing.T) {
		for _, env := range []string{"", "invalid", "my-env"} {
			t.Run(env, func(t *testing.T) {
				t.Setenv("SEARCHLIGHT_ENVIRONMENT", env)
				_, err := config.ConfigFromEnv()
				require.ErrorIs(t, err, config.ErrInvalidValue)
			})
		}
	})

	t.Run("invalid base url", func(t *testing.T) {
		t.Setenv("SEARCHLIGHT_ENVIRONMENT", "development")

		for _, baseURL := range []string{"ratings.example.com", "ftp://ratings.example.com", "https://", "::"} {
			t.Run(baseURL, func(t *testing.T) {
				t.Setenv("RATINGS_BASE_URL", baseURL)
				_, err := config.ConfigFromEnv()
				require.ErrorIs(t, err, config.ErrInvalidValue)
			})
		}
	})
}
