package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidatorEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "recipevault")
	t.Setenv("API_KEY", "test-key")
	t.Setenv("OCR_BASE_URL", "http://localhost:9090")
}

func TestValidateEnvPasses(t *testing.T) {
	setValidatorEnv(t)
	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvMissingSchemaVersion(t *testing.T) {
	setValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION")
}

func TestValidateEnvSchemaVersionMismatch(t *testing.T) {
	setValidatorEnv(t)
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestValidateEnvMissingVars(t *testing.T) {
	setValidatorEnv(t)
	t.Setenv("API_KEY", "")
	t.Setenv("OCR_BASE_URL", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
	assert.Contains(t, err.Error(), "OCR_BASE_URL")
}

func TestValidateEnvWithWarnings(t *testing.T) {
	setValidatorEnv(t)
	t.Setenv("DB_PASSWORD", "change_this_secure_password")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	assert.Len(t, warnings, 1)
}
