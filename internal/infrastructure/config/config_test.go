package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite provides a test suite for configuration loading
type ConfigTestSuite struct {
	suite.Suite
}

func (suite *ConfigTestSuite) TestDefaults() {
	cfg, err := Load("")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "kookt", cfg.App.Name)
	assert.Equal(suite.T(), "development", cfg.App.Environment)
	assert.True(suite.T(), cfg.IsDevelopment())
	assert.Equal(suite.T(), 8080, cfg.Server.Port)
	assert.Equal(suite.T(), 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(suite.T(), "memory", cfg.Storage.Backend)
	assert.Equal(suite.T(), "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(suite.T(), 4000, cfg.AI.MaxTokens)
	assert.InDelta(suite.T(), 0.7, cfg.AI.Temperature, 0.001)
	assert.Equal(suite.T(), 30*time.Second, cfg.AI.Timeout())
	assert.False(suite.T(), cfg.AI.IsConfigured())
	assert.Equal(suite.T(), "info", cfg.Logging.Level)
}

func (suite *ConfigTestSuite) TestEnvironmentOverrides() {
	suite.T().Setenv("KOOKT_SERVER_PORT", "9090")
	suite.T().Setenv("KOOKT_AI_API_KEY", "sk-test")
	suite.T().Setenv("KOOKT_STORAGE_BACKEND", "redis")

	cfg, err := Load("")

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 9090, cfg.Server.Port)
	assert.True(suite.T(), cfg.AI.IsConfigured())
	assert.Equal(suite.T(), "redis", cfg.Storage.Backend)
}

func (suite *ConfigTestSuite) TestConfigFile() {
	dir := suite.T().TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  environment: production
server:
  port: 3000
ai:
  model: gpt-4o
`)
	require.NoError(suite.T(), os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "production", cfg.App.Environment)
	assert.False(suite.T(), cfg.IsDevelopment())
	assert.Equal(suite.T(), 3000, cfg.Server.Port)
	assert.Equal(suite.T(), "gpt-4o", cfg.AI.Model)
	// untouched values keep their defaults
	assert.Equal(suite.T(), "memory", cfg.Storage.Backend)
}

func (suite *ConfigTestSuite) TestValidation() {
	suite.Run("InvalidPort_ShouldFail", func() {
		suite.T().Setenv("KOOKT_SERVER_PORT", "99999")
		_, err := Load("")
		assert.Error(suite.T(), err)
	})

	suite.Run("UnknownBackend_ShouldFail", func() {
		suite.T().Setenv("KOOKT_STORAGE_BACKEND", "cassandra")
		_, err := Load("")
		assert.Error(suite.T(), err)
	})

	suite.Run("InvalidTemperature_ShouldFail", func() {
		suite.T().Setenv("KOOKT_AI_TEMPERATURE", "3.5")
		_, err := Load("")
		assert.Error(suite.T(), err)
	})
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
