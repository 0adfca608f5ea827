package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/feedcorpus/internal/core/services"
	"github.com/custodia-labs/feedcorpus/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "feedcorpus", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{
		"ingest", "articles", "terms", "stopwords", "find", "near", "hot",
		"matrix", "similarity", "timeline", "feeds", "settings", "mcp", "version",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_LogLevelFlag(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	defer logger.SetVerbose(false)

	_, err := execute(t, "--log-level", "info", "stopwords", "list")
	require.NoError(t, err)
	assert.True(t, logger.Enabled(logger.LevelInfo))
	assert.False(t, logger.Enabled(logger.LevelDebug))
}

func TestRootCmd_InvalidLogLevel(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	defer logger.SetVerbose(false)

	_, err := execute(t, "--log-level", "loud", "stopwords", "list")
	assert.Error(t, err)
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	defer logger.SetVerbose(false)

	_, err := execute(t, "-v", "stopwords", "list")
	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestRootCmd_BootstrapRunsOnce(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	corpusService = nil

	var calls, closed int
	SetBootstrap(func(context.Context, string) (Services, error) {
		calls++
		return Services{
			Corpus: services.NewCorpus(nil),
			Close: func() error {
				closed++
				return nil
			},
		}, nil
	})

	out, err := execute(t, "stopwords", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No stop words.")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, closed)

	_, err = execute(t, "stopwords", "list")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRootCmd_BootstrapError(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	corpusService = nil

	SetBootstrap(func(context.Context, string) (Services, error) {
		return Services{}, errors.New("disk on fire")
	})

	_, err := execute(t, "stopwords", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestRootCmd_VersionSkipsBootstrap(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	corpusService = nil

	SetBootstrap(func(context.Context, string) (Services, error) {
		t.Fatal("bootstrap must not run for version")
		return Services{}, nil
	})

	_, err := execute(t, "version")
	assert.NoError(t, err)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

func TestRootCmd_ConfigDirReachesBootstrap(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	corpusService = nil

	var got string
	SetBootstrap(func(_ context.Context, dir string) (Services, error) {
		got = dir
		return Services{Corpus: services.NewCorpus(nil)}, nil
	})

	_, err := execute(t, "--config-dir", "/tmp/feedcorpus-test", "stopwords", "list")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/feedcorpus-test", got)
}
