package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setBase(t *testing.T) {
	t.Setenv("JWT_SECRET", "a")
	t.Setenv("REFRESH_SECRET", "b")
	t.Setenv("STORE_ADAPTER", "memory")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("DATABASE_URL", "")
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":5000", cfg.ListenAddr)
	require.Equal(t, "memory", cfg.StoreAdapter)
}

func TestLoadRequiresSecrets(t *testing.T) {
	setBase(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)

	setBase(t)
	t.Setenv("REFRESH_SECRET", "")

	_, err = Load()
	require.Error(t, err)
}

func TestLoadAdapterValidation(t *testing.T) {
	setBase(t)
	t.Setenv("STORE_ADAPTER", "mongo")

	_, err := Load()
	require.Error(t, err, "mongo adapter without MONGO_URI")

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)

	setBase(t)
	t.Setenv("STORE_ADAPTER", "postgres")

	_, err = Load()
	require.Error(t, err, "postgres adapter without DATABASE_URL")

	setBase(t)
	t.Setenv("STORE_ADAPTER", "cassandra")

	_, err = Load()
	require.Error(t, err)
}
