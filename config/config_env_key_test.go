package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"passwordPolicy": map[string]any{
			"minLength": 8,
		},
		"auth": map[string]any{
			"argon2": map[string]any{
				"saltLength": 16,
			},
		},
		"account": map[string]any{
			"maxWeightKg": 500,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PASSWORDPOLICY_MINLENGTH", want: "passwordPolicy.minLength"},
		{envKey: "AUTH_ARGON2_SALTLENGTH", want: "auth.argon2.saltLength"},
		{envKey: "ACCOUNT_MAXWEIGHTKG", want: "account.maxWeightKg"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, DriverPostgres, cfg.Persistence.Driver)
	assert.NotNil(t, cfg.Auth)
	assert.Equal(t, 8, cfg.PasswordPolicy.MinLength)
	assert.False(t, cfg.PasswordPolicy.AllowSymbols)
	assert.Equal(t, "User", cfg.Account.DefaultRole)
	assert.InDelta(t, 500.0, cfg.Account.MaxWeightKg, 0)
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Persistence:    &PersistenceConfig{Driver: DriverMemory},
		PasswordPolicy: &PasswordPolicyConfig{MinLength: 12, AllowSymbols: true},
		Account:        &AccountConfig{DefaultRole: "Member", MaxWeightKg: 300},
	}

	applyDefaults(cfg)

	assert.Equal(t, DriverMemory, cfg.Persistence.Driver)
	assert.Equal(t, 12, cfg.PasswordPolicy.MinLength)
	assert.True(t, cfg.PasswordPolicy.AllowSymbols)
	assert.Equal(t, "Member", cfg.Account.DefaultRole)
	assert.InDelta(t, 300.0, cfg.Account.MaxWeightKg, 0)
}

func TestBuildReplicasFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "replica-0")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5432")
	t.Setenv("POSTGRES_REPLICAS_0_USERNAME", "reader")

	replicas := buildReplicasFromEnv()

	if assert.Len(t, replicas, 1) {
		assert.Equal(t, "replica-0", replicas[0].Host)
		assert.Equal(t, "5432", replicas[0].Port)
		assert.Equal(t, "reader", replicas[0].UserName)
	}
}
