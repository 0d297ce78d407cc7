package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashwiz/internal/battle"
	"github.com/abhisek/flashwiz/internal/rarity"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FLASHWIZ_DB", filepath.Join(dir, "data", "fw.db"))
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultUserID, cfg.UserID)
	assert.Equal(t, filepath.Join(dir, "data", "fw.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "data", "flashwiz.log"), cfg.LogFile())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, battle.DefaultTuning(), cfg.Tuning)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "flashwiz.yaml", `
user: from-file
db: `+filepath.Join(dir, "file.db")+`
log:
  level: debug
tuning:
  battle:
    battle_size: 7
    mcq_ratio: 0.25
  rarity:
    legendary: 0.9
  momentum:
    streak_cap: 14
`)
	t.Setenv("FLASHWIZ_USER", "from-env")
	t.Setenv("FLASHWIZ_SEED", "42")
	t.Setenv("FLASHWIZ_TUNING_MOMENTUM_STREAK_CAP", "21")
	t.Setenv("FLASHWIZ_TUNING_XP_TIER_BASE_LEGENDARY", "55")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.UserID, "env wins over file")
	assert.Equal(t, filepath.Join(dir, "file.db"), cfg.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Tuning.Battle.BattleSize)
	assert.InDelta(t, 0.25, cfg.Tuning.Battle.MCQRatio, 1e-9)
	assert.InDelta(t, 0.9, cfg.Tuning.Rarity.Legendary, 1e-9)
	assert.InDelta(t, 0.6, cfg.Tuning.Rarity.Epic, 1e-9, "unset keys keep defaults")
	assert.Equal(t, 21, cfg.Tuning.Momentum.StreakCap, "env wins over file")
	assert.Equal(t, 55, cfg.Tuning.XP.TierBase[rarity.Legendary])
	assert.Equal(t, 10, cfg.Tuning.XP.TierBase[rarity.Common], "unset map entries keep defaults")
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, battle.MaxDistractors, cfg.Tuning.Battle.MaxDistractors)
}

func TestLoad_TuningFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FLASHWIZ_DB", filepath.Join(dir, "env.db"))
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("FLASHWIZ_TUNING_BATTLE_BATTLE_SIZE", "9")
	t.Setenv("FLASHWIZ_TUNING_BATTLE_MCQ_RATIO", "0.75")
	t.Setenv("FLASHWIZ_TUNING_RARITY_LEGENDARY", "0.95")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Tuning.Battle.BattleSize)
	assert.InDelta(t, 0.75, cfg.Tuning.Battle.MCQRatio, 1e-9)
	assert.InDelta(t, 0.95, cfg.Tuning.Rarity.Legendary, 1e-9)
	assert.Equal(t, battle.DefaultTuning().Momentum, cfg.Tuning.Momentum)
}

func TestLoad_InvalidTuning(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", `
db: `+filepath.Join(dir, "x.db")+`
tuning:
  rarity:
    legendary: 0.3
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
