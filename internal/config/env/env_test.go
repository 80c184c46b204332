package env

import (
	"errors"
	"testing"
	"time"
)

func TestHTTPConfig(t *testing.T) {
	t.Setenv(httpAddressEnvName, "")
	t.Setenv(spinRateEnvName, "")
	t.Setenv(spinBurstEnvName, "")
	cfg, err := NewHTTPConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Address() != defaultHTTPAddress || cfg.SpinRate() != defaultSpinRate || cfg.SpinBurst() != defaultSpinBurst {
		t.Errorf("unexpected defaults %q %v %d", cfg.Address(), cfg.SpinRate(), cfg.SpinBurst())
	}

	t.Setenv(spinRateEnvName, "-1")
	if _, err := NewHTTPConfig(); err == nil {
		t.Error("expected error for negative spin rate")
	}
	t.Setenv(spinRateEnvName, "2.5")
	t.Setenv(spinBurstEnvName, "zero")
	if _, err := NewHTTPConfig(); err == nil {
		t.Error("expected error for bad burst")
	}
}

func TestAccountsConfig(t *testing.T) {
	cases := []struct {
		name    string
		backend string
		hashing string
		wantErr bool
		want    string
		hash    bool
	}{
		{"defaults", "", "", false, BackendFile, false},
		{"postgres", BackendPostgres, "true", false, BackendPostgres, true},
		{"unknown backend", "redis", "", true, "", false},
		{"bad hashing flag", "", "maybe", true, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(accountsBackendEnvName, c.backend)
			t.Setenv(passwordHashingEnvName, c.hashing)
			t.Setenv(accountsFileEnvName, "")
			cfg, err := NewAccountsConfig()
			if (err != nil) != c.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, c.wantErr)
			}
			if err != nil {
				return
			}
			if cfg.Backend() != c.want || cfg.PasswordHashing() != c.hash || cfg.FilePath() != defaultAccountsFile {
				t.Errorf("unexpected config %q %v %q", cfg.Backend(), cfg.PasswordHashing(), cfg.FilePath())
			}
		})
	}
}

func TestJWTConfig(t *testing.T) {
	t.Setenv(accessTokenKeyEnvName, "")
	if _, err := NewJWTConfig(); err == nil {
		t.Error("expected error without secret")
	}

	t.Setenv(accessTokenKeyEnvName, "secret")
	t.Setenv(accessTokenDurationEnvName, "")
	cfg, err := NewJWTConfig()
	if err != nil {
		t.Fatal(err)
	}
	if string(cfg.AccessTokenSecretKey()) != "secret" || cfg.AccessTokenDuration() != 24*time.Hour {
		t.Errorf("unexpected jwt config %q %v", cfg.AccessTokenSecretKey(), cfg.AccessTokenDuration())
	}

	t.Setenv(accessTokenDurationEnvName, "15m")
	cfg, err = NewJWTConfig()
	if err != nil || cfg.AccessTokenDuration() != 15*time.Minute {
		t.Errorf("expected 15m, got %v (%v)", cfg, err)
	}
}

func TestPGConfig(t *testing.T) {
	t.Setenv(dsnName, "")
	if _, err := NewPGConfig(); !errors.Is(err, ErrPGDSNNotFound) {
		t.Errorf("expected ErrPGDSNNotFound, got %v", err)
	}
	t.Setenv(dsnName, "postgres://localhost/mermaid")
	cfg, err := NewPGConfig()
	if err != nil || cfg.DSN() != "postgres://localhost/mermaid" {
		t.Errorf("unexpected pg config %v %v", cfg, err)
	}
}

func TestLogAndSoundConfig(t *testing.T) {
	t.Setenv(logLevelEnvName, "")
	t.Setenv(logFormatEnvName, "")
	t.Setenv(logFileEnvName, "mermaid.log")
	l := NewLogConfig()
	if l.Level() != "info" || l.Format() != "console" || l.File() != "mermaid.log" {
		t.Errorf("unexpected log config %q %q %q", l.Level(), l.Format(), l.File())
	}

	t.Setenv(soundDirEnvName, "")
	t.Setenv(soundVolumeEnvName, "")
	s, err := NewSoundConfig()
	if err != nil {
		t.Fatal(err)
	}
	if s.Dir() != defaultSoundDir || s.Volume() != 0.5 {
		t.Errorf("unexpected sound config %q %v", s.Dir(), s.Volume())
	}
	t.Setenv(soundVolumeEnvName, "loud")
	if _, err := NewSoundConfig(); err == nil {
		t.Error("expected error for bad volume")
	}
}
