package config

import (
	"os"
	"testing"
)

func TestLoad_WithDefaults(t *testing.T) {
	clearConfigEnvVars()

	// Set only required env var (password has no default)
	os.Setenv("DB_PASSWORD", "testpass")
	defer os.Unsetenv("DB_PASSWORD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "development" {
		t.Errorf("Expected env development, got %s", cfg.Server.Env)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected host localhost, got %s", cfg.Database.Host)
	}
	if cfg.Database.Port != "5432" {
		t.Errorf("Expected port 5432, got %s", cfg.Database.Port)
	}
	if cfg.Database.Name != "catastro" {
		t.Errorf("Expected db name catastro, got %s", cfg.Database.Name)
	}
	if cfg.Database.User != "postgres" {
		t.Errorf("Expected user postgres, got %s", cfg.Database.User)
	}
	if cfg.Database.PoolMin != 2 {
		t.Errorf("Expected pool min 2, got %d", cfg.Database.PoolMin)
	}
	if cfg.Database.PoolMax != 10 {
		t.Errorf("Expected pool max 10, got %d", cfg.Database.PoolMax)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
	if cfg.Feed.MaxUploadBytes != 16<<20 {
		t.Errorf("Expected feed max upload 16MiB, got %d", cfg.Feed.MaxUploadBytes)
	}
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("ENV", "production")
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_POOL_MIN", "5")
	os.Setenv("DB_POOL_MAX", "20")
	os.Setenv("CORS_ORIGINS", "http://example.com,https://app.example.com")
	os.Setenv("FEED_MAX_UPLOAD_BYTES", "1048576")
	defer clearConfigEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Server.Env != "production" {
		t.Errorf("Expected env production, got %s", cfg.Server.Env)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Expected host db.internal, got %s", cfg.Database.Host)
	}
	if cfg.Database.Port != "5433" {
		t.Errorf("Expected port 5433, got %s", cfg.Database.Port)
	}
	if cfg.Database.Name != "testdb" {
		t.Errorf("Expected db name testdb, got %s", cfg.Database.Name)
	}
	if cfg.Database.User != "testuser" {
		t.Errorf("Expected user testuser, got %s", cfg.Database.User)
	}
	if cfg.Database.Password != "testpass" {
		t.Errorf("Expected password testpass, got %s", cfg.Database.Password)
	}
	if cfg.Database.PoolMin != 5 {
		t.Errorf("Expected pool min 5, got %d", cfg.Database.PoolMin)
	}
	if cfg.Database.PoolMax != 20 {
		t.Errorf("Expected pool max 20, got %d", cfg.Database.PoolMax)
	}
	if len(cfg.CORS.Origins) != 2 {
		t.Errorf("Expected 2 CORS origins, got %d", len(cfg.CORS.Origins))
	}
	if cfg.Feed.MaxUploadBytes != 1048576 {
		t.Errorf("Expected feed max upload 1048576, got %d", cfg.Feed.MaxUploadBytes)
	}
}

func TestLoad_MissingPassword(t *testing.T) {
	clearConfigEnvVars()

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error when DB_PASSWORD is missing")
	}
}

func TestValidate_PoolBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Database.PoolMin = 10
	cfg.Database.PoolMax = 5

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error when pool min exceeds pool max")
	}
}

func TestValidate_FeedUploadLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Feed.MaxUploadBytes = 0

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error when feed upload limit is zero")
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"single", "http://localhost:3000", 1},
		{"multiple", "http://a.com,http://b.com,http://c.com", 3},
		{"whitespace", " http://a.com , http://b.com ", 2},
		{"trailing comma", "http://a.com,", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOrigins(tt.input)
			if len(got) != tt.want {
				t.Errorf("parseOrigins(%q) returned %d origins, want %d", tt.input, len(got), tt.want)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Env: "development"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			Name:     "catastro",
			User:     "postgres",
			Password: "postgres",
			PoolMin:  2,
			PoolMax:  10,
		},
		CORS: CORSConfig{Origins: []string{"http://localhost:3000"}},
		Feed: FeedConfig{MaxUploadBytes: 16 << 20},
	}
}

func clearConfigEnvVars() {
	vars := []string{
		"PORT", "ENV",
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
		"DB_POOL_MIN", "DB_POOL_MAX",
		"CORS_ORIGINS", "FEED_MAX_UPLOAD_BYTES",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
