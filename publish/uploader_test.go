package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"codereel/config"
	"codereel/history"
)

func TestOAuthConfigPrefersStoreKV(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemory()
	store.SetConfig(ctx, kvClientID, "kv-id")
	store.SetConfig(ctx, kvClientSecret, "kv-secret")
	store.SetConfig(ctx, kvRefreshToken, "kv-token")

	s := config.Settings{
		GoogleClientID:     "env-id",
		GoogleClientSecret: "env-secret",
		GoogleRefreshToken: "env-token",
	}

	conf, token := oauthConfig(ctx, s, store)
	if conf == nil {
		t.Fatal("expected a config")
	}
	if conf.ClientID != "kv-id" || conf.ClientSecret != "kv-secret" {
		t.Fatalf("store values should win, got %s/%s", conf.ClientID, conf.ClientSecret)
	}
	if token.RefreshToken != "kv-token" {
		t.Fatalf("got refresh token %q", token.RefreshToken)
	}
}

func TestOAuthConfigFallsBackToEnv(t *testing.T) {
	s := config.Settings{
		GoogleClientID:     "env-id",
		GoogleClientSecret: "env-secret",
		GoogleRefreshToken: "env-token",
	}

	conf, token := oauthConfig(context.Background(), s, history.NewMemory())
	if conf == nil || conf.ClientID != "env-id" || token.RefreshToken != "env-token" {
		t.Fatal("environment credentials were not used")
	}
}

func TestOAuthConfigIncompleteReturnsNil(t *testing.T) {
	s := config.Settings{GoogleClientID: "id-only"}
	if conf, _ := oauthConfig(context.Background(), s, nil); conf != nil {
		t.Fatal("expected nil config without a secret and token")
	}
}

func TestSecretsFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client_secret.json")
	payload := `{"installed":{"client_id":"file-id","client_secret":"file-secret","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	conf := secretsFileConfig(path)
	if conf == nil {
		t.Fatal("expected a parsed config")
	}
	if conf.ClientID != "file-id" || conf.ClientSecret != "file-secret" {
		t.Fatalf("got %s/%s", conf.ClientID, conf.ClientSecret)
	}

	if secretsFileConfig(filepath.Join(dir, "missing.json")) != nil {
		t.Fatal("missing file should yield nil")
	}
}
