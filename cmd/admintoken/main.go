// Command admintoken mints an HS256 admin token for local development when
// the API runs with auth.provider "jwt".
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"toolshare-admin/internal/config"
	"toolshare-admin/internal/security"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	uid := flag.String("uid", "", "Admin uid (must exist in the admins collection)")
	email := flag.String("email", "", "Admin email")
	ttl := flag.Duration("ttl", 0, "Token lifetime (defaults to auth.token_expiry_minutes)")
	flag.Parse()

	_ = godotenv.Load()

	if *uid == "" {
		fmt.Fprintln(os.Stderr, "usage: admintoken -uid <admin uid> [-email <email>] [-ttl 1h]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Auth.Provider != config.AuthJWT {
		log.Fatalf("auth.provider is %q; tokens can only be minted for %q", cfg.Auth.Provider, config.AuthJWT)
	}

	lifetime := *ttl
	if lifetime == 0 {
		lifetime = time.Duration(cfg.Auth.TokenExpiryMinute) * time.Minute
	}

	token, err := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer).GenerateAdminToken(*uid, *email, lifetime)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}
	fmt.Println(token)
}
