package postgres

import (
	"strings"
	"testing"
)

func TestBuildDSN_RequiresHostUserDatabase(t *testing.T) {
	cases := []ConnConfig{
		{User: "app", Database: "petcare"},
		{Host: "db.local", Database: "petcare"},
		{Host: "db.local", User: "app"},
	}
	for _, c := range cases {
		if _, err := BuildDSN(c); err == nil {
			t.Fatalf("expected error for %+v", c)
		}
	}
}

func TestBuildDSN_DefaultsAndTLSModes(t *testing.T) {
	base := ConnConfig{
		Host:     "db.local",
		User:     "app",
		Password: "hunter2",
		Database: "petcare",
	}

	dsn, err := BuildDSN(base)
	if err != nil {
		t.Fatalf("build dsn: %v", err)
	}
	if !strings.Contains(dsn, "db.local:5432") {
		t.Fatalf("expected default port 5432, got %s", dsn)
	}
	if !strings.Contains(dsn, "sslmode=disable") {
		t.Fatalf("expected sslmode=disable without TLS, got %s", dsn)
	}

	tls := base
	tls.TLS = true
	dsn, _ = BuildDSN(tls)
	if !strings.Contains(dsn, "sslmode=verify-full") {
		t.Fatalf("expected sslmode=verify-full with TLS, got %s", dsn)
	}

	tls.SkipVerify = true
	dsn, _ = BuildDSN(tls)
	if !strings.Contains(dsn, "sslmode=require") {
		t.Fatalf("expected sslmode=require with skip-verify, got %s", dsn)
	}
}
