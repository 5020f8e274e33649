package resolvconf

import (
	"strings"
	"testing"
	"time"
)

func TestParse_SampleConfig(t *testing.T) {
	input := `nameserver 127.0.0.1
search foo.com bar.com
options timeout:99 ndots:2 rotate
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.NameServers) != 1 || cfg.NameServers[0].IP.String() != "127.0.0.1" || cfg.NameServers[0].Port != 53 {
		t.Fatalf("NameServers = %+v", cfg.NameServers)
	}
	if len(cfg.Search) != 2 || cfg.Search[0] != "foo.com" || cfg.Search[1] != "bar.com" {
		t.Fatalf("Search = %+v", cfg.Search)
	}
	if cfg.Timeout != 30*time.Second {
		t.Fatalf("Timeout = %v, want capped 30s", cfg.Timeout)
	}
	if cfg.NDots != 2 {
		t.Fatalf("NDots = %d, want 2", cfg.NDots)
	}
	if !cfg.Rotate {
		t.Fatalf("Rotate = false, want true")
	}
}

func TestParse_NoNameserver(t *testing.T) {
	_, err := Parse(strings.NewReader("search example.com\n"))
	if err == nil {
		t.Fatalf("expected error when no nameserver directive is present")
	}
}

func TestParse_CommentsAndCaps(t *testing.T) {
	input := `; a leading comment
nameserver 10.0.0.1 # trailing comment
nameserver 10.0.0.2
nameserver 10.0.0.3
nameserver 10.0.0.4
options ndots:99 attempts:50
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.NameServers) != 3 {
		t.Fatalf("NameServers = %+v, want 3 (capped)", cfg.NameServers)
	}
	if cfg.NDots != 15 {
		t.Fatalf("NDots = %d, want capped at 15", cfg.NDots)
	}
	if cfg.Attempts != 5 {
		t.Fatalf("Attempts = %d, want capped at 5", cfg.Attempts)
	}
}

func TestParse_DomainFallsBackToSearch(t *testing.T) {
	cfg, err := Parse(strings.NewReader("nameserver 127.0.0.1\ndomain example.org\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Search) != 1 || cfg.Search[0] != "example.org" {
		t.Fatalf("Search = %+v", cfg.Search)
	}
}

func TestParse_LaterDirectiveWins(t *testing.T) {
	cfg, err := Parse(strings.NewReader("nameserver 127.0.0.1\ndomain example.org\nsearch a.com b.com\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Search) != 2 || cfg.Search[0] != "a.com" {
		t.Fatalf("Search = %+v, want the later search directive to win", cfg.Search)
	}
}
