package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	configpkg "github.com/minhyannv/property-assistant-go/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func envFunc(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

const proxyINI = `[Proxy]
proxy_domain = gate.example.net
proxy_port = 7000
proxy_username = alice
proxy_password = s3cret
`

func TestBuildConfig(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.ini")
	writeFile(t, configFile, proxyINI)

	flags := defaultFlags()
	flags.configFile = configFile
	flags.maxPolls = 5
	flags.pollTimeout = time.Minute

	cfg, err := buildConfig(flags, envFunc(map[string]string{
		"OPENAI_API_KEY":  " sk-test ",
		"OPENAI_BASE_URL": "http://localhost:8080/v1",
	}))
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.APIKey != "sk-test" || cfg.BaseURL != "http://localhost:8080/v1" {
		t.Fatalf("unexpected credentials: %q %q", cfg.APIKey, cfg.BaseURL)
	}
	if cfg.Proxy.Domain != "gate.example.net" || cfg.Proxy.Port != "7000" || cfg.Proxy.Username != "alice" {
		t.Fatalf("unexpected proxy: %+v", cfg.Proxy)
	}
	if cfg.PollInterval != configpkg.DefaultPollInterval || cfg.MaxPollAttempts != 5 || cfg.PollTimeout != time.Minute {
		t.Fatalf("unexpected poll settings: %v %d %v", cfg.PollInterval, cfg.MaxPollAttempts, cfg.PollTimeout)
	}
	if cfg.OutputPath != configpkg.DefaultOutputPath {
		t.Fatalf("output = %q, want %q", cfg.OutputPath, configpkg.DefaultOutputPath)
	}
	if cfg.Profile != configpkg.DefaultProfile() {
		t.Fatalf("unexpected profile: %+v", cfg.Profile)
	}
}

func TestBuildConfigProfileAndModelOverride(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.ini")
	writeFile(t, configFile, proxyINI)
	profileFile := filepath.Join(dir, "profile.yaml")
	writeFile(t, profileFile, "name: Listing Helper\ninstructions: Answer briefly.\nmodel: gpt-4o\n")

	flags := defaultFlags()
	flags.configFile = configFile
	flags.profileFile = profileFile

	cfg, err := buildConfig(flags, envFunc(map[string]string{"OPENAI_API_KEY": "sk-test"}))
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.Profile.Name != "Listing Helper" || cfg.Profile.Model != "gpt-4o" {
		t.Fatalf("unexpected profile: %+v", cfg.Profile)
	}

	cfg, err = buildConfig(flags, envFunc(map[string]string{"OPENAI_API_KEY": "sk-test", "OPENAI_MODEL": "gpt-4.1"}))
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.Profile.Model != "gpt-4.1" {
		t.Fatalf("model = %q, want env override", cfg.Profile.Model)
	}
}

func TestBuildConfigErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "config.ini")
	writeFile(t, good, proxyINI)
	noSection := filepath.Join(dir, "nosection.ini")
	writeFile(t, noSection, "[Other]\nkey = value\n")
	badPort := filepath.Join(dir, "badport.ini")
	writeFile(t, badPort, strings.Replace(proxyINI, "7000", "http", 1))

	tests := []struct {
		name       string
		configFile string
		env        map[string]string
		want       string
	}{
		{name: "missing file", configFile: filepath.Join(dir, "missing.ini"), env: map[string]string{"OPENAI_API_KEY": "k"}, want: "missing.ini"},
		{name: "missing section", configFile: noSection, env: map[string]string{"OPENAI_API_KEY": "k"}, want: "Proxy"},
		{name: "invalid port", configFile: badPort, env: map[string]string{"OPENAI_API_KEY": "k"}, want: "invalid proxy port"},
		{name: "missing api key", configFile: good, env: map[string]string{}, want: "OPENAI_API_KEY is not set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := defaultFlags()
			flags.configFile = tt.configFile
			_, err := buildConfig(flags, envFunc(tt.env))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestBuildConfigSkipFetchIgnoresProxyFile(t *testing.T) {
	flags := defaultFlags()
	flags.configFile = filepath.Join(t.TempDir(), "missing.ini")
	flags.skipFetch = true

	cfg, err := buildConfig(flags, envFunc(map[string]string{"OPENAI_API_KEY": "k"}))
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.Proxy.Enabled() {
		t.Fatalf("expected no proxy, got %+v", cfg.Proxy)
	}
}

func TestInitConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.ini")

	run := func(args ...string) (string, error) {
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"init-config", "--config", path}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := run()
	if err != nil {
		t.Fatalf("init-config: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("unexpected output %q", out)
	}

	proxy, err := configpkg.LoadProxyFile(path)
	if err != nil {
		t.Fatalf("LoadProxyFile: %v", err)
	}
	if proxy != (configpkg.ProxyConfig{}) {
		t.Fatalf("expected empty template values, got %+v", proxy)
	}

	if _, err := run(); err == nil {
		t.Fatal("expected error when file exists without --force")
	}
	if _, err := run("--force"); err != nil {
		t.Fatalf("init-config --force: %v", err)
	}
}

func TestIsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "input.txt"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	tests := []struct {
		name string
		in   io.Reader
	}{
		{name: "in-memory reader", in: strings.NewReader("exit\n")},
		{name: "regular file", in: f},
		{name: "nil reader", in: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if isTerminal(tt.in) {
				t.Fatal("expected non-terminal input")
			}
		})
	}
}
