package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

const proxySection = "Proxy"

var proxyKeys = []string{"proxy_domain", "proxy_port", "proxy_username", "proxy_password"}

// ProxyConfig is the residential proxy used for property lookups. An empty
// Domain means requests go out directly.
type ProxyConfig struct {
	Domain   string
	Port     string
	Username string
	Password string
}

func (p ProxyConfig) normalize() ProxyConfig {
	p.Domain = strings.TrimSpace(p.Domain)
	p.Port = strings.TrimSpace(p.Port)
	p.Username = strings.TrimSpace(p.Username)
	p.Password = strings.TrimSpace(p.Password)
	return p
}

// Enabled reports whether a proxy host is configured.
func (p ProxyConfig) Enabled() bool {
	return strings.TrimSpace(p.Domain) != ""
}

// URL builds the proxy URL. Credentials are included only when both username
// and password are set. Returns nil when the proxy is disabled.
func (p ProxyConfig) URL() (*url.URL, error) {
	p = p.normalize()
	if !p.Enabled() {
		return nil, nil
	}

	if strings.ContainsAny(p.Domain, "/@ ") {
		return nil, fmt.Errorf("invalid proxy domain %q: expected a bare host name", p.Domain)
	}
	if p.Port != "" {
		if _, err := strconv.ParseUint(p.Port, 10, 16); err != nil {
			return nil, fmt.Errorf("invalid proxy port %q", p.Port)
		}
	}

	host := p.Domain
	if p.Port != "" {
		host = net.JoinHostPort(p.Domain, p.Port)
	}
	u := &url.URL{Scheme: "http", Host: host}
	if p.Username != "" && p.Password != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u, nil
}

// LoadProxyFile reads the [Proxy] section of an ini file. The file, the
// section and all four keys must be present; values may be empty.
func LoadProxyFile(path string) (ProxyConfig, error) {
	file, err := ini.Load(path)
	if err != nil {
		return ProxyConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	section, err := file.GetSection(proxySection)
	if err != nil {
		return ProxyConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	for _, key := range proxyKeys {
		if !section.HasKey(key) {
			return ProxyConfig{}, fmt.Errorf("config %s: missing key %q in section [%s]", path, key, proxySection)
		}
	}

	return ProxyConfig{
		Domain:   section.Key("proxy_domain").String(),
		Port:     section.Key("proxy_port").String(),
		Username: section.Key("proxy_username").String(),
		Password: section.Key("proxy_password").String(),
	}.normalize(), nil
}

// WriteProxyTemplate writes a [Proxy] section with empty values. An existing
// file is left alone unless overwrite is set.
func WriteProxyTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file exists: %s", path)
		}
	}

	file := ini.Empty()
	section, err := file.NewSection(proxySection)
	if err != nil {
		return fmt.Errorf("creating section: %w", err)
	}
	for _, key := range proxyKeys {
		if _, err := section.NewKey(key, ""); err != nil {
			return fmt.Errorf("creating key %s: %w", key, err)
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
