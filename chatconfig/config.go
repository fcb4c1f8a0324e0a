// Package chatconfig loads the YAML configuration that wires a running
// ft8chatd instance: station identity, timer overrides, and which
// transports (MQTT, WebSocket hub, MCP, admin API) are enabled. It is
// grounded on the teacher repo's YAML-driven config pattern, generalized
// from its single flat struct into one with nested transport sections.
package chatconfig

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// MinProtocolVersion is the lowest wire protocol version this build will
// speak to a peer. It exists so a future incompatible change to the
// fragmentation scheme can be detected and refused rather than silently
// garbling messages.
const MinProtocolVersion = "1.0.0"

// Config is the root of ft8chatd's YAML configuration file.
type Config struct {
	Station Station `yaml:"station"`
	Timing  Timing  `yaml:"timing"`
	Log     Log     `yaml:"log"`

	MQTT    MQTT    `yaml:"mqtt"`
	Hub     Hub     `yaml:"hub"`
	MCP     MCP     `yaml:"mcp"`
	Admin   Admin   `yaml:"admin"`
	Health  Health  `yaml:"health"`
	Metrics Metrics `yaml:"metrics"`

	ProtocolVersion string `yaml:"protocol_version"`
}

// Station identifies this node on the two-digit station-ID address space.
type Station struct {
	ID string `yaml:"id"`
}

// Timing overrides the engine's default timer durations, expressed in
// seconds since operators think in seconds, not Go duration strings.
type Timing struct {
	SessionTimeoutSeconds  float64 `yaml:"session_timeout_seconds"`
	ReceiveIdleSeconds     float64 `yaml:"receive_idle_seconds"`
	CompleteDisplaySeconds float64 `yaml:"complete_display_seconds"`
	DirectTxTickSeconds    float64 `yaml:"direct_tx_tick_seconds"`
}

// Log configures the CSV message log.
type Log struct {
	Enabled bool   `yaml:"enabled"`
	DataDir string `yaml:"data_dir"`
}

// MQTT configures the MQTT event bridge.
type MQTT struct {
	Enabled    bool   `yaml:"enabled"`
	BrokerURL  string `yaml:"broker_url"`
	ClientID   string `yaml:"client_id"`
	TopicRoot  string `yaml:"topic_root"`
}

// Hub configures the live WebSocket event feed.
type Hub struct {
	Enabled       bool `yaml:"enabled"`
	ListenAddr    string `yaml:"listen_addr"`
	MaxConnections int   `yaml:"max_connections"`
}

// MCP configures the Model Context Protocol control surface.
type MCP struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// Admin configures the HTTP log-query API.
type Admin struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
	GeoIPDBPath string `yaml:"geoip_db_path"`
}

// Health configures the process health snapshot endpoint.
type Health struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// Metrics configures the Prometheus exporter.
type Metrics struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns a Config with every optional transport disabled and
// the engine's spec-literal timer values.
func Default() Config {
	return Config{
		Station:         Station{ID: "00"},
		Timing:          Timing{SessionTimeoutSeconds: 90, ReceiveIdleSeconds: 45, CompleteDisplaySeconds: 2, DirectTxTickSeconds: 0.5},
		Log:             Log{Enabled: true, DataDir: "./data/chat"},
		ProtocolVersion: MinProtocolVersion,
	}
}

// Load reads and parses the YAML config at path, filling unset fields
// from Default, then validates the protocol version against
// MinProtocolVersion.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("chatconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("chatconfig: parse %s: %w", path, err)
	}

	if err := validateProtocolVersion(cfg.ProtocolVersion); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// validateProtocolVersion rejects a configured protocol version older
// than MinProtocolVersion, using semantic ordering rather than a string
// comparison so "1.10.0" correctly outranks "1.9.0".
func validateProtocolVersion(configured string) error {
	if configured == "" {
		return nil
	}
	want, err := version.NewVersion(MinProtocolVersion)
	if err != nil {
		return fmt.Errorf("chatconfig: internal: bad MinProtocolVersion: %w", err)
	}
	got, err := version.NewVersion(configured)
	if err != nil {
		return fmt.Errorf("chatconfig: protocol_version %q: %w", configured, err)
	}
	if got.LessThan(want) {
		return fmt.Errorf("chatconfig: protocol_version %s is older than the minimum supported %s", configured, MinProtocolVersion)
	}
	return nil
}
