// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the builder service reads at startup. The magic
// numbers of the protocol deployment (graduation threshold, curve bounds,
// raise minimums) are configuration, not protocol truths.
type Config struct {
	ListenAddr string   `mapstructure:"listen_addr"`
	RPCList    []string `mapstructure:"rpc_list"`

	ProgramID     string `mapstructure:"program_id"`
	ConfigAccount string `mapstructure:"config_account"`

	// SwapAuthorityKey is the base58 private key of the server-held swap
	// authority. Normally injected via LAUNCHPAD_SWAP_AUTHORITY_KEY.
	SwapAuthorityKey string `mapstructure:"swap_authority_key"`

	// ProtocolFeeRecipient receives protocol fees on swaps.
	ProtocolFeeRecipient string `mapstructure:"protocol_fee_recipient"`

	// GraduationThreshold is the quote-token balance (whole units) at
	// which a market graduates to permissionless swapping.
	GraduationThreshold uint64 `mapstructure:"graduation_threshold"`
	QuoteDecimals       uint8  `mapstructure:"quote_decimals"`

	CurvePercentMin uint64 `mapstructure:"curve_percent_min"`
	CurvePercentMax uint64 `mapstructure:"curve_percent_max"`
	MinRaiseSOL     uint64 `mapstructure:"min_raise_sol"`

	// justSendIt preset applied when a market-creation request opts in
	// without explicit curve parameters.
	JustSendItRaiseSOL     uint64 `mapstructure:"just_send_it_raise_sol"`
	JustSendItCurvePercent uint64 `mapstructure:"just_send_it_curve_percent"`

	DebugLogging bool   `mapstructure:"debug_logging"`
	LogFile      string `mapstructure:"log_file"`
}

const (
	DefaultListenAddr          = ":8080"
	DefaultGraduationThreshold = 69
	DefaultQuoteDecimals       = 9
	DefaultCurvePercentMin     = 20
	DefaultCurvePercentMax     = 80
	DefaultMinRaiseSOL         = 30
	DefaultJustSendItRaise     = 85
	DefaultJustSendItPercent   = 50
)

// Load reads the config file at path, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"listen_addr":                DefaultListenAddr,
		"graduation_threshold":       DefaultGraduationThreshold,
		"quote_decimals":             DefaultQuoteDecimals,
		"curve_percent_min":          DefaultCurvePercentMin,
		"curve_percent_max":          DefaultCurvePercentMax,
		"min_raise_sol":              DefaultMinRaiseSOL,
		"just_send_it_raise_sol":     DefaultJustSendItRaise,
		"just_send_it_curve_percent": DefaultJustSendItPercent,
		"log_file":                   "launchpad.log",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("LAUNCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if key := v.GetString("SWAP_AUTHORITY_KEY"); key != "" {
		cfg.SwapAuthorityKey = key
	}
	if rpcs := v.GetString("RPC_LIST"); rpcs != "" {
		var clean []string
		for _, raw := range strings.Split(rpcs, ",") {
			if trimmed := strings.TrimSpace(raw); trimmed != "" {
				clean = append(clean, trimmed)
			}
		}
		if len(clean) > 0 {
			cfg.RPCList = clean
		}
	}

	return &cfg, Validate(&cfg)
}

// Validate checks the loaded configuration.
func Validate(cfg *Config) error {
	if len(cfg.RPCList) == 0 {
		return errors.New("rpc_list is empty")
	}
	for _, rpcURL := range cfg.RPCList {
		if err := validateURL(rpcURL, "http"); err != nil {
			return errors.New("invalid RPC URL protocol")
		}
	}
	if cfg.SwapAuthorityKey == "" {
		return errors.New("missing swap_authority_key in configuration")
	}
	if cfg.GraduationThreshold == 0 {
		return errors.New("invalid graduation_threshold")
	}
	if cfg.CurvePercentMin == 0 || cfg.CurvePercentMax > 100 || cfg.CurvePercentMin > cfg.CurvePercentMax {
		return errors.New("invalid curve percent bounds")
	}
	if cfg.JustSendItCurvePercent < cfg.CurvePercentMin || cfg.JustSendItCurvePercent > cfg.CurvePercentMax {
		return errors.New("just_send_it_curve_percent outside curve bounds")
	}
	return nil
}

// GraduationThresholdRaw converts the whole-unit threshold to raw quote
// units using the configured decimals.
func (c *Config) GraduationThresholdRaw() uint64 {
	raw := c.GraduationThreshold
	for i := uint8(0); i < c.QuoteDecimals; i++ {
		raw *= 10
	}
	return raw
}

func validateURL(rawURL, protocol string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	return nil
}
