package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the main struct that holds all configuration for the application.
type Config struct {
	Studio    StudioConfig    `mapstructure:"studio"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Forms     FormsConfig     `mapstructure:"forms"`
	Dispatch  DispatchConfig  `mapstructure:"dispatch"`
	Mail      MailConfig      `mapstructure:"mail"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Instagram InstagramConfig `mapstructure:"instagram"`
	Notifiers NotifiersConfig `mapstructure:"notifiers"`
}

// StudioConfig identifies the studio the service fronts.
type StudioConfig struct {
	Name string `mapstructure:"name"`
}

// LoggerConfig holds logging-specific settings.
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// HTTPConfig holds HTTP server-specific settings.
type HTTPConfig struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// FormsConfig holds normalization settings for inbound form payloads.
type FormsConfig struct {
	// PhonePolicy is "prefer-full" or "always-combine"; it pins down how a
	// phoneCountry prefix combines with an already-full phone number.
	PhonePolicy string `mapstructure:"phone_policy"`
}

// DispatchConfig governs the per-request dispatch pipeline.
type DispatchConfig struct {
	// Timeout bounds each external sink call. A timed-out call fails the
	// dispatch; it never hangs the request.
	Timeout time.Duration `mapstructure:"timeout"`
	// SendAcknowledgment toggles the requester acknowledgment email.
	SendAcknowledgment bool `mapstructure:"send_acknowledgment"`
}

// MailConfig holds SMTP settings and the operator recipient address.
type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	// Recipient is the studio inbox that receives operator notifications.
	// When empty, submissions fail with a configuration error.
	Recipient string `mapstructure:"recipient"`
}

// CalendarConfig holds Google Calendar service-account settings for the
// booking scheduler.
type CalendarConfig struct {
	ServiceAccountEmail string `mapstructure:"service_account_email"`
	PrivateKey          string `mapstructure:"private_key"`
	CalendarID          string `mapstructure:"calendar_id"`
	TimeZone            string `mapstructure:"time_zone"`
}

// TelegramConfig holds settings for the ops-chat mirror notifier.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// InstagramConfig holds Graph API credentials for the feed proxy. Both
// fields empty disables the upstream call; the endpoint then serves an
// empty feed.
type InstagramConfig struct {
	AccessToken string `mapstructure:"access_token"`
	UserID      string `mapstructure:"user_id"`
}

// NotifiersConfig selects between real sinks and log-only mocks.
type NotifiersConfig struct {
	// Mode can be "development" or "production". In "development" mode the
	// email and calendar sinks are replaced by log-only implementations.
	Mode string `mapstructure:"mode"`
}

// NewConfig parses the YAML file and environment variables to return a
// configuration struct.
func NewConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigFile("configs/config.yaml")

	v.SetDefault("studio.name", "Mian Visuals")
	v.SetDefault("logger.level", "info")
	v.SetDefault("http.port", ":8080")
	v.SetDefault("http.gin_mode", "release")
	v.SetDefault("forms.phone_policy", "prefer-full")
	v.SetDefault("dispatch.timeout", "10s")
	v.SetDefault("dispatch.send_acknowledgment", false)
	v.SetDefault("calendar.calendar_id", "primary")
	v.SetDefault("calendar.time_zone", "America/New_York")
	v.SetDefault("notifiers.mode", "development")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
