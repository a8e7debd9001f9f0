package config

// DurableStore selects where long-lived visitor state is kept.
type DurableStore string

const (
	DurableCookie DurableStore = "cookie"
	DurableSQLite DurableStore = "sqlite"
)

// LogFormat selects the log output encoding.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	Port          int          `yaml:"port" koanf:"port"`
	SiteDir       string       `yaml:"site_dir" koanf:"site_dir"`
	ContentURL    string       `yaml:"content_url,omitempty" koanf:"content_url"`
	DurableStore  DurableStore `yaml:"durable_store" koanf:"durable_store"`
	DBPath        string       `yaml:"db_path" koanf:"db_path"`
	AuthWindow    string       `yaml:"auth_window" koanf:"auth_window"`
	SecureCookies bool         `yaml:"secure_cookies" koanf:"secure_cookies"`
	SanitizeBody  bool         `yaml:"sanitize_body" koanf:"sanitize_body"`
	Assets        []string     `yaml:"assets" koanf:"assets"`
	AllowAllCORS  bool         `yaml:"allow_all_cors" koanf:"allow_all_cors"`
	LogLevel      string       `yaml:"log_level" koanf:"log_level"`
	LogFormat     LogFormat    `yaml:"log_format" koanf:"log_format"`
}
