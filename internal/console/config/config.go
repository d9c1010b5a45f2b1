package config

// Config holds the console application configuration.
type Config struct {
	BaseURL         string `mapstructure:"base_url"`
	APIPrefix       string `mapstructure:"api_prefix"`
	TenantHeader    string `mapstructure:"tenant_header"`
	TimeoutMs       int    `mapstructure:"timeout_ms"`
	RetryAttempts   int    `mapstructure:"retry_attempts"`
	RetryDelayMs    int    `mapstructure:"retry_delay_ms"`
	CredentialsPath string `mapstructure:"credentials_path"`
	SchoolLoginPath string `mapstructure:"school_login_path"`
	AdminLoginPath  string `mapstructure:"admin_login_path"`
	LogLevel        string `mapstructure:"log_level"`
	LogFormat       string `mapstructure:"log_format"`
}
