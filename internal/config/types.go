package config

// Config is the top-level application configuration, corresponding to .qooa.yml.
type Config struct {
	// Port the dashboard listens on.
	Port int `yaml:"port" koanf:"port"`
	// DataDir holds the sqlite database.
	DataDir string `yaml:"data_dir" koanf:"data_dir"`
	// BackendURL is the base URL of the vendor backend used for the
	// credential endpoints.
	BackendURL string `yaml:"backend_url" koanf:"backend_url"`
	// AssetBaseURL is the base URL remote view fragments are fetched
	// from. Empty disables remote fragments; views render from the
	// local builders only.
	AssetBaseURL string `yaml:"asset_base_url" koanf:"asset_base_url"`
	// AllowAll relaxes CORS to any origin. Intended for development.
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}
