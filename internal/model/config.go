package model

import "time"

// Config is the complete eventscout configuration
type Config struct {
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// FetchConfig controls the content-extraction service client
type FetchConfig struct {
	ReaderBaseURL string        `yaml:"reader_base_url" mapstructure:"reader_base_url"` // markdown rendering service
	APIKey        string        `yaml:"api_key" mapstructure:"api_key"`                 // optional reader service key
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls fetched-content caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir" mapstructure:"dir"` // when set, a disk layer backs the memory cache
}

// PipelineConfig controls extraction and persistence behavior
type PipelineConfig struct {
	HorizonDays        int           `yaml:"horizon_days" mapstructure:"horizon_days"`                   // max days into the future for a valid event date
	MaxEventsPerSource int           `yaml:"max_events_per_source" mapstructure:"max_events_per_source"` // cap on records from one noisy page
	SourceDelay        time.Duration `yaml:"source_delay" mapstructure:"source_delay"`                   // pacing between sources
	WriteCacheTTL      time.Duration `yaml:"write_cache_ttl" mapstructure:"write_cache_ttl"`             // skip rewriting unchanged records within this window (0 disables)
}

// StoreConfig controls the persistent event store
type StoreConfig struct {
	MongoURI   string `yaml:"mongo_uri" mapstructure:"mongo_uri"`
	Database   string `yaml:"database" mapstructure:"database"`
	Collection string `yaml:"collection" mapstructure:"collection"`
}

// ServerConfig controls the HTTP trigger surface
type ServerConfig struct {
	Addr       string `yaml:"addr" mapstructure:"addr"`
	CronSecret string `yaml:"cron_secret" mapstructure:"cron_secret"` // bearer token for scheduled invocations
	ManualKey  string `yaml:"manual_key" mapstructure:"manual_key"`   // query-parameter key for operator-triggered runs
	EnableCORS bool   `yaml:"enable_cors" mapstructure:"enable_cors"`
	ListLimit  int64  `yaml:"list_limit" mapstructure:"list_limit"` // default page size for event reads
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults. Secrets deliberately have no
// defaults and must come from the environment or config file.
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			ReaderBaseURL: "https://r.jina.ai",
			Timeout:       30 * time.Second,
			UserAgent:     "eventscout/0.1 (+https://github.com/silverhaven/eventscout)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Pipeline: PipelineConfig{
			HorizonDays:        90,
			MaxEventsPerSource: 20,
			SourceDelay:        2 * time.Second,
			WriteCacheTTL:      0,
		},
		Store: StoreConfig{
			MongoURI:   "mongodb://localhost:27017",
			Database:   "silverhaven",
			Collection: "events",
		},
		Server: ServerConfig{
			Addr:       ":8080",
			EnableCORS: true,
			ListLimit:  50,
		},
	}
}
