package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Mongo: MongoConfig{
			URI: "mongodb://localhost:27017",
		},
		FilterCache: FilterCacheConfig{Driver: "mongo"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingMongoURI(t *testing.T) {
	cfg := validConfig()
	cfg.Mongo.URI = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing mongo uri")
	}
}

func TestValidate_InvalidFilterCacheDriver(t *testing.T) {
	cfg := validConfig()
	cfg.FilterCache.Driver = "memcached"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown filter cache driver")
	}

	expected := `filter_cache.driver must be "mongo" or "redis", got "memcached"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_RedisDriverRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.FilterCache.Driver = "redis"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}

	cfg.FilterCache.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with addrs set: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Mongo.Database != "gem5-vision" {
		t.Errorf("expected Database='gem5-vision', got %q", cfg.Mongo.Database)
	}
	if cfg.Mongo.ResourcesCollection != "resources" {
		t.Errorf("expected ResourcesCollection='resources', got %q", cfg.Mongo.ResourcesCollection)
	}
	if cfg.Mongo.FilterViewCollection != "filters" {
		t.Errorf("expected FilterViewCollection='filters', got %q", cfg.Mongo.FilterViewCollection)
	}
	if cfg.Mongo.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Mongo.ReadinessTimeout)
	}
	if cfg.FilterCache.Driver != "mongo" {
		t.Errorf("expected Driver='mongo', got %q", cfg.FilterCache.Driver)
	}
	if cfg.FilterCache.Key != "resources:filters" {
		t.Errorf("expected Key='resources:filters', got %q", cfg.FilterCache.Key)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Mongo: MongoConfig{
			Database:             "staging",
			ResourcesCollection:  "resources_v2",
			FilterViewCollection: "filters_v2",
			ReadinessTimeout:     15,
		},
		FilterCache: FilterCacheConfig{Driver: "redis", Key: "custom:filters"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Mongo.Database != "staging" {
		t.Errorf("expected Database='staging', got %q", cfg.Mongo.Database)
	}
	if cfg.FilterCache.Driver != "redis" {
		t.Errorf("expected Driver='redis', got %q", cfg.FilterCache.Driver)
	}
	if cfg.FilterCache.Key != "custom:filters" {
		t.Errorf("expected Key='custom:filters', got %q", cfg.FilterCache.Key)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("RESOURCES_MONGO_URI", "mongodb://db.example:27017")

	in := []byte("uri: ${RESOURCES_MONGO_URI}\ndatabase: ${RESOURCES_DB:-gem5-vision}\n")
	out := string(expandEnvVars(in))

	want := "uri: mongodb://db.example:27017\ndatabase: gem5-vision\n"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}
