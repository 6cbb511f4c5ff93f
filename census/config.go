package census

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/config"
)

// Config holds everything a host needs to drive Census syncs: the API key,
// the poll budget and the call-layer retry policy. Zero values fall back to
// the package defaults.
type Config struct {
	API struct {
		Key string
	}
	Poll struct {
		MaxWaitSeconds       int `yaml:"maxWaitSeconds"`
		PollFrequencySeconds int `yaml:"pollFrequencySeconds"`
	}
	Call struct {
		Retries           int
		RetryDelaySeconds int `yaml:"retryDelaySeconds"`
	}
	RecordRequests bool
}

// Credentials returns the credentials from the config.
func (c Config) Credentials() Credentials {
	return NewCredentials(c.API.Key)
}

// PollBudget returns the configured budget, using the package defaults for
// unset values.
func (c Config) PollBudget() PollBudget {
	result := DefaultPollBudget()
	if c.Poll.MaxWaitSeconds > 0 {
		result.MaxWait = time.Duration(c.Poll.MaxWaitSeconds) * time.Second
	}
	if c.Poll.PollFrequencySeconds > 0 {
		result.PollFrequency = time.Duration(c.Poll.PollFrequencySeconds) * time.Second
	}
	return result
}

// CallPolicy returns the configured retry policy, using the package
// defaults for unset values.
func (c Config) CallPolicy() CallPolicy {
	result := DefaultCallPolicy()
	if c.Call.Retries > 0 {
		result.Retries = uint64(c.Call.Retries)
	}
	if c.Call.RetryDelaySeconds > 0 {
		result.Delay = time.Duration(c.Call.RetryDelaySeconds) * time.Second
	}
	return result
}

// EnvLookup resolves ${VAR} references in config sources.
type EnvLookup interface {
	LookupEnv(name string) (string, bool)
}

// OSEnv resolves references from the process environment.
type OSEnv struct{}

func (OSEnv) LookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// YAMLConfigUnmarshaler loads Config from YAML sources with ${VAR}
// expansion, so API keys can live in the environment rather than the file.
// Later sources override earlier ones.
type YAMLConfigUnmarshaler struct{}

func (u YAMLConfigUnmarshaler) Unmarshal(env EnvLookup, sources ...io.Reader) (Config, error) {
	var result Config
	var options []config.YAMLOption
	for _, s := range sources {
		options = append(options, config.Source(s))
	}
	if env == nil {
		env = OSEnv{}
	}
	options = append(options, config.Expand(env.LookupEnv))
	yaml, err := config.NewYAML(options...)
	if err != nil {
		return result, fmt.Errorf("failed to read yaml config %w", err)
	}
	readError := func(key string, cause error) error {
		return fmt.Errorf("failed to read '%s' from yaml config %w", key, cause)
	}
	key := "api"
	err = yaml.Get(key).Populate(&result.API)
	if err != nil {
		return result, readError(key, err)
	}
	key = "poll"
	if yaml.Get(key).HasValue() {
		err = yaml.Get(key).Populate(&result.Poll)
		if err != nil {
			return result, readError(key, err)
		}
	}
	key = "call"
	if yaml.Get(key).HasValue() {
		err = yaml.Get(key).Populate(&result.Call)
		if err != nil {
			return result, readError(key, err)
		}
	}
	key = "recordRequests"
	if yaml.Get(key).HasValue() {
		err = yaml.Get(key).Populate(&result.RecordRequests)
		if err != nil {
			return result, readError(key, err)
		}
	}
	return result, nil
}

// LoadConfigFile loads Config from a YAML file, expanding ${VAR} references
// from the process environment.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file %w", err)
	}
	defer f.Close()
	return YAMLConfigUnmarshaler{}.Unmarshal(OSEnv{}, f)
}

// ConfigFromEnvironment builds a Config purely from environment variables
// for hosts that carry no YAML: CENSUS_API_KEY is required, and
// CENSUS_MAX_WAIT_SECONDS, CENSUS_POLL_FREQUENCY_SECONDS, CENSUS_RETRIES
// and CENSUS_RETRY_DELAY_SECONDS override the defaults when set.
func ConfigFromEnvironment() (Config, error) {
	var result Config
	key, ok := os.LookupEnv("CENSUS_API_KEY")
	if !ok || key == "" {
		return result, errors.New("CENSUS_API_KEY is not set")
	}
	result.API.Key = key

	for _, v := range []struct {
		name  string
		field *int
	}{
		{"CENSUS_MAX_WAIT_SECONDS", &result.Poll.MaxWaitSeconds},
		{"CENSUS_POLL_FREQUENCY_SECONDS", &result.Poll.PollFrequencySeconds},
		{"CENSUS_RETRIES", &result.Call.Retries},
		{"CENSUS_RETRY_DELAY_SECONDS", &result.Call.RetryDelaySeconds},
	} {
		s := os.Getenv(v.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return result, fmt.Errorf("invalid %s %q %w", v.name, s, err)
		}
		*v.field = n
	}
	return result, nil
}
