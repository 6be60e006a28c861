package appconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

const (
	DefaultDatabaseName   = "users"
	DefaultCollectionName = "users"
	DefaultDocsPath       = "/api-docs"
	DefaultTimeout        = 10 * time.Second
)

// Config holds all configuration details
type Config struct {
	Host     string         `yaml:"host"`
	BasePath string         `yaml:"basePath"`
	DocsPath string         `yaml:"docsPath"`
	Database DatabaseConfig `yaml:"database"`
	Pulsar   PulsarConfig   `yaml:"pulsar"`
	AWS      AWSConfig      `yaml:"aws"`
}

// DatabaseConfig defines the MongoDB connection details. When SecretName is
// set the connection URI is read from AWS Secrets Manager instead of URI.
type DatabaseConfig struct {
	URI        string        `yaml:"uri"`
	Name       string        `yaml:"name"`
	Collection string        `yaml:"collection"`
	Timeout    time.Duration `yaml:"timeout"`
	SecretName string        `yaml:"secretName"`
	SecretKey  string        `yaml:"secretKey"`
}

// PulsarConfig defines the messaging system connection details. Events are
// not published when URL is empty.
type PulsarConfig struct {
	URL           string `yaml:"url"`
	TopicProducer string `yaml:"topicProducer"`
}

type AWSConfig struct {
	Region string `yaml:"region"`
}

// LoadConfig loads and parses the configuration from a given file path
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Error().Err(err).Msg("config file not provided")
		return nil, err
	}

	// Parse the template file, failing on any variable missing from the environment
	tmpl, err := template.New(filepath.Base(path)).Option("missingkey=error").ParseFiles(path)
	if err != nil {
		log.Error().Err(err).Msg("error parsing config file template")
		return nil, fmt.Errorf("error parsing config file template: %w", err)
	}

	// Execute the template with environment variables
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, loadEnvVars()); err != nil {
		log.Error().Err(err).Msg("error executing config file template")
		return nil, fmt.Errorf("error executing config file template: %w", err)
	}

	// Load and unmarshal the YAML
	var config Config
	if err := yaml.Unmarshal(buf.Bytes(), &config); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal config YAML")
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.DocsPath == "" {
		c.DocsPath = DefaultDocsPath
	}
	if c.Database.Name == "" {
		c.Database.Name = DefaultDatabaseName
	}
	if c.Database.Collection == "" {
		c.Database.Collection = DefaultCollectionName
	}
	if c.Database.Timeout <= 0 {
		c.Database.Timeout = DefaultTimeout
	}
	c.BasePath = strings.TrimSuffix(c.BasePath, "/")
}

// Validate checks that the settings needed to reach the store are present.
func (c *Config) Validate() error {
	if c.Database.URI == "" && c.Database.SecretName == "" {
		return errors.New("one of database.uri or database.secretName is required")
	}
	if c.Database.SecretName != "" && c.AWS.Region == "" {
		return errors.New("aws.region is required when database.secretName is set")
	}
	if c.Pulsar.URL != "" && c.Pulsar.TopicProducer == "" {
		return errors.New("pulsar.topicProducer is required when pulsar.url is set")
	}
	return nil
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
