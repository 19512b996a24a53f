package dynamo

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"gopkg.in/yaml.v3"
)

// Config holds configuration for the provider.
type Config struct {
	// TablePrefix is prepended to the schema binding to form the
	// physical DynamoDB table name, so the binding "pipeline" lives in
	// "stratum_pipeline".
	// Default: "stratum_"
	TablePrefix string `yaml:"table_prefix"`

	// Region overrides the AWS region for NewClient. Empty uses the
	// default resolution chain.
	Region string `yaml:"region"`

	// Endpoint overrides the DynamoDB endpoint for NewClient, for
	// local development.
	Endpoint string `yaml:"endpoint"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{TablePrefix: "stratum_"}
}

// LoadConfig reads a YAML config file and applies defaults to any
// field left empty.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.validate()
	return cfg, nil
}

// validate ensures config values are usable.
func (c *Config) validate() {
	if c.TablePrefix == "" {
		c.TablePrefix = "stratum_"
	}
}

// NewClient builds a DynamoDB client from the default AWS resolution
// chain, honoring the config's region and endpoint overrides.
func NewClient(ctx context.Context, cfg Config) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
