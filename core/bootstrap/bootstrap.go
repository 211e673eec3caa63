// Package bootstrap runs the shared startup pipeline: logger first, then
// the AWS SDK configuration the sensing gateways are built from.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	coreconfig "github.com/aleRizzolo/SeaScan/core/config"
	"github.com/aleRizzolo/SeaScan/core/logger"
)

// Options control the bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	LoadAWS    func(ctx context.Context, cfg coreconfig.AWSConfig) (aws.Config, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	AWS aws.Config
}

// Run initializes the logger and loads the AWS SDK configuration.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	loadAWS := opts.LoadAWS
	if loadAWS == nil {
		loadAWS = LoadAWS
	}
	awsCfg, err := loadAWS(ctx, opts.Config.AWS)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: aws config load failed: %w", err)
	}

	return &Result{AWS: awsCfg}, nil
}

// LoadAWS builds the SDK configuration for the sensing backend. A non-empty
// endpoint redirects every service client to it (LocalStack).
func LoadAWS(ctx context.Context, cfg coreconfig.AWSConfig) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load default config: %w", err)
	}
	if cfg.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return awsCfg, nil
}
