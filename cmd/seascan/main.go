package main

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/joho/godotenv"

	"github.com/aleRizzolo/SeaScan/core/bootstrap"
	"github.com/aleRizzolo/SeaScan/core/buildinfo"
	"github.com/aleRizzolo/SeaScan/core/cmd"
	coreconfig "github.com/aleRizzolo/SeaScan/core/config"
	"github.com/aleRizzolo/SeaScan/internal/actions"
	"github.com/aleRizzolo/SeaScan/internal/mail"
	"github.com/aleRizzolo/SeaScan/internal/measurements"
	"github.com/aleRizzolo/SeaScan/internal/seascan"
)

type configCarrier struct {
	cfg *coreconfig.Config
}

func (c configCarrier) CoreConfig() *coreconfig.Config { return c.cfg }

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log.Printf("seascan %s (%s, built %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date)

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return configCarrier{cfg: cfg}, nil
		},
		Bootstrap: bootstrapApp,
	})
	if err != nil {
		log.Fatalf("seascan: %v", err)
	}
}

func bootstrapApp(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
	cfg := carrier.CoreConfig()

	res, err := bootstrap.Run(context.Background(), bootstrap.Options{Config: cfg})
	if err != nil {
		return nil, err
	}

	store, err := measurements.New(dynamodb.NewFromConfig(res.AWS), cfg.AWS.Table)
	if err != nil {
		return nil, err
	}
	invoker, err := actions.New(lambda.NewFromConfig(res.AWS), seascan.FunctionMap(cfg.Actions))
	if err != nil {
		return nil, err
	}
	mailer, err := mail.New(ses.NewFromConfig(res.AWS), cfg.Mail.Sender)
	if err != nil {
		return nil, err
	}

	svc, err := seascan.NewService(store, invoker, mailer, cfg.AWS.Table)
	if err != nil {
		return nil, err
	}
	return seascan.NewApp(cfg, svc)
}
