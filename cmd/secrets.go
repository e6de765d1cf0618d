package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type parameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// getStripeSecretKey prefers the key from env and falls back to SSM.
func getStripeSecretKey(ctx context.Context, cfg Config, loadAWSConfig func() (aws.Config, error)) (string, error) {
	if cfg.StripeSecretKey != "" {
		return cfg.StripeSecretKey, nil
	}

	awsCfg, err := loadAWSConfig()
	if err != nil {
		return "", err
	}

	return getSecureParameter(ctx, ssm.NewFromConfig(awsCfg), cfg.StripeSecretKeySSMParam)
}

func getSecureParameter(ctx context.Context, client parameterGetter, name string) (string, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get ssm parameter %q: %w", name, err)
	}

	if out.Parameter == nil || out.Parameter.Value == nil || *out.Parameter.Value == "" {
		return "", fmt.Errorf("ssm parameter %q is empty", name)
	}

	return *out.Parameter.Value, nil
}
