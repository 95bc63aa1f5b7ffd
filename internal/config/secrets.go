package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsOverlay is the shape of the secret stored in AWS Secrets Manager.
// Only the keys that are set overwrite config values.
type SecretsOverlay struct {
	OddsAPIKey string `json:"odds_api_key"`
	IFTTTKey   string `json:"ifttt_key"`
}

// LoadSecretsFromAWS overlays API credentials from AWS Secrets Manager onto
// an already-loaded config, keeping keys out of config files.
func LoadSecretsFromAWS(cfg *Config, region, secretName string) error {
	overlay, err := fetchSecretsFromAWS(context.Background(), region, secretName)
	if err != nil {
		return err
	}
	if overlay.OddsAPIKey != "" {
		cfg.OddsAPI.APIKey = overlay.OddsAPIKey
	}
	if overlay.IFTTTKey != "" {
		cfg.Notify.IFTTTKey = overlay.IFTTTKey
	}
	return nil
}

func fetchSecretsFromAWS(ctx context.Context, region, secretName string) (*SecretsOverlay, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg)
	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret from AWS Secrets Manager: %w", err)
	}

	overlay := &SecretsOverlay{}
	switch {
	case result.SecretString != nil:
		if err := json.Unmarshal([]byte(*result.SecretString), overlay); err != nil {
			return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
		}
	case result.SecretBinary != nil:
		if err := json.Unmarshal(result.SecretBinary, overlay); err != nil {
			return nil, fmt.Errorf("failed to parse secret binary: %w", err)
		}
	default:
		return nil, fmt.Errorf("no secret data found in AWS Secrets Manager")
	}
	return overlay, nil
}
