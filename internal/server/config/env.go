package config

import (
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv loads variables from ./.env when the file exists. Variables
// already present in the environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}

// parseEnv overlays values of the environment variables onto config.
// Unset variables leave the current value untouched.
//
//	ADDRESS, STORE_BACKEND, TODOS_TABLE, TODOS_INDEX, DATABASE_DSN,
//	IMAGES_S3_BUCKET, SIGNED_URL_EXPIRATION (seconds), AWS_REGION,
//	S3_BASE_ENDPOINT, DYNAMODB_ENDPOINT, TODOS_AWS_ACCESS_KEY_ID,
//	TODOS_AWS_SECRET_ACCESS_KEY, JWKS_URL
//
// The standard AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY are left to the SDK
// default chain, which also picks up AWS_SESSION_TOKEN of the Lambda role.
//
// A non-numeric SIGNED_URL_EXPIRATION panics, like a broken JSON file does.
func parseEnv(config *Config, lookup func(string) (string, bool)) {
	strs := map[string]*string{
		"ADDRESS":                     &config.EndpointAddrHTTP,
		"STORE_BACKEND":               &config.StoreBackend,
		"TODOS_TABLE":                 &config.TodosTable,
		"TODOS_INDEX":                 &config.TodosIndex,
		"DATABASE_DSN":                &config.DatabaseDSN,
		"IMAGES_S3_BUCKET":            &config.ImagesBucket,
		"AWS_REGION":                  &config.AWSRegion,
		"S3_BASE_ENDPOINT":            &config.S3BaseEndpoint,
		"DYNAMODB_ENDPOINT":           &config.DynamoDBEndpoint,
		"TODOS_AWS_ACCESS_KEY_ID":     &config.AWSAccessKeyID,
		"TODOS_AWS_SECRET_ACCESS_KEY": &config.AWSSecretAccessKey,
		"JWKS_URL":                    &config.JWKSURL,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	if v, ok := lookup("SIGNED_URL_EXPIRATION"); ok {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.SignedURLExpiration = time.Duration(seconds) * time.Second
	}
}
