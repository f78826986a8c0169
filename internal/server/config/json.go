package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
	"github.com/dmitrijs2005/todokeeper/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for the expiration, which allows parsing both
// string values such as "300s" and integer nanoseconds.
//
// Pointer fields distinguish "absent" from "empty": only keys present in the
// file override the current configuration.
type JsonConfig struct {
	EndpointAddrHTTP    *string         `json:"endpoint_addr_http"`
	StoreBackend        *string         `json:"store_backend"`
	TodosTable          *string         `json:"todos_table"`
	TodosIndex          *string         `json:"todos_index"`
	DatabaseDSN         *string         `json:"database_dsn"`
	ImagesBucket        *string         `json:"images_bucket"`
	SignedURLExpiration *timex.Duration `json:"signed_url_expiration"`
	AWSRegion           *string         `json:"aws_region"`
	S3BaseEndpoint      *string         `json:"s3_base_endpoint"`
	DynamoDBEndpoint    *string         `json:"dynamodb_endpoint"`
	AWSAccessKeyID      *string         `json:"aws_access_key_id"`
	AWSSecretAccessKey  *string         `json:"aws_secret_access_key"`
	JWKSURL             *string         `json:"jwks_url"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag into config. Without the flag nothing is loaded.
//
// If the file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.ConfigFilePath(args)

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.TodosTable, c.TodosTable)
	setString(&config.TodosIndex, c.TodosIndex)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.ImagesBucket, c.ImagesBucket)
	setString(&config.AWSRegion, c.AWSRegion)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.DynamoDBEndpoint, c.DynamoDBEndpoint)
	setString(&config.AWSAccessKeyID, c.AWSAccessKeyID)
	setString(&config.AWSSecretAccessKey, c.AWSSecretAccessKey)
	setString(&config.JWKSURL, c.JWKSURL)

	if c.SignedURLExpiration != nil {
		config.SignedURLExpiration = c.SignedURLExpiration.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
