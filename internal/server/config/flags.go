package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   store backend: dynamodb | postgres
//	-t string   DynamoDB table
//	-i string   DynamoDB createdAt index
//	-d string   PostgreSQL DSN
//	-b string   S3 images bucket
//	-x int      signed URL expiration, seconds
//	-g string   AWS region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-y string   DynamoDB endpoint (e.g., "http://127.0.0.1:8000")
//	-u string   AWS access key id
//	-p string   AWS secret access key
//	-j string   JWKS URL
//
// args are filtered with flagx.FilterArgs first, so -c/-config and flags of
// other components do not collide.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-i", "-d", "-b", "-x", "-g", "-e", "-y", "-u", "-p", "-j"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.StoreBackend, "s", config.StoreBackend, "store backend (dynamodb|postgres)")
	fs.StringVar(&config.TodosTable, "t", config.TodosTable, "DynamoDB todos table")
	fs.StringVar(&config.TodosIndex, "i", config.TodosIndex, "DynamoDB createdAt index")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.ImagesBucket, "b", config.ImagesBucket, "S3 images bucket")

	expiration := fs.Int("x", int(config.SignedURLExpiration.Seconds()), "signed URL expiration (in seconds)")

	fs.StringVar(&config.AWSRegion, "g", config.AWSRegion, "AWS region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.DynamoDBEndpoint, "y", config.DynamoDBEndpoint, "DynamoDB endpoint")
	fs.StringVar(&config.AWSAccessKeyID, "u", config.AWSAccessKeyID, "AWS access key id")
	fs.StringVar(&config.AWSSecretAccessKey, "p", config.AWSSecretAccessKey, "AWS secret access key")
	fs.StringVar(&config.JWKSURL, "j", config.JWKSURL, "JWKS URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -x has whole-second resolution; only an explicit flag replaces the
	// value from earlier layers.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "x" {
			config.SignedURLExpiration = time.Duration(*expiration) * time.Second
		}
	})
}
