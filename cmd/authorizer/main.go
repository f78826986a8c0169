// Command authorizer is the API Gateway custom authorizer Lambda.
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/dmitrijs2005/todokeeper/internal/server"
	"github.com/dmitrijs2005/todokeeper/internal/server/authorizer"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	verifier, err := server.NewVerifier(cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	a := authorizer.New(verifier, server.NewLogger())
	lambda.Start(authorizer.NewLambdaHandler(a).Handle)
}
