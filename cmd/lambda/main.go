// Command lambda serves the todo routes behind API Gateway (REST proxy
// integration). Requests reach it only after the custom authorizer allowed them.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/dmitrijs2005/todokeeper/internal/server"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer app.Close()

	ginLambda := ginadapter.New(app.LambdaEngine())
	lambda.Start(ginLambda.ProxyWithContext)
}
