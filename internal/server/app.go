// Package server wires configuration, AWS clients, the todo store, token
// verification, business logic and the HTTP transport into one App, and
// runs it until an OS signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/authorizer"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/dataaccess"
	"github.com/dmitrijs2005/todokeeper/internal/server/images"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/rest"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig
	openDB               = sql.Open
	trustedCertificate   = auth.TrustedCertificate
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	todoService *services.TodoService
	authorizer  *authorizer.Authorizer
}

// NewLogger returns the JSON logger on stdout shared by all entry points.
func NewLogger() logging.Logger {
	return logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
}

// NewVerifier returns a verifier backed by the JWKS endpoint when one is
// configured, otherwise by the embedded certificate.
func NewVerifier(c *config.Config) (*auth.Verifier, error) {
	if c.JWKSURL != "" {
		return auth.NewVerifier(auth.NewJWKSResolver(c.JWKSURL, &http.Client{Timeout: 10 * time.Second})), nil
	}

	r, err := auth.NewStaticResolver(trustedCertificate)
	if err != nil {
		return nil, fmt.Errorf("trusted certificate: %w", err)
	}
	return auth.NewVerifier(r), nil
}

// NewAWSConfig loads the default AWS configuration for the configured region.
// Static credentials take precedence over the default chain when set.
func NewAWSConfig(ctx context.Context, c *config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(c.AWSRegion)}
	if c.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AWSAccessKeyID, c.AWSSecretAccessKey, "")))
	}
	return loadDefaultAWSConfig(ctx, opts...)
}

func newRepositoryManager(c *config.Config, awsCfg aws.Config) (repomanager.RepositoryManager, *sql.DB, error) {
	switch c.StoreBackend {
	case config.BackendDynamoDB:
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if c.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(c.DynamoDBEndpoint)
			}
		})
		return repomanager.NewDynamoRepositoryManager(client, c.TodosTable, c.TodosIndex), nil, nil

	case config.BackendPostgres:
		db, err := openDB("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("db init error: %w", err)
		}
		m, err := repomanager.NewPostgresRepositoryManager(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db init error: %w", err)
		}
		return m, db, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", common.ErrUnknownBackend, c.StoreBackend)
	}
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := NewLogger()

	verifier, err := NewVerifier(c)
	if err != nil {
		return nil, err
	}

	awsCfg, err := NewAWSConfig(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	rm, db, err := newRepositoryManager(c, awsCfg)
	if err != nil {
		return nil, err
	}

	if err := rm.RunMigrations(ctx); err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store := images.NewS3Store(awsCfg, c.ImagesBucket, c.S3BaseEndpoint, c.SignedURLExpiration)
	access := dataaccess.NewTodoAccess(rm.Todos(), store)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		todoService: services.NewTodoService(access, verifier, logger),
		authorizer:  authorizer.New(verifier, logger),
	}, nil
}

// LambdaEngine returns the router for the API Gateway proxy. Authorization
// is left to the gateway's custom authorizer.
func (app *App) LambdaEngine() *gin.Engine {
	return rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.todoService, nil).Engine()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.todoService, app.authorizer)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Close releases the database connection, if any.
func (app *App) Close() error {
	if app.db != nil {
		return app.db.Close()
	}
	return nil
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.StoreBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "close error", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}
