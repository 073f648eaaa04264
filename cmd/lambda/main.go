// Command lambda runs the checkout function under the AWS Lambda runtime,
// which is how Netlify executes Go functions.
package main

import (
	"log"
	"log/slog"
	"os"

	"stripe-checkout-function/config"
	"stripe-checkout-function/internal/app"
	"stripe-checkout-function/internal/services/checkout/handler"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Panicf("failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	// no scrape endpoint in a function runtime
	svc, err := app.NewCheckoutService(cfg, logger, nil)
	if err != nil {
		slog.Error("failed to build checkout service", "error", err)
		os.Exit(1)
	}

	lambda.Start(handler.NewLambdaHandler(svc).Handle)
}
