// Command submit-result-lambda serves the result notifier behind an API
// Gateway HTTP API (payload format 2.0).
package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/pfrederiksen/quiz-results/internal/config"
	"github.com/pfrederiksen/quiz-results/internal/handler"
	"github.com/pfrederiksen/quiz-results/internal/lambdahttp"
	"github.com/pfrederiksen/quiz-results/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("QUIZ_CONFIG_FILE"))
	if err != nil {
		logger.Error("Failed to load configuration", nil, err)
		os.Exit(1)
	}

	logger.SetDefault(logger.New(cfg.LogLevel(), os.Stdout))

	hcfg, err := cfg.Handler()
	if err != nil {
		logger.Error("Invalid configuration", nil, err)
		os.Exit(1)
	}

	h := handler.New(hcfg)

	lambda.Start(lambdahttp.New(h).Handle)
}
