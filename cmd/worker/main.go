package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/go-qr-orderform/internal/logger"
)

const serviceName = "order-feed-worker"

func main() {
	level, err := logger.ParseLevel(os.Getenv("LOG_LEVEL"))
	log := logger.New(serviceName, level)
	if err != nil {
		log.Warn("log_level_ignored", "error", err.Error())
	}

	p := NewProcessor(log)

	// RUN_LOCAL=true processes a single body from LOCAL_SQS_BODY and exits.
	if os.Getenv("RUN_LOCAL") == "true" {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = `{"order_id":"ORD-local-1","mode":"Walk-In","items":["tea","tea"],"amount":20}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{{MessageId: "local-1", Body: body}},
		}
		if err := p.Handle(context.Background(), event); err != nil {
			os.Exit(1)
		}
		return
	}

	lambda.Start(p.Handle)
}
