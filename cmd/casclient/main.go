package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"github.com/ceramicnetwork/go-cas-client/common/cas"
	"github.com/ceramicnetwork/go-cas-client/common/loggers"
	"github.com/ceramicnetwork/go-cas-client/common/metrics"
	"github.com/ceramicnetwork/go-cas-client/common/notifs"
	"github.com/ceramicnetwork/go-cas-client/services"
)

func main() {
	if err := godotenv.Load("env/.env"); err != nil {
		log.Printf("main: no .env file loaded: %v", err)
	}

	var args struct {
		StreamId string `arg:"positional,required" help:"stream id to anchor"`
		Tip      string `arg:"positional,required" help:"tip commit cid to anchor"`
		CasUrl   string `arg:"--cas-url,env:CAS_URL" help:"anchoring service url"`
	}
	arg.MustParse(&args)
	if len(args.CasUrl) == 0 {
		log.Fatalf("main: anchoring service url not configured")
	}

	logger := loggers.NewLogger()
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metricService, err := metrics.NewMetricService(ctx, logger)
	if err != nil {
		logger.Fatalf("main: error creating metric service: %v", err)
	}
	defer metricService.Shutdown(ctx)

	notifier, err := notifs.NewDiscordHandler(logger)
	if err != nil {
		logger.Fatalf("main: error creating notifier: %v", err)
	}

	casApi := cas.NewCasClient(args.CasUrl, cas.NewHttpTransport())
	anchorService := services.NewAnchorService(casApi, logger, metricService, notifier)

	chainId, err := anchorService.Init(ctx)
	if err != nil {
		logger.Fatalf("main: error initializing anchor service: %v", err)
	}
	logger.Infof("main: anchoring to chain %s via %s", chainId, args.CasUrl)

	anchorReq, err := services.NewAnchorRequest(args.StreamId, args.Tip)
	if err != nil {
		logger.Fatalf("main: invalid anchor request: %v", err)
	}

	for event := range anchorService.RequestAnchor(ctx, anchorReq) {
		if event.AnchorCommit != nil {
			logger.Infof("main: %s: %s (anchor commit %s)", event.Status, event.Message, *event.AnchorCommit)
		} else {
			logger.Infof("main: %s: %s", event.Status, event.Message)
		}
	}
}
