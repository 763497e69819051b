package metrics

import (
	"context"
	"net/url"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	casclient "github.com/ceramicnetwork/go-cas-client"
	"github.com/ceramicnetwork/go-cas-client/common"
	"github.com/ceramicnetwork/go-cas-client/models"
)

const MeterName = "go-cas-client"
const DefaultExportInterval = time.Minute

type OtelMetricService struct {
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter
	logger        models.Logger
	counters      map[models.MetricName]metric.Int64Counter
	histograms    map[models.MetricName]metric.Int64Histogram
	mu            sync.Mutex
}

// NewMetricService builds a MetricService backed by the OTel metric SDK. The
// exporter is chosen via the METRICS_EXPORTER env var: "otlp" pushes to the
// collector named by OTEL_COLLECTOR_URL, anything else writes to stdout.
func NewMetricService(ctx context.Context, logger models.Logger) (models.MetricService, error) {
	var reader sdkmetric.Reader
	if os.Getenv(casclient.Env_MetricsExporter) == "otlp" {
		collectorUrl, err := url.Parse(os.Getenv(casclient.Env_OtelCollectorUrl))
		if err != nil {
			return nil, err
		}
		exporter, err := otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(collectorUrl.Host),
			otlpmetrichttp.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(DefaultExportInterval))
	} else {
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, err
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(DefaultExportInterval))
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(resource.NewWithAttributes("", attribute.String("service.name", common.ServiceName))),
	)
	return &OtelMetricService{
		meterProvider: meterProvider,
		meter:         meterProvider.Meter(MeterName),
		logger:        logger,
		counters:      make(map[models.MetricName]metric.Int64Counter),
		histograms:    make(map[models.MetricName]metric.Int64Histogram),
	}, nil
}

func (o *OtelMetricService) Count(ctx context.Context, name models.MetricName, val int) error {
	counter, err := o.counter(name)
	if err != nil {
		return err
	}
	counter.Add(ctx, int64(val))
	return nil
}

func (o *OtelMetricService) Distribution(ctx context.Context, name models.MetricName, val int) error {
	histogram, err := o.histogram(name)
	if err != nil {
		return err
	}
	histogram.Record(ctx, int64(val))
	return nil
}

func (o *OtelMetricService) Shutdown(ctx context.Context) {
	if err := o.meterProvider.Shutdown(ctx); err != nil {
		o.logger.Warnf("metrics: error during shutdown: %v", err)
	}
}

func (o *OtelMetricService) counter(name models.MetricName) (metric.Int64Counter, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if counter, found := o.counters[name]; found {
		return counter, nil
	}
	counter, err := o.meter.Int64Counter(string(name))
	if err != nil {
		return nil, err
	}
	o.counters[name] = counter
	return counter, nil
}

func (o *OtelMetricService) histogram(name models.MetricName) (metric.Int64Histogram, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if histogram, found := o.histograms[name]; found {
		return histogram, nil
	}
	histogram, err := o.meter.Int64Histogram(string(name))
	if err != nil {
		return nil, err
	}
	o.histograms[name] = histogram
	return histogram, nil
}
