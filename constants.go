package casclient

const (
	Env_CasUrl           = "CAS_URL"
	Env_LogLevel         = "LOG_LEVEL"
	Env_MetricsExporter  = "METRICS_EXPORTER"
	Env_OtelCollectorUrl = "OTEL_COLLECTOR_URL"
)
