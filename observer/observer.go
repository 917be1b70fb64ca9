// Package observer provides OTEL-based observability for PDFGenie LLM operations.
//
// It wraps Provider, EmbeddingProvider, and Recognizer with instrumented
// versions that emit traces, metrics, and logs via OpenTelemetry. Users export
// to any OTEL-compatible backend by setting standard OTEL env vars.
package observer

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "github.com/ravandi/pdfgenie/observer"

// Instruments holds all OTEL instruments used by the observer wrappers.
type Instruments struct {
	Tracer trace.Tracer
	Meter  metric.Meter
	Logger otellog.Logger

	// Counters
	TokenUsage           metric.Int64Counter
	CostTotal            metric.Float64Counter
	LLMRequests          metric.Int64Counter
	EmbedRequests        metric.Int64Counter
	TranscribeRequests   metric.Int64Counter
	DocumentsIngested    metric.Int64Counter
	ChunksStored         metric.Int64Counter

	// Histograms
	LLMDuration        metric.Float64Histogram
	EmbedDuration      metric.Float64Histogram
	TranscribeDuration metric.Float64Histogram

	Cost *CostCalculator
}

// Init sets up OTEL trace, metric, and log providers with OTLP HTTP exporters.
// Configuration comes from standard OTEL env vars (OTEL_EXPORTER_OTLP_ENDPOINT, etc.).
// Returns a shutdown function that must be called on application exit.
func Init(ctx context.Context, pricing map[string]ModelPricing) (*Instruments, func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName("pdfgenie")),
		resource.WithFromEnv(),
	)
	if err != nil {
		return nil, nil, err
	}

	// Trace provider
	traceExp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	// Metric provider
	metricExp, err := otlpmetrichttp.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	// Log provider
	logExp, err := otlploghttp.New(ctx)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)

	inst, err := newInstruments(pricing)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		_ = lp.Shutdown(ctx)
		return nil, nil, err
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			tp.Shutdown(ctx),
			mp.Shutdown(ctx),
			lp.Shutdown(ctx),
		)
	}

	return inst, shutdown, nil
}

func newInstruments(pricing map[string]ModelPricing) (*Instruments, error) {
	tracer := otel.Tracer(scopeName)
	meter := otel.Meter(scopeName)
	logger := global.GetLoggerProvider().Logger(scopeName)

	tokenUsage, err := meter.Int64Counter("llm.token.usage",
		metric.WithDescription("Total tokens consumed"),
		metric.WithUnit("{token}"))
	if err != nil {
		return nil, err
	}

	costTotal, err := meter.Float64Counter("llm.cost.total",
		metric.WithDescription("Cumulative LLM cost in USD"),
		metric.WithUnit("USD"))
	if err != nil {
		return nil, err
	}

	llmRequests, err := meter.Int64Counter("llm.requests",
		metric.WithDescription("LLM request count"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}

	embedRequests, err := meter.Int64Counter("embedding.requests",
		metric.WithDescription("Embedding request count"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}

	transcribeRequests, err := meter.Int64Counter("transcription.requests",
		metric.WithDescription("Speech transcription request count"),
		metric.WithUnit("{request}"))
	if err != nil {
		return nil, err
	}

	documentsIngested, err := meter.Int64Counter("ingest.documents",
		metric.WithDescription("Documents ingested into the knowledge base"),
		metric.WithUnit("{document}"))
	if err != nil {
		return nil, err
	}

	chunksStored, err := meter.Int64Counter("ingest.chunks",
		metric.WithDescription("Chunks stored in the vector store"),
		metric.WithUnit("{chunk}"))
	if err != nil {
		return nil, err
	}

	llmDuration, err := meter.Float64Histogram("llm.duration",
		metric.WithDescription("LLM call duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	embedDuration, err := meter.Float64Histogram("embedding.duration",
		metric.WithDescription("Embedding call duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	transcribeDuration, err := meter.Float64Histogram("transcription.duration",
		metric.WithDescription("Speech transcription duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &Instruments{
		Tracer:             tracer,
		Meter:              meter,
		Logger:             logger,
		TokenUsage:         tokenUsage,
		CostTotal:          costTotal,
		LLMRequests:        llmRequests,
		EmbedRequests:      embedRequests,
		TranscribeRequests: transcribeRequests,
		DocumentsIngested:  documentsIngested,
		ChunksStored:       chunksStored,
		LLMDuration:        llmDuration,
		EmbedDuration:      embedDuration,
		TranscribeDuration: transcribeDuration,
		Cost:               NewCostCalculator(pricing),
	}, nil
}
