package observer

import (
	"context"
	"time"

	pdfgenie "github.com/ravandi/pdfgenie"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ObservedProvider wraps a pdfgenie.Provider with OTEL instrumentation.
type ObservedProvider struct {
	inner pdfgenie.Provider
	inst  *Instruments
	model string
}

// WrapProvider returns an instrumented provider that emits traces, metrics, and logs.
func WrapProvider(inner pdfgenie.Provider, model string, inst *Instruments) *ObservedProvider {
	return &ObservedProvider{inner: inner, inst: inst, model: model}
}

func (o *ObservedProvider) Name() string { return o.inner.Name() }

// SetAPIKey forwards the credential to the wrapped provider, if it
// accepts one.
func (o *ObservedProvider) SetAPIKey(key string) {
	if c, ok := o.inner.(pdfgenie.APIKeyCarrier); ok {
		c.SetAPIKey(key)
	}
}

func (o *ObservedProvider) Chat(ctx context.Context, req pdfgenie.ChatRequest) (pdfgenie.ChatResponse, error) {
	ctx, span := o.inst.Tracer.Start(ctx, "llm.chat", trace.WithAttributes(
		AttrLLMModel.String(o.model),
		AttrLLMProvider.String(o.inner.Name()),
	))
	defer span.End()
	start := time.Now()

	resp, err := o.inner.Chat(ctx, req)

	durationMs := float64(time.Since(start).Milliseconds())
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	o.record(ctx, span, status, durationMs, resp.Usage)
	return resp, err
}

func (o *ObservedProvider) record(ctx context.Context, span trace.Span, status string, durationMs float64, usage pdfgenie.Usage) {
	cost := o.inst.Cost.Calculate(o.model, usage.InputTokens, usage.OutputTokens)

	attrs := metric.WithAttributes(
		AttrLLMModel.String(o.model),
		AttrLLMProvider.String(o.inner.Name()),
		AttrLLMMethod.String("chat"),
	)

	span.SetAttributes(
		AttrTokensInput.Int(usage.InputTokens),
		AttrTokensOutput.Int(usage.OutputTokens),
		AttrCostUSD.Float64(cost),
	)

	o.inst.TokenUsage.Add(ctx, int64(usage.InputTokens), metric.WithAttributes(
		AttrLLMModel.String(o.model),
		AttrLLMProvider.String(o.inner.Name()),
		attribute.String("direction", "input"),
	))
	o.inst.TokenUsage.Add(ctx, int64(usage.OutputTokens), metric.WithAttributes(
		AttrLLMModel.String(o.model),
		AttrLLMProvider.String(o.inner.Name()),
		attribute.String("direction", "output"),
	))
	o.inst.CostTotal.Add(ctx, cost, attrs)
	o.inst.LLMRequests.Add(ctx, 1, metric.WithAttributes(
		AttrLLMModel.String(o.model),
		AttrLLMProvider.String(o.inner.Name()),
		AttrLLMMethod.String("chat"),
		attribute.String("status", status),
	))
	o.inst.LLMDuration.Record(ctx, durationMs, attrs)

	// Structured log
	var rec otellog.Record
	rec.SetSeverity(otellog.SeverityInfo)
	rec.SetBody(otellog.StringValue("llm call completed"))
	rec.AddAttributes(
		otellog.String("llm.model", o.model),
		otellog.String("llm.provider", o.inner.Name()),
		otellog.Int("llm.tokens.input", usage.InputTokens),
		otellog.Int("llm.tokens.output", usage.OutputTokens),
		otellog.Float64("llm.cost_usd", cost),
		otellog.Float64("llm.duration_ms", durationMs),
		otellog.String("status", status),
	)
	o.inst.Logger.Emit(ctx, rec)
}

var _ pdfgenie.Provider = (*ObservedProvider)(nil)
