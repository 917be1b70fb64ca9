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

// ObservedRecognizer wraps a pdfgenie.Recognizer with OTEL instrumentation.
type ObservedRecognizer struct {
	inner pdfgenie.Recognizer
	inst  *Instruments
	model string
}

// WrapRecognizer returns an instrumented speech recognizer.
func WrapRecognizer(inner pdfgenie.Recognizer, model string, inst *Instruments) *ObservedRecognizer {
	return &ObservedRecognizer{inner: inner, inst: inst, model: model}
}

func (o *ObservedRecognizer) Name() string { return o.inner.Name() }

// SetAPIKey forwards the credential to the wrapped recognizer, if it
// accepts one.
func (o *ObservedRecognizer) SetAPIKey(key string) {
	if c, ok := o.inner.(pdfgenie.APIKeyCarrier); ok {
		c.SetAPIKey(key)
	}
}

func (o *ObservedRecognizer) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	ctx, span := o.inst.Tracer.Start(ctx, "speech.transcribe", trace.WithAttributes(
		AttrLLMModel.String(o.model),
		AttrLLMProvider.String(o.inner.Name()),
		AttrAudioMIMEType.String(mimeType),
		AttrAudioBytes.Int(len(audio)),
	))
	defer span.End()
	start := time.Now()

	text, err := o.inner.Transcribe(ctx, audio, mimeType)

	durationMs := float64(time.Since(start).Milliseconds())
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(AttrTextLength.Int(len(text)))

	o.inst.TranscribeRequests.Add(ctx, 1, metric.WithAttributes(
		AttrLLMModel.String(o.model),
		AttrLLMProvider.String(o.inner.Name()),
		attribute.String("status", status),
	))
	o.inst.TranscribeDuration.Record(ctx, durationMs, metric.WithAttributes(
		AttrLLMModel.String(o.model),
		AttrLLMProvider.String(o.inner.Name()),
	))

	var rec otellog.Record
	rec.SetSeverity(otellog.SeverityInfo)
	rec.SetBody(otellog.StringValue("transcription completed"))
	rec.AddAttributes(
		otellog.String("llm.model", o.model),
		otellog.String("llm.provider", o.inner.Name()),
		otellog.String("speech.audio.mime_type", mimeType),
		otellog.Int("speech.text_length", len(text)),
		otellog.Float64("llm.duration_ms", durationMs),
		otellog.String("status", status),
	)
	o.inst.Logger.Emit(ctx, rec)

	return text, err
}

var _ pdfgenie.Recognizer = (*ObservedRecognizer)(nil)
