// Package tracer provides distributed tracing with OpenTelemetry.
//
// It wraps the OpenTelemetry TracerProvider behind a small API for
// creating spans, recording errors, attaching attributes, and
// propagating W3C trace context across service boundaries. When export
// is enabled, spans are shipped via the OTLP HTTP exporter configured
// through the standard OTEL_EXPORTER_OTLP_* environment variables.
//
// # Usage
//
//	tr := tracer.NewClient(tracer.Config{
//	    ServiceName:  "binding-sync",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	}, log)
//
//	ctx, span := tr.StartSpan(ctx, "query-bindings")
//	defer span.End()
//
//	res, err := store.Query().Type("member_of").Get(ctx)
//	if err != nil {
//	    tr.RecordErrorOnSpan(span, err)
//	    return err
//	}
//	tr.SetAttributes(span, map[string]interface{}{
//	    "bindings.count": res.Count(),
//	})
//
// With fx, include FXModule and provide a Config; the module shuts the
// provider down on application stop.
package tracer
