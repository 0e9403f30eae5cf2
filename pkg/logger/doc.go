// Package logger builds *slog.Logger values for tourbook services.
//
// New takes functional options for format, level, static attributes and
// ContextExtractor callbacks. Extractors run on every record, which is how
// request ids and visitor session ids reach log lines without being passed
// around explicitly:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "tourbook"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "enquiry acknowledged",
//	    logger.SessionID(visitor),
//	    logger.Reference(conf.Reference),
//	)
//
// Attribute helpers in attr.go keep key names consistent. Error and
// SessionID return an empty Attr for nil input so call sites need no nil
// checks.
package logger
