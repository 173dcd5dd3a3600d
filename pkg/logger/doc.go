// Package logger builds the *slog.Logger shared by the back office.
//
// New returns a JSON or text logger wrapped in a LogHandlerDecorator, which
// runs registered ContextExtractor callbacks on every record. Request ids and
// tenant ids reach log lines this way without threading loggers through
// handlers.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "backoffice"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "event published", logger.TenantKey(key), logger.Delivered(n))
//
// The attribute helpers in attr.go keep key names consistent across packages.
// Helpers taking an error return an empty slog.Attr for nil, which slog drops.
package logger
