// Package polyglot serves multilingual content and picks the language each
// visitor sees.
//
// Content lives in a store (a directory or an S3 bucket) laid out by language:
//
//	en/index.md
//	en/lessons/intro.md
//	uk/index.md
//
// The available languages are the configured supported languages that have
// at least one item in the store. They are computed once per process and
// shared by every request; the default language stands in when none
// qualify.
//
// For each request the language comes from a /{lang}/ URL prefix when there
// is one. Otherwise the Accept-Language header is matched against the
// available languages, then platform locale hints, then the default.
//
// # Quick Start
//
//	cfg, err := polyglot.LoadConfig("polyglot.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	site, err := polyglot.NewSite(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := site.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration
//
// LoadConfig reads an optional YAML file and then the environment. Every
// setting has an environment variable, and it wins over the file:
//
//	ADDR                 listen address (:8080)
//	SUPPORTED_LANGUAGES  comma separated codes (en,es,uk)
//	DEFAULT_LANGUAGE     fallback code (en)
//	CONTENT_BACKEND      fs or s3 (fs)
//	CONTENT_DIR          content root for fs (./content)
//	CONTENT_EXCLUDE      comma separated globs of hidden items (*/drafts/**)
//	CONTENT_WATCH        rescan languages on file changes
//	CONTENT_S3_BUCKET    bucket for s3, with CONTENT_S3_PREFIX, CONTENT_S3_REGION, ...
//	REDIS_URL            share the content listing between instances
//	LOG_LEVEL, LOG_FORMAT, SENTRY_DSN
//
// # Endpoints
//
//	GET /{lang}/...      content items
//	GET /api/languages   language picker entries
//	GET /api/resolve     negotiation result for the caller
//	GET /metrics         Prometheus metrics
//	GET /health/live     liveness
//	GET /health/ready    readiness (store listing, Redis)
package polyglot
