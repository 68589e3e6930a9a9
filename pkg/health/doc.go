// Package health serves liveness and readiness probes.
//
// Liveness only reports that the process is up. Readiness runs named checks
// concurrently under a shared timeout and answers 503 when any of them
// fails:
//
//	mux.Handle("/health/ready", health.ReadinessHandler(health.Checks{
//		"redis":   redis.Healthcheck(client),
//		"content": contentCheck,
//	}, health.WithTimeout(2*time.Second)))
//
// Both handlers respond with plain text by default and with a JSON Response
// when the request carries "Accept: application/json" or "?format=json".
package health
