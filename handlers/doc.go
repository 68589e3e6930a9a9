// Package handlers holds the HTTP handlers of the polyglot site.
//
// Pages serves raw content items. A request for /es/lessons/intro streams
// the first of es/lessons/intro, es/lessons/intro.md and
// es/lessons/intro/index.md that exists, with Content-Language: es. Paths
// without an available language prefix are redirected (302) to the same path
// under the request's negotiated language, so "/" becomes "/uk/" for a
// Ukrainian browser.
//
// Languages serves two JSON endpoints:
//
//	GET /api/languages?path=/es/lessons/intro
//	{"default":"en","current":"es","languages":[
//	  {"code":"en","name":"English","url":"/en/lessons/intro","active":false}, ...]}
//
//	GET /api/resolve
//	{"language":"uk","source":"hint","available":["en","es","uk"]}
package handlers
