// Package api exposes the endpoint catalog over HTTP with chi.
//
// Every catalog endpoint is a GET route served at /<name> and /v1/<name>.
// Query parameters go through the translator unchanged:
//
//	GET /v1/adoption?technology=WordPress,Drupal&geo=ALL&rank=ALL&start=latest
//
// Responses are JSON. Success is 200 with an array, invalid parameters are
// 400 with an array of {"<param>": "<message>"} objects and storage failures
// are 500 with {"errors":[{"error":"Failed to fetch <endpoint> data"}]}.
//
// GET /v1/cdn/signed-params returns Cloud CDN signed URL prefix parameters
// when a signing key is configured.
package api
