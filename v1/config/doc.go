// Package config loads the service configuration.
//
// Values are layered: struct defaults, then an optional YAML file (CONFIG_PATH
// or config.yaml in the working directory), then environment variables. Only
// the variables listed in the mapping table are read, for example PORT,
// DATABASE, POSTGRES_HOST, ZAP_LOGGER_LEVEL or CDN_KEY_NAME.
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
package config
