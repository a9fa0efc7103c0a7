// Package config loads runtime configuration for the evote CLI.
//
// Sources, later ones win:
//
//  1. Built-in defaults.
//  2. JSON file given with -c or -config.
//  3. EVOTE_* environment variables, optionally loaded from the dotenv
//     file given with -env.
//  4. Flags -a, -i and -d.
//
// JSON example:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "data_dir": "evote-data"
//	}
package config
