// Package main provides the gnoccur CLI application.
// gnoccur resolves taxon names and retrieves species occurrence records
// from a GBIF-style biodiversity web service.
package main

import (
	"os"

	"github.com/gnames/gnoccur/pkg/config"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	config.Version = Version
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
