package main

import (
	"github.com/fwojciec/thermo"
	"github.com/fwojciec/thermo/refprop"
	"github.com/fwojciec/thermo/remote"
)

// resolveBackend picks the remote backend when a URL is configured and the
// native library otherwise.
func resolveBackend(cfg thermo.Config, remoteURL, remoteKey string) thermo.Backend {
	if remoteURL != "" {
		return remote.New(remoteURL, remote.WithAPIKey(remoteKey))
	}
	return refprop.New(cfg)
}
