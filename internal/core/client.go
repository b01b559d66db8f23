package core

import (
	"github.com/git-pkgs/outdated/client"
)

// Type aliases so repository implementations only import core.
type (
	URLBuilder = client.URLBuilder
	BaseURLs   = client.BaseURLs
)

var BuildURLs = client.BuildURLs
