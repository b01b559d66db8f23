// Package all registers every well-known repository.
//
// Import this package for its side effects:
//
//	import (
//		"github.com/git-pkgs/outdated"
//		_ "github.com/git-pkgs/outdated/all"
//	)
//
//	repos := outdated.KnownRepositories()
//	// [central clojars google google-asia gradle-plugins]
package all

import (
	_ "github.com/git-pkgs/outdated/internal/clojars"
	_ "github.com/git-pkgs/outdated/internal/maven"
)
