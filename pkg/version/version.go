// Package version holds build metadata, set with -ldflags at release time:
//
//	go build -ldflags "-X github.com/jeanpaul/phonebook/pkg/version.Version=v1.2.0 -X github.com/jeanpaul/phonebook/pkg/version.Commit=$(git rev-parse --short HEAD)"
package version

var (
	Version = "dev"
	Commit  = "none"
)
