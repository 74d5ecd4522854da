package main

import (
	"os"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/cmd"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/iostreams"
)

// Build information set by ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	buildInfo := cmd.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	ios := iostreams.System()
	code := cmd.Execute(ios, buildInfo)
	os.Exit(code)
}
