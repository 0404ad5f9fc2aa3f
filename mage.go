//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	jetServerOutput = "gen"
	jetBotOutput    = "bot/gen"
	jetAuthOutput   = "auth/gen"

	sqliteRatingsFile = "rating.sqlite"
	sqliteBotFile     = "bot.sqlite"
	sqliteAuthFile    = "auth.sqlite"

	serverBin  = "./bin/server"
	certgenBin = "./bin/certgen"
)

const (
	toolsDir     = "tools/"
	toolsModfile = toolsDir + "go.mod"
	toolsBinDir  = toolsDir + "bin/"
	lintTool     = toolsBinDir + "golangci-lint"
	jetTool      = toolsBinDir + "jet"
)

func goModDownload() error {
	return sh.Run("go", "mod", "download")
}

// Build builds server binary
func Build() error {
	mg.Deps(goModDownload)
	return sh.Run("go", "build", "-o", serverBin, "cmd/main.go")
}

// Run starts server
func Run() error {
	mg.Deps(Build)
	return sh.Run(serverBin)
}

// Certgen builds and runs the self signed certificate generator
func Certgen() error {
	if err := sh.Run("go", "build", "-o", certgenBin, "./cmd/certgen"); err != nil {
		return err
	}
	return sh.Run(certgenBin)
}

// GenJet regenerates the db access code from the sqlite files
func GenJet() error {
	mg.Deps(buildJetTool)
	if err := sh.Run(jetTool, "-source", "sqlite", "-dsn", sqliteRatingsFile, "-path", jetServerOutput); err != nil {
		return err
	}
	if err := sh.Run(jetTool, "-source", "sqlite", "-dsn", sqliteAuthFile, "-path", jetAuthOutput); err != nil {
		return err
	}
	return sh.Run(jetTool, "-source", "sqlite", "-dsn", sqliteBotFile, "-path", jetBotOutput)
}

func buildJetTool() error {
	return sh.RunWith(map[string]string{
		"CGO_ENABLED": "1",
	}, "go", "build", "-modfile", toolsModfile, "-o", jetTool, "github.com/go-jet/jet/v2/cmd/jet")
}

func Lint() error {
	mg.Deps(buildLintTool)
	return sh.Run(lintTool, "run", "./...")
}

func buildLintTool() error {
	return sh.Run(
		"go", "build",
		"-modfile", toolsModfile,
		"-o", lintTool,
		"github.com/golangci/golangci-lint/cmd/golangci-lint",
	)
}

func Test() error {
	return sh.Run("go", "test", "./...")
}
