//go:build mage

// Copyright 2021-2022
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName    = "pvmetrics"
	packageName   = "."
	commonPackage = "github.com/penny-vault/pvmetrics/common"
)

var ldflags = "-X " + commonPackage + ".commitHash=$COMMIT_HASH -X " + commonPackage + ".buildDate=$BUILD_DATE"

// allow user to override go executable by running as GOEXE=xxx mage ...
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

// Build the pvmetrics binary with the commit hash and build date stamped into `pvmetrics version`
func Build() error {
	fmt.Println("Building...")
	return sh.RunWith(flagEnv(), goexe, buildArgs("build", "-o", binaryName, "-v")...)
}

// Install pvmetrics into $GOPATH/bin
func Install() error {
	return sh.RunWith(flagEnv(), goexe, buildArgs("install")...)
}

// Clean removes the built binary
func Clean() {
	fmt.Println("Cleaning...")
	os.RemoveAll(binaryName)
}

// Check runs the formatter, vet and the race enabled tests
func Check() {
	mg.Deps(Fmt, Vet)
	mg.Deps(TestRace)
}

// Test runs the ginkgo suites of every package
func Test() error {
	fmt.Println("Go Test")
	return runCmd(goexe, "test", "./...")
}

// TestRace runs the tests with the race detector
func TestRace() error {
	fmt.Println("Go Test Race")
	return runCmd(goexe, "test", "-race", "./...")
}

// Fmt fails if any package directory has files that are not gofmt'ed
func Fmt() error {
	fmt.Println("Go Format")

	dirs, err := sh.Output(goexe, "list", "-f", "{{.Dir}}", "./...")
	if err != nil {
		return err
	}

	// gofmt exits 0 even when it finds unformatted files, so look at its output
	unformatted, err := sh.Output("gofmt", append([]string{"-l"}, strings.Fields(dirs)...)...)
	if err != nil {
		return err
	}
	if unformatted != "" {
		fmt.Println("The following files are not gofmt'ed:")
		fmt.Println(unformatted)
		return errors.New("improperly formatted go files")
	}
	return nil
}

// Vet runs go vet
func Vet() error {
	fmt.Println("Go Vet")

	if err := sh.Run(goexe, "vet", "./..."); err != nil {
		return fmt.Errorf("error running go vet: %w", err)
	}
	return nil
}

func buildArgs(cmd string, extra ...string) []string {
	args := append([]string{cmd, "-ldflags", ldflags}, extra...)
	if runtime.GOOS == "windows" {
		args = append(args, "-buildmode", "exe")
	}
	return append(args, packageName)
}

func flagEnv() map[string]string {
	hash, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	return map[string]string{
		"COMMIT_HASH": hash,
		"BUILD_DATE":  time.Now().Format("2006-01-02T15:04:05Z0700"),
	}
}

// runCmd only prints the command output on failure unless mage runs verbose
func runCmd(cmd string, args ...string) error {
	if mg.Verbose() {
		return sh.Run(cmd, args...)
	}
	output, err := sh.Output(cmd, args...)
	if err != nil {
		fmt.Fprint(os.Stderr, output)
	}
	return err
}
