// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Program tscfg reads a configuration document, optionally validates it
// against a schema, and reports any error found.
//
// Usage: tscfg [-s SCHEMA] [-i[DIR]] [FILE]
//
// FILE defaults to standard input. -s names a schema document to validate
// FILE against, itself loaded and meta-schema-checked first. -i enables
// %include directives; with an argument, DIR is a comma-separated list of
// directories searched for included files (DIR itself may use ':' to pack
// several roots into one list entry); without one, includes are resolved
// only relative to the current directory.
package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/pborman/getopt"

	"github.com/tildetoolkit/gocfg/pkg/config"
	"github.com/tildetoolkit/gocfg/pkg/schema"
)

func main() {
	var schemaPath string
	var includeDirs string
	var help bool

	getopt.StringVarLong(&schemaPath, "schema", 's', "validate against the schema at PATH", "PATH")
	includeOpt := getopt.StringVarLong(&includeDirs, "include", 'i', "enable %include, searching DIR[,DIR...]", "DIR")
	includeOpt.SetOptional()
	getopt.BoolVarLong(&help, "help", 'h', "display help")
	getopt.SetParameters("[FILE]")

	if err := getopt.Getopt(func(getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		os.Exit(0)
	}

	diag := log.New(os.Stderr, "", 0)

	opts := config.Options{
		VerboseError:  true,
		ErrorFileName: true,
	}
	if includeOpt.Seen() {
		opts.IncludeDefault = true
		opts.SplitPath = true
		if includeDirs != "" {
			opts.SearchPath = strings.Split(includeDirs, ",")
		} else {
			opts.SearchPath = []string{"."}
		}
	}

	args := getopt.Args()
	if len(args) > 1 {
		diag.Printf("too many arguments")
		os.Exit(1)
	}

	fileName := "<stdin>"
	var input *os.File = os.Stdin
	if len(args) == 1 {
		fileName = args[0]
		f, err := os.Open(fileName)
		if err != nil {
			diag.Printf("%s", err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	data, err := ioutil.ReadAll(input)
	if err != nil {
		diag.Printf("%s: %s", fileName, err)
		os.Exit(1)
	}

	root, err := config.Parse(string(data), fileName, opts)
	if err != nil {
		diag.Printf("%s", err)
		os.Exit(1)
	}

	if schemaPath != "" {
		schemaRoot, err := schema.LoadFile(schemaPath, opts)
		if err != nil {
			diag.Printf("%s: %s", schemaPath, err)
			os.Exit(1)
		}
		if err := schema.Validate(root, schemaRoot, opts); err != nil {
			diag.Printf("%s", err)
			os.Exit(1)
		}
	}

	os.Exit(0)
}
