// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/tessera-net/tesserad/command/tessera-cli/configuration"
	"github.com/tessera-net/tesserad/subnet"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	testnet bool
	network string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "tessera-cli"
	app.Usage = "operator tool for tessera subnets"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: "",
			Usage: " connect to tessera `NETWORK` [tessera|testing|local]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
		cli.StringFlag{
			Name:  "use-agent, u",
			Value: "",
			Usage: " executable program that returns the password `EXE`",
		},
		cli.BoolFlag{
			Name:  "zero-agent-cache, z",
			Usage: " force re-entry of agent password",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a key pair, will not store in config file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "transport, t",
					Usage: " generate a transport key pair instead of a signing key",
				},
				cli.StringFlag{
					Name:  "output, o",
					Value: "",
					Usage: " write tagged key `FILE` instead of printing",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise tessera-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*worker connection, `HOST:PORT;HEXKEY`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "signing-key, k",
					Value: "",
					Usage: " use an existing signing `KEY`",
				},
				cli.BoolFlag{
					Name:  "new, n",
					Usage: " generate a new signing key",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "signing-key, k",
					Value: "",
					Usage: "+use an existing signing `KEY`",
				},
				cli.BoolFlag{
					Name:  "new, n",
					Usage: "+generate a new signing key",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "+add receive-only `ACCOUNT`",
				},
			},
			Action: runAdd,
		},
		{
			Name:   "list",
			Usage:  "list all identities in config file",
			Action: runList,
		},
		{
			Name:   "seed",
			Usage:  "decrypt and display an identity's signing key",
			Action: runSeed,
		},
		{
			Name:      "digest",
			Usage:     "compute the mixing digest of data and nonce",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "data, d",
					Value: "",
					Usage: "*payload `STRING` to digest",
				},
				cli.Uint64Flag{
					Name:  "nonce, n",
					Value: 0,
					Usage: " nonce `NUMBER` to mix in",
				},
			},
			Action: runDigest,
		},
		{
			Name:      "solve",
			Usage:     "search for a nonce with a local engine",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "data, d",
					Value: "",
					Usage: "*payload `STRING` to solve",
				},
				cli.Uint64Flag{
					Name:  "difficulty, f",
					Value: 8,
					Usage: " leading zero bits `NUMBER`",
				},
				cli.StringFlag{
					Name:  "engine, e",
					Value: "",
					Usage: " search engine `NAME` [sequential|batch]",
				},
				cli.Uint64Flag{
					Name:  "batch-size, b",
					Value: 0,
					Usage: " nonces per batch `NUMBER`",
				},
				cli.IntFlag{
					Name:  "units, j",
					Value: 0,
					Usage: " parallel units `NUMBER`",
				},
			},
			Action: runSolve,
		},
		{
			Name:      "verify",
			Usage:     "check a claimed solution against its puzzle",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "data, d",
					Value: "",
					Usage: "*payload `STRING` of the puzzle",
				},
				cli.Uint64Flag{
					Name:  "difficulty, f",
					Value: 8,
					Usage: " leading zero bits `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "nonce, n",
					Value: 0,
					Usage: "*claimed nonce `NUMBER`",
				},
			},
			Action: runVerify,
		},
		{
			Name:      "txt",
			Usage:     "decode a worker DNS TXT record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "record, r",
					Value: "",
					Usage: "*TXT record `STRING` to decode",
				},
			},
			Action: runTxt,
		},
		{
			Name:      "info",
			Usage:     "query a worker's status",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: " worker connection, `HOST:PORT;HEXKEY` [first configured]",
				},
			},
			Action: runInfo,
		},
		{
			Name:   "password",
			Usage:  "change an identity's password",
			Action: runChangePassword,
		},
		{
			Name:  "version",
			Usage: "display tessera-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command {
			return nil
		}

		// only want one of these
		network := c.GlobalString("network")
		switch network {
		case "tessera", "live":
			network = subnet.Tessera
		case "testing", "test":
			network = subnet.Testing
		case "local", "regression":
			network = subnet.Local
		default:
			return fmt.Errorf("network: %q can only be tessera/testing/local", network)
		}

		p := os.Getenv("XDG_CONFIG_HOME")
		if "" == p {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		dir, err := checkFileExists(p)
		if nil != err {
			return err
		}
		if !dir {
			return fmt.Errorf("not a directory: %q", p)
		}
		file := path.Join(p, app.Name, network+"-"+app.Name+".json")

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				testnet: subnet.IsTesting(network),
				network: network,
				verbose: verbose,
				e:       e,
				w:       w,
			}

		} else {

			if verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}

			config, err := configuration.Load(file)
			if nil != err {
				return err
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				config:  config,
				save:    false,
				testnet: config.TestNet,
				network: network,
				verbose: verbose,
				e:       e,
				w:       w,
			}
		}

		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if nil != err {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
