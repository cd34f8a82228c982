// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/account"
	"github.com/tessera-net/tesserad/storage"
	"github.com/tessera-net/tesserad/zmqutil"
)

const (
	identityPublicKeyFilename  = "tesserad.public"
	identityPrivateKeyFilename = "tesserad.private"

	liveSigningKeyFilename = "tesserad.live"
	testSigningKeyFilename = "tesserad.test"

	statusCertificateFilename = "status.crt"
	statusPrivateKeyFilename  = "status.key"
)

// number of archived rounds listed when not specified
const defaultRoundListing = 10

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-identity", "identity":
		publicFile := getFilenameWithDirectory(arguments, identityPublicKeyFilename)
		privateFile := getFilenameWithDirectory(arguments, identityPrivateKeyFilename)

		err := zmqutil.MakeKeyPair(publicFile, privateFile)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateFile, publicFile, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateFile, publicFile)

	case "gen-signing-keys", "sign":
		liveFile := getFilenameWithDirectory(arguments, liveSigningKeyFilename)
		testFile := getFilenameWithDirectory(arguments, testSigningKeyFilename)

		if _, err := account.MakeSigningKeyFile(liveFile, false); nil != err {
			fmt.Printf("generate the signing key for the live subnet: %q error: %s\n", liveFile, err)
			exitwithstatus.Exit(1)
		}
		if _, err := account.MakeSigningKeyFile(testFile, true); nil != err {
			_ = os.Remove(liveFile)
			fmt.Printf("generate the signing key for test subnets: %q error: %s\n", testFile, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated signing keys: %q and %q\n", liveFile, testFile)

	case "gen-status-cert", "cert":
		certificateFile := getFilenameWithDirectory(arguments, statusCertificateFilename)
		privateFile := getFilenameWithDirectory(arguments, statusPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("status", certificateFile, privateFile, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate status key: %q and certificate: %q error: %s\n", privateFile, certificateFile, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated status key: %q and certificate: %q\n", privateFile, certificateFile)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "rounds", "r", "dump-rounds", "dump":
		return false // defer processing until database is loaded

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-identity [DIR]         (identity) - create private key in: %q\n", "DIR/"+identityPrivateKeyFilename)
		fmt.Printf("                                          and the public key in: %q\n", "DIR/"+identityPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-signing-keys [DIR]     (sign)   - create signing keys in: %q and: %q\n", "DIR/"+liveSigningKeyFilename, "DIR/"+testSigningKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-status-cert [DIR]      (cert)   - create private key in:  %q\n", "DIR/"+statusPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+statusCertificateFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-status-cert [DIR] [IPs...]      - as above, certificate valid for the given hosts\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  rounds [COUNT]             (r)      - list the most recent archived rounds\n")
		fmt.Printf("\n")

		fmt.Printf("  dump-rounds S [E [FILE]]   (dump)   - dump round(s) as JSON structures to stdout/file\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the round archive is open so these commands can access it
func processDataCommand(log *logger.L, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "rounds", "r":
		count := defaultRoundListing
		if len(arguments) > 0 {
			n, err := strconv.Atoi(arguments[0])
			if nil != err || n < 1 {
				exitwithstatus.Message("error in round count: %q", arguments[0])
			}
			count = n
		}

		records, err := storage.RecentRounds(count)
		if nil != err {
			exitwithstatus.Message("round listing error: %s", err)
		}

		s, err := json.MarshalIndent(records, "", "  ")
		if nil != err {
			exitwithstatus.Message("round listing JSON error: %s", err)
		}
		fmt.Printf("%s\n", s)

	case "dump-rounds", "dump":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing starting sequence number argument")
		}

		n, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("error in sequence number: %s", err)
		}

		output := "-"

		// optional end range
		nEnd := n
		if len(arguments) > 1 {
			nEnd, err = strconv.ParseUint(arguments[1], 10, 64)
			if nil != err {
				exitwithstatus.Message("error in ending sequence number: %s", err)
			}
			if nEnd < n {
				exitwithstatus.Message("error: invalid ending sequence number: %d must not be less than: %d", nEnd, n)
			}
		}

		if len(arguments) > 2 {
			output = arguments[2]
		}
		fd := os.Stdout

		if output != "" && output != "-" {
			fd, err = os.Create(output)
			if nil != err {
				exitwithstatus.Message("error: creating: %q error: %s", output, err)
			}
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, n)
		cursor := storage.Pool.Rounds.NewFetchCursor().Seek(key)

		fmt.Fprintf(fd, "[\n")
	dump_rounds:
		for {
			elements, err := cursor.Fetch(100)
			if nil != err {
				exitwithstatus.Message("dump rounds error: %s", err)
			}
			if 0 == len(elements) {
				break dump_rounds
			}
			for _, element := range elements {
				if binary.BigEndian.Uint64(element.Key) > nEnd {
					break dump_rounds
				}
				var out bytes.Buffer
				err = json.Indent(&out, element.Value, "  ", "  ")
				if nil != err {
					exitwithstatus.Message("dump rounds JSON error: %s", err)
				}
				fmt.Fprintf(fd, "  %s,\n", out.Bytes())
			}
		}
		fmt.Fprintf(fd, "{}]\n")
		fd.Close()

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// get the working directory; if not set in the arguments
// it's set to the current directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}
