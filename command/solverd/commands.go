// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/tessera-net/tesserad/fault"
	"github.com/tessera-net/tesserad/zmqutil"
)

const (
	solverdPublicKeyFilename  = "solverd.public"
	solverdPrivateKeyFilename = "solverd.private"
)

// setup command handler
//
// commands that run to create key files these commands cannot access
// any internal states or the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-identity", "identity":
		publicKeyFilename := getFilenameWithDirectory(arguments, solverdPublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, solverdPrivateKeyFilename)

		err := zmqutil.MakeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "dns-txt", "txt":
		return false // defer processing until configuration is read

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	case "start", "run":
		return false // continue processing

	case "version", "v":
		fmt.Printf("%s\n", version)

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

		fmt.Printf("  gen-identity [DIR]         (identity) - create private key in: %q\n", "DIR/"+solverdPrivateKeyFilename)
		fmt.Printf("                                          and the public key in: %q\n", "DIR/"+solverdPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  dns-txt UID                (txt)    - display the data to put in a dns TXT record\n")
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
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
		arguments = arguments[1:]
	}

	switch command {
	case "dns-txt", "txt":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing worker uid argument")
		}
		dnsTXT(arguments[0], options)

	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		json.Indent(&out, b, "", "  ")
		out.WriteTo(os.Stdout)
		os.Stdout.WriteString("\n")

	default: // unknown commands fall through to the daemon startup
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// print out the DNS TXT record
//
// the uid is assigned when the worker is registered on the subnet, it
// cannot be derived from local data so must be given as an argument
func dnsTXT(uid string, options *Configuration) {
	//   <TAG> u=<UID> a=<IPv4;IPv6> p=<PORT> k=<HEX-KEY>
	const txtRecord = `TXT "tessera=v1 u=%d a=%s p=%d k=%x"` + "\n"

	n, err := strconv.ParseUint(uid, 10, 32)
	if nil != err {
		exitwithstatus.Message("error: invalid worker uid: %q  error: %s", uid, err)
	}

	w := options.Worker

	publicKey, err := zmqutil.ReadPublicKeyFile(w.PublicKey)
	if nil != err {
		exitwithstatus.Message("error: cannot read public key: %q  error: %s", w.PublicKey, err)
	}

	if 0 == len(w.Announce) {
		exitwithstatus.Message("error: no worker announce fields given")
	}

	IP4, IP6, port := getFirstConnections(w.Announce)
	if 0 == port {
		exitwithstatus.Message("error: cannot determine worker port")
	}

	IPs := ""
	if "" != IP4 {
		IPs = IP4
	}
	if "" != IP6 {
		if "" == IPs {
			IPs = IP6
		} else {
			IPs += ";" + IP6
		}
	}
	if "" == IPs {
		exitwithstatus.Message("error: cannot determine worker addresses")
	}

	fmt.Printf("worker uid:  %d\n", n)
	fmt.Printf("worker port: %d\n", port)
	fmt.Printf("public key:  %x\n", publicKey)
	fmt.Printf("IP4 IP6:     %s\n", IPs)

	fmt.Printf(txtRecord, n, IPs, port, publicKey)
}

// extract first IP4 and/or IP6 connection
func getFirstConnections(connections []string) (string, string, int) {

	initialPort := 0
	IP4 := ""
	IP6 := ""

scan_connections:
	for i, c := range connections {
		if "" == c {
			continue scan_connections
		}
		v6, IP, port, err := splitConnection(c)
		if nil != err {
			exitwithstatus.Message("error: cannot decode[%d]: %q  error: %s", i, c, err)
		}
		if v6 {
			if "" == IP6 {
				IP6 = IP
				if 0 == initialPort || port == initialPort {
					initialPort = port
				}
			}
		} else {
			if "" == IP4 {
				IP4 = IP
				if 0 == initialPort || port == initialPort {
					initialPort = port
				}
			}
		}
	}
	return IP4, IP6, initialPort
}

// split connection into ip and port
func splitConnection(hostPort string) (bool, string, int, error) {
	host, port, err := net.SplitHostPort(hostPort)
	if nil != err {
		return false, "", 0, fault.InvalidIpAddress
	}

	IP := net.ParseIP(strings.Trim(host, " "))
	if nil == IP {
		return false, "", 0, fault.InvalidIpAddress
	}

	numericPort, err := strconv.Atoi(strings.Trim(port, " "))
	if nil != err {
		return false, "", 0, err
	}
	if numericPort < 1 || numericPort > 65535 {
		return false, "", 0, fault.InvalidPortNumber
	}

	if nil != IP.To4() {
		return false, IP.String(), numericPort, nil
	}
	return true, "[" + IP.String() + "]", numericPort, nil
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
