// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/hex"
	"net"
	"strconv"
	"strings"

	"github.com/tessera-net/tesserad/fault"
)

// the tag to detect applicable TXT records from DNS
var supportedTags = map[string]struct{}{
	"tessera=v1": {},
}

const publicKeyLength = 2 * transportKeyLength // hex characters

// DnsTXT - worker connection information from one TXT record
type DnsTXT struct {
	UID       uint32
	IPv4      net.IP
	IPv6      net.IP
	Port      uint16
	PublicKey []byte
}

// Parse - decode a DNS TXT record of this form
//
//	<TAG> u=<UID> a=<IPv4;IPv6> p=<PORT> k=<HEX-KEY>
//
// each item is required exactly once; any other combination or an
// unknown item is rejected
func Parse(s string) (*DnsTXT, error) {

	t := &DnsTXT{}

	countA := 0
	countK := 0
	countP := 0
	countU := 0

words:
	for i, w := range strings.Split(strings.TrimSpace(s), " ") {

		if 0 == i {
			if _, ok := supportedTags[w]; ok {
				continue words
			}
			return nil, fault.InvalidDnsTxtRecord
		}

		// ignore empty
		if "" == w {
			continue words
		}

		// require form: <letter>=<word>
		if len(w) < 3 || '=' != w[1] {
			return nil, fault.InvalidDnsTxtRecord
		}

		// w[0]=tag character; w[1]= char('='); w[2:]=parameter
		parameter := w[2:]
		err := error(nil)
		switch w[0] {
		case 'a':
		addresses:
			for _, address := range strings.Split(parameter, ";") {
				if "" == address {
					err = fault.InvalidIpAddress
					break addresses
				}
				if '[' == address[0] {
					end := len(address) - 1
					if ']' == address[end] {
						address = address[1:end]
					}
				}
				IP := net.ParseIP(address)
				if nil == IP {
					err = fault.InvalidIpAddress
					break addresses
				}
				if nil != IP.To4() {
					t.IPv4 = IP
				} else {
					t.IPv6 = IP
				}
			}
			countA += 1

		case 'k':
			if publicKeyLength != len(parameter) {
				err = fault.InvalidKeyLength
			} else {
				t.PublicKey, err = hex.DecodeString(parameter)
				if nil != err {
					err = fault.InvalidPublicKey
				}
			}
			countK += 1

		case 'p':
			t.Port, err = getPort(parameter)
			countP += 1

		case 'u':
			uid, e := strconv.ParseUint(parameter, 10, 32)
			if nil != e {
				err = fault.InvalidWorkerID
			} else {
				t.UID = uint32(uid)
			}
			countU += 1

		default:
			err = fault.InvalidDnsTxtRecord
		}
		if nil != err {
			return nil, err
		}
	}

	// ensure that there is only one each of the required items
	if 1 != countA || 1 != countK || 1 != countP || 1 != countU {
		return nil, fault.InvalidDnsTxtRecord
	}

	return t, nil
}

func getPort(s string) (uint16, error) {

	port, err := strconv.Atoi(s)
	if nil != err {
		return 0, fault.InvalidPortNumber
	}
	if port < 1 || port > 65535 {
		return 0, fault.InvalidPortNumber
	}
	return uint16(port), nil
}
