// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/hex"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/miekg/dns"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/fault"
)

// worker information is published through DNS TXT records, one per
// node.  the format:
//
//	txt-record=nodes.example.
//	    "tessera=v1 u=3 a=127.0.0.1;[::1] p=3130 k=<hex key>"
//
// records are cached between rounds and re-fetched when the zone's
// SOA TTL expires

const (
	timeInterval = 1 * time.Hour // upper bound on re-fetching the zone
	configFile   = "/etc/resolv.conf"
)

// Lookuper - resolve one domain into parsed TXT records
type Lookuper interface {
	Lookup(domainName string) ([]DnsTXT, error)
}

type lookuper struct {
	log *logger.L
	f   func(string) ([]string, error)
}

// NewLookuper - wrap a raw TXT query function
func NewLookuper(log *logger.L, f func(string) ([]string, error)) Lookuper {
	return &lookuper{
		log: log,
		f:   f,
	}
}

// Lookup - query and parse every TXT record under the domain
//
// unparseable records are logged and dropped
func (l *lookuper) Lookup(domainName string) ([]DnsTXT, error) {
	log := l.log

	if "" == domainName {
		log.Error("invalid node domain")
		return nil, fault.InvalidNodeDomain
	}

	txts, err := l.f(domainName)
	if nil != err {
		log.Errorf("lookup TXT record error: %s", err)
		return nil, err
	}

	var result []DnsTXT
	for i, t := range txts {
		txt, err := Parse(t)
		if nil != err {
			log.Debugf("ignore TXT[%d]: %q  error: %s", i, t, err)
			continue
		}
		if nil == txt.IPv4 && nil == txt.IPv6 {
			log.Debugf("ignore TXT[%d]: no usable address", i)
			continue
		}
		log.Infof("TXT[%d]: uid: %d  IPv4: %q  IPv6: %q  port: %d  key: %x",
			i, txt.UID, txt.IPv4, txt.IPv6, txt.Port, txt.PublicKey)
		result = append(result, *txt)
	}

	return result, nil
}

// domain - Registry bootstrapped from DNS TXT records
//
// a development and bootstrap source: it can enumerate workers but
// has no ledger, so commits only log
type domain struct {
	sync.Mutex

	log        *logger.L
	domainName string
	subnetID   uint32
	lookuper   Lookuper
	probe      func(string, *logger.L) time.Duration
	cached     []Worker
	expires    time.Time
}

// NewDomain - create a DNS backed registry source
//
// the lookup function is replaceable for testing; nil selects
// net.LookupTXT
func NewDomain(domainName string, subnetID uint32, f func(string) ([]string, error)) (Registry, error) {
	if "" == domainName {
		return nil, fault.InvalidNodeDomain
	}
	if nil == f {
		f = net.LookupTXT
	}
	log := logger.New("registry-dns")
	return &domain{
		log:        log,
		domainName: domainName,
		subnetID:   subnetID,
		lookuper:   NewLookuper(log, f),
		probe:      interval,
	}, nil
}

// SubnetID - fixed by configuration, DNS has no notion of it
func (d *domain) SubnetID() (uint32, error) {
	return d.subnetID, nil
}

// ListWorkers - workers from the zone, cached until the TTL expires
func (d *domain) ListWorkers() ([]Worker, error) {
	d.Lock()
	defer d.Unlock()

	if nil != d.cached && time.Now().Before(d.expires) {
		return d.cached, nil
	}

	txts, err := d.lookuper.Lookup(d.domainName)
	if nil != err {
		return nil, err
	}

	workers := make([]Worker, 0, len(txts))
	for _, txt := range txts {
		addresses := []string{}
		if nil != txt.IPv4 {
			addresses = append(addresses, fmt.Sprintf("%s:%d", txt.IPv4, txt.Port))
		}
		if nil != txt.IPv6 {
			addresses = append(addresses, fmt.Sprintf("[%s]:%d", txt.IPv6, txt.Port))
		}
		workers = append(workers, Worker{
			UID:       txt.UID,
			Addresses: addresses,
			Key:       hex.EncodeToString(txt.PublicKey),
		})
	}

	d.cached = workers
	d.expires = time.Now().Add(d.probe(d.domainName, d.log))

	return workers, nil
}

// ListWorkerKeys - every key published in the zone
func (d *domain) ListWorkerKeys() ([]string, error) {
	workers, err := d.ListWorkers()
	if nil != err {
		return nil, err
	}
	keys := make([]string, 0, len(workers))
	for _, worker := range workers {
		keys = append(keys, worker.Key)
	}
	return keys, nil
}

// CommitWeights - DNS is a read only source
func (d *domain) CommitWeights(commit *Commit) error {
	d.log.Warnf("dns source cannot commit: subnet: %d  weights: %d dropped",
		commit.SubnetID, len(commit.Weights))
	return nil
}

// derive the cache lifetime from the zone's SOA TTL
func interval(domainName string, log *logger.L) time.Duration {
	t := timeInterval
	var servers []string // dns name servers

	// reading default configuration file
	conf, err := dns.ClientConfigFromFile(configFile)

	if nil != err {
		log.Warnf("reading %s error: %s", configFile, err)
		goto done
	}

	if 0 == len(conf.Servers) {
		log.Warn("cannot get dns name server")
		goto done
	}

	servers = conf.Servers
	// limit the nameservers to lookup
	// https://www.freebsd.org/cgi/man.cgi?resolv.conf
	if len(servers) > 3 {
		servers = servers[:3]
	}

loop:
	for _, server := range servers {

		s := net.JoinHostPort(server, conf.Port)
		c := dns.Client{}
		msg := dns.Msg{}
		msg.SetQuestion(domainName+".", dns.TypeSOA) // fixed for type SOA

		r, _, err := c.Exchange(&msg, s)
		if nil != err {
			log.Debugf("exchange with dns server %q error: %s", s, err)
			continue loop
		}

		if 0 == len(r.Ns) && 0 == len(r.Answer) && 0 == len(r.Extra) {
			log.Debugf("no resource record found by dns server %q", s)
			continue loop
		}

		sections := [][]dns.RR{r.Answer, r.Ns, r.Extra}

		for _, section := range sections {
			ttl := ttl(section)
			if 0 < ttl {
				log.Infof("got TTL record from server %q value %d", s, ttl)
				ttlSec := time.Duration(ttl) * time.Second
				if timeInterval > ttlSec {
					t = ttlSec
					break loop
				}
			}
		}
	}

done:
	log.Infof("time to re-fetch worker domain: %v", t)
	return t
}

// get TTL record from a resource record
func ttl(rrs []dns.RR) uint32 {
	for _, rr := range rrs {
		if soa, ok := rr.(*dns.SOA); ok {
			return soa.Hdr.Ttl
		}
		return rr.Header().Ttl
	}
	return 0
}
