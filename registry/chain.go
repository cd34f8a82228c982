// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/tessera-net/tesserad/fault"
)

// ChainAccess - connection settings for a subnet chain node
type ChainAccess struct {
	URL           string `gluamapper:"url" json:"url"`
	Username      string `gluamapper:"username" json:"username"`
	Password      string `gluamapper:"password" json:"password"`
	CACertificate string `gluamapper:"ca_certificate" json:"ca_certificate"`
}

// chain - Registry backed by a subnet chain node over JSON-RPC
type chain struct {
	sync.Mutex // the HTTP RPC cannot interleave calls and responses

	log      *logger.L
	client   *http.Client
	url      string
	username string
	password string
	id       uint64
}

// NewChain - connect to a subnet chain node
func NewChain(access ChainAccess) (Registry, error) {

	if "" == access.URL {
		return nil, fault.MissingParameters
	}

	client := &http.Client{}

	if "" != access.CACertificate {
		pem, err := ioutil.ReadFile(access.CACertificate)
		if nil != err {
			return nil, err
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fault.InvalidConfiguration
		}
		client = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					RootCAs:    pool,
					MinVersion: tls.VersionTLS12,
				},
			},
		}
	}

	return &chain{
		log:      logger.New("registry-chain"),
		client:   client,
		url:      access.URL,
		username: access.Username,
		password: access.Password,
	}, nil
}

// SubnetID - ask the node which subnet it serves
func (c *chain) SubnetID() (uint32, error) {
	var n uint32
	err := c.call("subnet_id", []interface{}{}, &n)
	return n, err
}

// ListWorkers - current worker endpoints on the subnet
func (c *chain) ListWorkers() ([]Worker, error) {
	var workers []Worker
	err := c.call("subnet_workers", []interface{}{}, &workers)
	return workers, err
}

// ListWorkerKeys - all registered identity keys on the subnet
func (c *chain) ListWorkerKeys() ([]string, error) {
	var keys []string
	err := c.call("subnet_workerKeys", []interface{}{}, &keys)
	return keys, err
}

// CommitWeights - submit a signed weight vector
func (c *chain) CommitWeights(commit *Commit) error {
	var txId string
	err := c.call("subnet_commitWeights", []interface{}{commit}, &txId)
	if nil != err {
		return err
	}
	c.log.Infof("committed: subnet: %d  timestamp: %d  weights: %d  tx: %s",
		commit.SubnetID, commit.Timestamp, len(commit.Weights), txId)
	return nil
}

// for encoding the RPC arguments
type rpcArguments struct {
	Id     uint64        `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

// the RPC error response
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// for decoding the RPC reply
type rpcReply struct {
	Id     uint64      `json:"id"`
	Result interface{} `json:"result"`
	Error  *rpcError   `json:"error"`
}

// high level call - serialised by the mutex
func (c *chain) call(method string, params []interface{}, reply interface{}) error {
	c.Lock()
	defer c.Unlock()

	c.id += 1

	arguments := rpcArguments{
		Id:     c.id,
		Method: method,
		Params: params,
	}
	response := rpcReply{
		Result: reply,
	}
	err := c.rpc(&arguments, &response)
	if nil != err {
		c.log.Tracef("rpc returned error: %v", err)
		return err
	}

	if nil != response.Error {
		return fault.ProcessError("chain RPC error: " + response.Error.Message)
	}
	return nil
}

// basic RPC - only use while locked
func (c *chain) rpc(arguments *rpcArguments, reply *rpcReply) error {

	s, err := json.Marshal(arguments)
	if nil != err {
		return err
	}

	c.log.Tracef("rpc send: %s", s)

	request, err := http.NewRequest("POST", c.url, bytes.NewBuffer(s))
	if nil != err {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	if "" != c.username {
		request.SetBasicAuth(c.username, c.password)
	}

	response, err := c.client.Do(request)
	if nil != err {
		return err
	}
	defer response.Body.Close()

	if http.StatusOK != response.StatusCode {
		return fault.InvalidChainReply
	}

	body, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return err
	}

	c.log.Tracef("rpc response body: %s", body)

	err = json.Unmarshal(body, reply)
	if nil != err {
		return fault.InvalidChainReply
	}

	return nil
}
