// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Tessera Project
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type TimeoutError GenericError

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e TimeoutError) Error() string  { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - determine the class of an error
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrLength - determine the class of an error
func IsErrLength(e error) bool { _, ok := e.(LengthError); return ok }

// IsErrNotFound - determine the class of an error
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - determine the class of an error
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrTimeout - determine the class of an error
func IsErrTimeout(e error) bool { _, ok := e.(TimeoutError); return ok }

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ProcessError("already initialised")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ConnectIsRequired            = InvalidError("connect is required")
	CryptoFailed                 = ProcessError("crypto failed")
	DataIsRequired               = InvalidError("data is required")
	DescriptionIsRequired        = InvalidError("description is required")
	DifficultyOutOfRange         = InvalidError("difficulty out of range")
	IdentityNameAlreadyExists    = ExistsError("identity name already exists")
	IdentityNameIsRequired       = InvalidError("identity name is required")
	IdentityNameNotFound         = NotFoundError("identity name not found")
	IncompatibleOptions          = InvalidError("incompatible options")
	InvalidChainReply            = InvalidError("invalid chain reply")
	InvalidConfiguration         = InvalidError("invalid configuration")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidDnsTxtRecord          = InvalidError("invalid dns txt record")
	InvalidIpAddress             = InvalidError("invalid ip address")
	InvalidKeyFile               = InvalidError("invalid key file")
	InvalidKeyLength             = LengthError("invalid key length")
	InvalidNetwork               = InvalidError("invalid network")
	InvalidNodeDomain            = InvalidError("invalid node domain")
	InvalidPortNumber            = InvalidError("invalid port number")
	InvalidPrivateKey            = InvalidError("invalid private key")
	InvalidPublicKey             = InvalidError("invalid public key")
	InvalidPuzzleEncoding        = InvalidError("invalid puzzle encoding")
	InvalidSaltLength            = LengthError("invalid salt length")
	InvalidSignature             = InvalidError("invalid signature")
	InvalidSolutionEncoding      = InvalidError("invalid solution encoding")
	InvalidSolverName            = InvalidError("invalid solver name")
	InvalidVault                 = InvalidError("invalid vault file")
	InvalidWorkerID              = InvalidError("invalid worker identifier")
	InvalidWorkerRequest         = InvalidError("invalid worker request")
	InvalidWorkerResponse        = InvalidError("invalid worker response")
	InvokeTimeout                = TimeoutError("invoke timeout")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	KeyFileNotFound              = NotFoundError("key file not found")
	MissingParameters            = ProcessError("missing parameters")
	NotAvailable                 = ProcessError("not available")
	NotConnected                 = NotFoundError("not connected")
	NotInitialised               = ProcessError("not initialised")
	NotPrivateKey                = InvalidError("not a private key")
	NotRegistered                = NotFoundError("coordinator key is not registered")
	PasswordLength               = LengthError("password length is invalid")
	PasswordMismatch             = InvalidError("password mismatch")
	PuzzleMismatch               = InvalidError("puzzle does not match")
	RateLimiting                 = ProcessError("rate limiting")
	RoundNotFound                = NotFoundError("round not found")
	SigningKeyIsRequired         = InvalidError("signing key is required")
	WorkerError                  = ProcessError("worker returned error")
	WrongNetwork                 = InvalidError("wrong network")
	WrongNetworkForKey           = InvalidError("signing key is for a different network")
	WrongPassword                = InvalidError("wrong password")
)
