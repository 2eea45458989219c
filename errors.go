/*
 * NDMap - Multi-Dimensional Maps
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ndmap

import (
	"errors"
	"fmt"
)

type Error interface {
	// returns true if the error is fatal
	IsFatal() bool
	// and anything else that is needed to be an error
	error
}

// InvalidDimensionsError is returned when a map is constructed with fewer than one dimension
type InvalidDimensionsError struct {
	dimensions int
}

// NewInvalidDimensionsError constructs an InvalidDimensionsError
func NewInvalidDimensionsError(dimensions int) *InvalidDimensionsError {
	return &InvalidDimensionsError{dimensions: dimensions}
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("dimensions must be > 0, got %d", e.dimensions)
}

// IsFatal returns true if the error is fatal
func (e *InvalidDimensionsError) IsFatal() bool {
	return false
}

// InvalidArityError is returned when an operation is given a path whose length
// doesn't satisfy the operation's arity
type InvalidArityError struct {
	op         string
	dimensions int
	keys       int
}

// NewInvalidArityError constructs an InvalidArityError
func NewInvalidArityError(op string, dimensions, keys int) *InvalidArityError {
	return &InvalidArityError{op: op, dimensions: dimensions, keys: keys}
}

func (e *InvalidArityError) Error() string {
	return fmt.Sprintf(
		"%s: number of keys given does not match dimensions. Have %d dimensions, and %d keys",
		e.op,
		e.dimensions,
		e.keys,
	)
}

// IsFatal returns true if the error is fatal
func (e *InvalidArityError) IsFatal() bool {
	return false
}

// Operation returns the name of the failed operation.
func (e *InvalidArityError) Operation() string {
	return e.op
}

// Dimensions returns the map's dimension count.
func (e *InvalidArityError) Dimensions() int {
	return e.dimensions
}

// Keys returns the number of keys the operation was given.
func (e *InvalidArityError) Keys() int {
	return e.keys
}

// KeyEncodingError is returned when a path can't be encoded into a composite key
type KeyEncodingError struct {
	err error
}

// NewKeyEncodingError constructs a KeyEncodingError
func NewKeyEncodingError(err error) *KeyEncodingError {
	return &KeyEncodingError{err: err}
}

func NewKeyEncodingErrorf(msg string, args ...interface{}) *KeyEncodingError {
	return NewKeyEncodingError(fmt.Errorf(msg, args...))
}

func (e *KeyEncodingError) Error() string {
	return fmt.Sprintf("key encoding failed: %s", e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *KeyEncodingError) IsFatal() bool {
	return false
}

// Unwrap returns the wrapped err
func (e *KeyEncodingError) Unwrap() error {
	return e.err
}

// KeyDecodingError is returned when a composite key can't be decoded into a path
type KeyDecodingError struct {
	key string
	err error
}

// NewKeyDecodingError constructs a KeyDecodingError
func NewKeyDecodingError(key string, err error) *KeyDecodingError {
	return &KeyDecodingError{key: key, err: err}
}

func NewKeyDecodingErrorf(key string, msg string, args ...interface{}) *KeyDecodingError {
	return NewKeyDecodingError(key, fmt.Errorf(msg, args...))
}

func (e *KeyDecodingError) Error() string {
	return fmt.Sprintf("key decoding of %q failed: %s", e.key, e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *KeyDecodingError) IsFatal() bool {
	return false
}

// Unwrap returns the wrapped err
func (e *KeyDecodingError) Unwrap() error {
	return e.err
}

// VerificationError is a fatal error returned when a map breaks a structural invariant
type VerificationError struct {
	err error
}

// NewVerificationError constructs a VerificationError
func NewVerificationError(err error) *VerificationError {
	return &VerificationError{err: err}
}

func NewVerificationErrorf(msg string, args ...interface{}) *VerificationError {
	return NewVerificationError(fmt.Errorf(msg, args...))
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed: %s", e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *VerificationError) IsFatal() bool {
	return true
}

// Unwrap returns the wrapped err
func (e *VerificationError) Unwrap() error {
	return e.err
}

// ExternalError wraps errors returned by callers' callbacks
type ExternalError struct {
	msg string
	err error
}

// NewExternalError constructs an ExternalError
func NewExternalError(err error, msg string) *ExternalError {
	return &ExternalError{msg: msg, err: err}
}

func (e *ExternalError) Error() string {
	if e.msg == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.msg, e.err.Error())
}

// IsFatal returns true if the error is fatal
func (e *ExternalError) IsFatal() bool {
	return false
}

// Unwrap returns the wrapped err
func (e *ExternalError) Unwrap() error {
	return e.err
}

// wrapErrorAsExternalErrorIfNeeded wraps err unless it is already an Error of this package.
func wrapErrorAsExternalErrorIfNeeded(err error) error {
	return wrapErrorfAsExternalErrorIfNeeded(err, "")
}

func wrapErrorfAsExternalErrorIfNeeded(err error, msg string) error {
	if err == nil {
		return nil
	}

	var e Error
	if errors.As(err, &e) {
		return err
	}

	return NewExternalError(err, msg)
}
