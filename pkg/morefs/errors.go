// Copyright 2025 walteh LLC
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

package morefs

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Operation tags the logical action that produced an error
type Operation int

const (
	OpRemove Operation = iota
	OpRemoveTreeAll
	OpCreateDir
	OpCreateDirPathAll
	OpMove
	OpMoveTreeAll
	OpCopy
	OpCopyTreeAll
)

// String returns a string representation of Operation
func (o Operation) String() string {
	switch o {
	case OpRemove:
		return "remove"
	case OpRemoveTreeAll:
		return "remove tree all"
	case OpCreateDir:
		return "create dir"
	case OpCreateDirPathAll:
		return "create dir path all"
	case OpMove:
		return "move"
	case OpMoveTreeAll:
		return "move tree all"
	case OpCopy:
		return "copy"
	case OpCopyTreeAll:
		return "copy tree all"
	default:
		return fmt.Sprintf("operation(%d)", int(o))
	}
}

var (
	// ErrNotDirectory is matched by every *NotDirectoryError
	ErrNotDirectory = errors.Base("not a directory")

	// ErrPrefixMismatch is the cause carried by *StripPrefixError
	ErrPrefixMismatch = errors.Base("prefix not found")

	// ErrNotRegular is returned when a copy source is not a regular file
	ErrNotRegular = errors.Base("source is not a regular file")

	// ErrDestinationInsideSource rejects tree copies whose target lies under the source root
	ErrDestinationInsideSource = errors.Base("destination is inside the source tree")
)

// 📄 PathError is a single-path failure
type PathError struct {
	Op   Operation
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// 🔗 LinkError is a two-path failure (copy, move)
type LinkError struct {
	Op   Operation
	From string
	To   string
	Err  error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.From, e.To, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// ✂️ StripPrefixError reports a path that does not live under the root it was remapped from
type StripPrefixError struct {
	Target string
	Strip  string
	Err    error
}

func (e *StripPrefixError) Error() string {
	return fmt.Sprintf("stripping prefix %s from %s: %v", e.Strip, e.Target, e.Err)
}

func (e *StripPrefixError) Unwrap() error { return e.Err }

// 📁 NotDirectoryError is returned when a tree operation is pointed at something other than a directory
type NotDirectoryError struct {
	Path string
}

func (e *NotDirectoryError) Error() string {
	return fmt.Sprintf("%s is not a directory", e.Path)
}

func (e *NotDirectoryError) Is(target error) bool { return target == ErrNotDirectory }

// 🚶 WalkError wraps a failure reported by the directory walker
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("walking directory: %v", e.Err)
	}
	return fmt.Sprintf("walking directory %s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error { return e.Err }

// 🩹 RecoverError holds a failed operation together with the failed attempt to clean up after it
type RecoverError struct {
	Operation error
	Recovery  error
}

func (e *RecoverError) Error() string {
	return fmt.Sprintf("%v; tried to recover but it failed: %v", e.Operation, e.Recovery)
}

// Unwrap exposes both errors, so errors.Is and errors.As search the operation first and then the recovery.
func (e *RecoverError) Unwrap() []error { return []error{e.Operation, e.Recovery} }

// Recover runs recovery after err was returned by an operation. If recovery succeeds the original err is
// returned unchanged; if it fails the result is a *RecoverError carrying both.
//
//	_, err := morefs.CopyTree(ctx, "from", "to")
//	if err != nil {
//		return morefs.Recover(err, func() error { return morefs.RemoveTree(ctx, "to") })
//	}
func Recover(err error, recovery func() error) error {
	if err == nil {
		return nil
	}
	if rerr := recovery(); rerr != nil {
		return errors.WithStack(&RecoverError{Operation: err, Recovery: rerr})
	}
	return err
}

func newPathError(op Operation, path string, err error) error {
	return errors.WithStack(&PathError{Op: op, Path: path, Err: err})
}

func newLinkError(op Operation, from, to string, err error) error {
	return errors.WithStack(&LinkError{Op: op, From: from, To: to, Err: err})
}

func newWalkError(path string, err error) error {
	return errors.WithStack(&WalkError{Path: path, Err: err})
}
