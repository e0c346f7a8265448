// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package input splits an input stream into tokens and feeds them to a grouper.Runner.
package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"os"
	"unicode/utf8"

	"github.com/matt-FFFFFF/groupby/internal/collection"
	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
	"github.com/matt-FFFFFF/groupby/internal/grouper"
	"github.com/spf13/afero"
)

const (
	maxTokenSize = math.MaxInt // tokens are held in memory whole, however long
	initialBuf   = 64 * 1024
	ctxCheckMask = 1<<10 - 1 // check for cancellation every 1024 tokens
	stdinName    = "-"
)

var (
	// ErrInvalidUTF8 is returned when a token is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")
	// ErrReadInput is returned when the input stream cannot be read.
	ErrReadInput = errors.New("failed to read input")
	// ErrOpenInput is returned when an input file cannot be opened.
	ErrOpenInput = errors.New("failed to open input")
)

// FS is the filesystem input files are read from. Replace it in tests.
var FS = afero.NewOsFs()

// Stdin is the reader used when no input file, or "-", is given.
var Stdin io.Reader = os.Stdin

// Tokens yields every token of r split according to sep, numbered from 1.
// Iteration stops at the first error, which is yielded with an empty token.
func Tokens(r io.Reader, sep Separator) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, initialBuf), maxTokenSize)
		sc.Split(sep.SplitFunc())

		n := 0
		for sc.Scan() {
			n++

			tok := sc.Bytes()
			if !utf8.Valid(tok) {
				yield("", fmt.Errorf("%w: token %d", ErrInvalidUTF8, n))
				return
			}

			if !yield(string(tok), nil) {
				return
			}
		}

		if err := sc.Err(); err != nil {
			yield("", errors.Join(ErrReadInput, err))
		}
	}
}

// BuildGroups reads every token from r and passes it to runner.
// It returns the number of tokens read. Processing stops at the first error.
func BuildGroups[C collection.Collection[string, string]](
	ctx context.Context, r io.Reader, sep Separator, runner *grouper.Runner[C],
) (int, error) {
	n := 0

	for tok, err := range Tokens(r, sep) {
		if err != nil {
			return n, err
		}

		if n&ctxCheckMask == 0 && ctx.Err() != nil {
			return n, ctx.Err() //nolint:wrapcheck
		}

		runner.Run(tok)
		n++
	}

	ctxlog.Debug(ctx, "input read", "tokens", n, "separator", sep.Kind.String())

	return n, nil
}

// Open returns a reader over the named files concatenated in order.
// With no names, or the name "-", Stdin is read instead.
func Open(names []string) (io.ReadCloser, error) {
	if len(names) == 0 {
		return io.NopCloser(Stdin), nil
	}

	readers := make([]io.Reader, 0, len(names))
	files := make(multiCloser, 0, len(names))

	for _, name := range names {
		if name == stdinName {
			readers = append(readers, Stdin)
			continue
		}

		f, err := FS.Open(name)
		if err != nil {
			files.Close() //nolint:errcheck,gosec

			return nil, errors.Join(ErrOpenInput, err)
		}

		readers = append(readers, f)
		files = append(files, f)
	}

	return struct {
		io.Reader
		io.Closer
	}{io.MultiReader(readers...), files}, nil
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var errs []error

	for _, c := range m {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
