// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/groupby/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrGetConfigFile is returned when a config file cannot be fetched.
var ErrGetConfigFile = errors.New("failed to get config file")

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // Minimum parts in a go-getter URL: scheme, host, and path
)

// Load fetches the defaults file at url and parses it.
func Load(ctx context.Context, url string) (*Defaults, error) {
	b, err := GetURL(ctx, url)
	if err != nil {
		return nil, err
	}

	name, _, _ := strings.Cut(url, goGetterRefSeparator)

	d, err := Parse(name, b)
	if err != nil {
		return nil, err
	}

	ctxlog.Debug(ctx, "loaded defaults", "url", url)

	return d, nil
}

// GetURL returns the content of the file at url.
// A path to an existing local file is read directly from FsFactory's filesystem.
// Anything else is fetched with Hashicorp's go-getter into a temporary directory.
func GetURL(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrGetConfigFile
	}

	fs := FsFactory()
	if ok, _ := afero.Exists(fs, url); ok {
		b, err := afero.ReadFile(fs, url)
		if err != nil {
			return nil, errors.Join(ErrGetConfigFile, err)
		}

		return b, nil
	}

	tmpDir, err := os.MkdirTemp("", "groupby-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string
	// Only directories can be fetched from remote sources, so the file name is split off
	// and read from the downloaded directory.
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrGetConfigFile, err)
		}

		var newURL string

		newURL, fileName = splitFileNameFromGetterURL(url)
		if newURL == "" || fileName == "" {
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrGetConfigFile, url)
		}

		req.Src = newURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	ctxlog.Debug(ctx, "fetching config", "src", req.Src, "file", fileName)

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	b, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	return b, nil
}

// splitFileNameFromGetterURL splits a go-getter URL into the directory URL and the file name.
// Any ref query is moved onto the returned URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if path, query, ok := strings.Cut(last, goGetterRefSeparator); ok {
		ref = query
		last = path
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)

	if dir := filepath.Dir(last); dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
