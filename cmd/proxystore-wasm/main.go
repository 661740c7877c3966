//go:build js && wasm

// Package main exposes proxystore to JavaScript when built for the browser:
//
//	GOOS=js GOARCH=wasm go build -o proxystore.wasm ./cmd/proxystore-wasm
//
// The module installs a global proxyStorage object backed by the page's
// localStorage, sessionStorage, document.cookie and window.name.
package main

import (
	"log/slog"

	"github.com/yndnr/proxystore/internal/telemetry/logger"
	"github.com/yndnr/proxystore/pkg/proxystorage"
	"github.com/yndnr/proxystore/pkg/storage"
	"github.com/yndnr/proxystore/pkg/storage/browser"
	"github.com/yndnr/proxystore/pkg/storage/cookie"
	"github.com/yndnr/proxystore/pkg/storage/memory"
	"github.com/yndnr/proxystore/pkg/storage/webstore"
)

func main() {
	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		slog.Error("logger", "error", err)
		return
	}
	logger.SetDefault(log)

	reg, err := storage.NewRegistry(
		webstore.New(browser.LocalStorage()),
		webstore.New(browser.SessionStorage()),
		cookie.New(browser.DocumentCookie()),
		memory.New(browser.WindowName()),
	)
	if err != nil {
		log.Error("registry", "error", err)
		return
	}

	proxy := proxystorage.New(reg, proxystorage.WithLogger(log.Slog()))
	export(proxy)

	select {}
}
