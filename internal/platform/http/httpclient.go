// Package http はAPIクライアント用に調整されたhttp.Clientを提供します。
package http

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout はリクエスト全体のデフォルトタイムアウトです。
	DefaultTimeout = 10 * time.Second

	// 在庫APIは単一ホストなので、ホスト当たりのアイドル接続を多めに保持する
	maxIdleConnsPerHost = 20
	tlsHandshakeTimeout = 5 * time.Second
)

// NewHTTPClient returns a client for calling the inventory API.
// The transport is a clone of http.DefaultTransport, so proxy settings from the environment still apply.
// timeout bounds the whole request including the body read; 0 or less means DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxIdleConnsPerHost = maxIdleConnsPerHost
	tr.TLSHandshakeTimeout = tlsHandshakeTimeout
	tr.ResponseHeaderTimeout = timeout

	return &http.Client{Timeout: timeout, Transport: tr}
}
