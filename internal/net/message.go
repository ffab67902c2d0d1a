// Package net syncs scenes between board peers on the local network.
package net

import (
	"fmt"
	"net/url"
	"strings"

	"SketchBoard/internal/element"
)

// Scheme prefixes share links handed to peers.
const Scheme = "sketchboard://"

// WebSocketPath is where the hub accepts peers.
const WebSocketPath = "/ws"

// Message types.
const (
	// MessageHello carries the host's full scene to a new peer.
	MessageHello = "hello"
	// MessageUpdate carries changed elements.
	MessageUpdate = "update"
	// MessageClear asks the host to soft-delete every element.
	MessageClear = "clear"
)

// Message is one frame on the wire.
type Message struct {
	Type     string       `json:"type"`
	Elements element.List `json:"elements,omitempty"`
	OwnerID  string       `json:"owner_id,omitempty"`
	Revision uint64       `json:"revision,omitempty"`
}

// ShareLink builds the link peers open to join a host.
func ShareLink(host string, port int) string {
	return fmt.Sprintf("%s%s:%d", Scheme, host, port)
}

// WebSocketURL turns a share link (or a bare host:port) into the hub URL.
func WebSocketURL(link string) (string, error) {
	addr := strings.TrimSuffix(strings.TrimPrefix(link, Scheme), "/")
	if addr == "" {
		return "", fmt.Errorf("share link %q has no address", link)
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: WebSocketPath}
	if _, err := url.Parse(u.String()); err != nil {
		return "", fmt.Errorf("share link %q: %w", link, err)
	}
	return u.String(), nil
}
