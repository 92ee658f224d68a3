// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package utils

import (
	"net"
	"net/http"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// RequestHost returns the host of r without port, lower-cased.
func RequestHost(r *http.Request) string {
	host := r.Host

	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	host = strings.TrimSuffix(strings.Trim(host, "[]"), ".")

	return strings.ToLower(host)
}

// RegistrableDomain returns the registrable domain (eTLD+1) of the request host,
// suitable for the Domain attribute of a cookie shared across subdomains.
//
// An empty string is returned whenever no such domain exists: IP addresses,
// single-label hosts such as localhost, and public suffixes themselves. Cookies
// emitted with an empty domain are host-only.
func RegistrableDomain(r *http.Request) string {
	host := RequestHost(r)
	if host == "" || net.ParseIP(host) != nil || !strings.Contains(host, ".") {
		return ""
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}

	return domain
}
