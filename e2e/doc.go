// Package e2e drives the full browser stack against a local stub of the
// booking site's consent banner. The tests need a Chrome or Chromium binary
// on PATH and are gated behind the e2e build tag:
//
//	go test -tags e2e ./e2e/...
package e2e
