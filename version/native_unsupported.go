//go:build !native

package version

const nativeInput = false
